// Package mocks provides mock implementations for testing HTTP authentication.
package mocks

import (
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/keyvault/internal/auth/domain"
)

// MockTokenVerifier is a mock implementation of TokenVerifier for testing.
type MockTokenVerifier struct {
	mock.Mock
}

// Verify mocks the Verify method of TokenVerifier.
func (m *MockTokenVerifier) Verify(token string) (*authDomain.Identity, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.Identity), args.Error(1)
}
