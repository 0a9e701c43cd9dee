// Package mocks provides mock implementations of the key service interfaces for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
	keysService "github.com/allisson/keyvault/internal/keys/service"
)

// MockKeyPairGenerator is a mock implementation of KeyPairGenerator.
type MockKeyPairGenerator struct {
	mock.Mock
}

// NewMockKeyPairGenerator creates a MockKeyPairGenerator that asserts its expectations on cleanup.
func NewMockKeyPairGenerator(t testing.TB) *MockKeyPairGenerator {
	m := &MockKeyPairGenerator{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Generate mocks the Generate method of KeyPairGenerator.
func (m *MockKeyPairGenerator) Generate(
	ctx context.Context,
	alg keysDomain.Algorithm,
) (*keysService.KeyPair, error) {
	args := m.Called(ctx, alg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keysService.KeyPair), args.Error(1)
}

// DerivePublicKey mocks the DerivePublicKey method of KeyPairGenerator.
func (m *MockKeyPairGenerator) DerivePublicKey(alg keysDomain.Algorithm, privateKeyPEM []byte) (string, error) {
	args := m.Called(alg, privateKeyPEM)
	return args.String(0), args.Error(1)
}

// MockKeyDeriver is a mock implementation of KeyDeriver.
type MockKeyDeriver struct {
	mock.Mock
}

// NewMockKeyDeriver creates a MockKeyDeriver that asserts its expectations on cleanup.
func NewMockKeyDeriver(t testing.TB) *MockKeyDeriver {
	m := &MockKeyDeriver{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Derive mocks the Derive method of KeyDeriver.
func (m *MockKeyDeriver) Derive(password string, salt []byte) ([]byte, error) {
	args := m.Called(password, salt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockWrapper is a mock implementation of Wrapper.
type MockWrapper struct {
	mock.Mock
}

// NewMockWrapper creates a MockWrapper that asserts its expectations on cleanup.
func NewMockWrapper(t testing.TB) *MockWrapper {
	m := &MockWrapper{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Encrypt mocks the Encrypt method of Wrapper.
func (m *MockWrapper) Encrypt(plaintext, key, iv, aad []byte) ([]byte, error) {
	args := m.Called(plaintext, key, iv, aad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Decrypt mocks the Decrypt method of Wrapper.
func (m *MockWrapper) Decrypt(ciphertext, key, iv, aad []byte) ([]byte, error) {
	args := m.Called(ciphertext, key, iv, aad)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockWrapperManager is a mock implementation of WrapperManager.
type MockWrapperManager struct {
	mock.Mock
}

// NewMockWrapperManager creates a MockWrapperManager that asserts its expectations on cleanup.
func NewMockWrapperManager(t testing.TB) *MockWrapperManager {
	m := &MockWrapperManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Wrapper mocks the Wrapper method of WrapperManager.
func (m *MockWrapperManager) Wrapper(alg keysDomain.WrapAlgorithm) (keysService.Wrapper, error) {
	args := m.Called(alg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(keysService.Wrapper), args.Error(1)
}

// MockPasswordVerifier is a mock implementation of PasswordVerifier.
type MockPasswordVerifier struct {
	mock.Mock
}

// NewMockPasswordVerifier creates a MockPasswordVerifier that asserts its expectations on cleanup.
func NewMockPasswordVerifier(t testing.TB) *MockPasswordVerifier {
	m := &MockPasswordVerifier{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Hash mocks the Hash method of PasswordVerifier.
func (m *MockPasswordVerifier) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method of PasswordVerifier.
func (m *MockPasswordVerifier) Verify(password, passwordHash string) (bool, error) {
	args := m.Called(password, passwordHash)
	return args.Bool(0), args.Error(1)
}
