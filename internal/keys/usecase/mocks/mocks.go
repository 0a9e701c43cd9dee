// Package mocks provides mock implementations of the key use case interfaces for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
)

// MockKeyRecordRepository is a mock implementation of KeyRecordRepository.
type MockKeyRecordRepository struct {
	mock.Mock
}

// NewMockKeyRecordRepository creates a MockKeyRecordRepository that asserts its expectations on cleanup.
func NewMockKeyRecordRepository(t testing.TB) *MockKeyRecordRepository {
	m := &MockKeyRecordRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of KeyRecordRepository.
func (m *MockKeyRecordRepository) Create(ctx context.Context, record *keysDomain.KeyRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Get mocks the Get method of KeyRecordRepository.
func (m *MockKeyRecordRepository) Get(ctx context.Context, id uuid.UUID) (*keysDomain.KeyRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keysDomain.KeyRecord), args.Error(1)
}

// GetForUpdate mocks the GetForUpdate method of KeyRecordRepository.
func (m *MockKeyRecordRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*keysDomain.KeyRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keysDomain.KeyRecord), args.Error(1)
}

// ListByOwner mocks the ListByOwner method of KeyRecordRepository.
func (m *MockKeyRecordRepository) ListByOwner(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*keysDomain.KeyRecord, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keysDomain.KeyRecord), args.Error(1)
}

// Update mocks the Update method of KeyRecordRepository.
func (m *MockKeyRecordRepository) Update(ctx context.Context, record *keysDomain.KeyRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Delete mocks the Delete method of KeyRecordRepository.
func (m *MockKeyRecordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockKeyUseCase is a mock implementation of KeyUseCase.
type MockKeyUseCase struct {
	mock.Mock
}

// NewMockKeyUseCase creates a MockKeyUseCase that asserts its expectations on cleanup.
func NewMockKeyUseCase(t testing.TB) *MockKeyUseCase {
	m := &MockKeyUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Create mocks the Create method of KeyUseCase.
func (m *MockKeyUseCase) Create(
	ctx context.Context,
	ownerID string,
	input *keysDomain.CreateKeyInput,
) (*keysDomain.KeyRecord, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keysDomain.KeyRecord), args.Error(1)
}

// DecryptPrivateKey mocks the DecryptPrivateKey method of KeyUseCase.
func (m *MockKeyUseCase) DecryptPrivateKey(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
	password string,
) (*keysDomain.DecryptedKey, error) {
	args := m.Called(ctx, ownerID, id, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keysDomain.DecryptedKey), args.Error(1)
}

// GetPublicKey mocks the GetPublicKey method of KeyUseCase.
func (m *MockKeyUseCase) GetPublicKey(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
) (*keysDomain.KeyRecord, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keysDomain.KeyRecord), args.Error(1)
}

// ListByOwner mocks the ListByOwner method of KeyUseCase.
func (m *MockKeyUseCase) ListByOwner(
	ctx context.Context,
	ownerID string,
	offset, limit int,
) ([]*keysDomain.KeySummary, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*keysDomain.KeySummary), args.Error(1)
}

// Rename mocks the Rename method of KeyUseCase.
func (m *MockKeyUseCase) Rename(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
	title string,
) (*keysDomain.KeySummary, error) {
	args := m.Called(ctx, ownerID, id, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keysDomain.KeySummary), args.Error(1)
}

// ToggleStatus mocks the ToggleStatus method of KeyUseCase.
func (m *MockKeyUseCase) ToggleStatus(
	ctx context.Context,
	ownerID string,
	id uuid.UUID,
) (*keysDomain.KeySummary, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keysDomain.KeySummary), args.Error(1)
}

// Delete mocks the Delete method of KeyUseCase.
func (m *MockKeyUseCase) Delete(ctx context.Context, ownerID string, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
