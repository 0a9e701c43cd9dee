package usecase

import (
	"context"

	"github.com/google/uuid"

	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
)

// KeyRecordRepository defines the interface for key record persistence.
type KeyRecordRepository interface {
	Create(ctx context.Context, record *keysDomain.KeyRecord) error
	Get(ctx context.Context, id uuid.UUID) (*keysDomain.KeyRecord, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*keysDomain.KeyRecord, error)
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*keysDomain.KeyRecord, error)
	Update(ctx context.Context, record *keysDomain.KeyRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// KeyUseCase defines the operations of the key vault. Every method takes the
// authenticated owner id resolved by the transport layer.
type KeyUseCase interface {
	// Create validates input, generates a keypair and stores it sealed under a
	// key derived from the password. The returned record never carries plaintext key material.
	Create(ctx context.Context, ownerID string, input *keysDomain.CreateKeyInput) (*keysDomain.KeyRecord, error)

	// DecryptPrivateKey returns the PEM private key of a record.
	//
	// Security Note: callers MUST call Zero on the returned DecryptedKey once the
	// key has been written out.
	DecryptPrivateKey(
		ctx context.Context,
		ownerID string,
		id uuid.UUID,
		password string,
	) (*keysDomain.DecryptedKey, error)

	GetPublicKey(ctx context.Context, ownerID string, id uuid.UUID) (*keysDomain.KeyRecord, error)
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*keysDomain.KeySummary, error)
	Rename(ctx context.Context, ownerID string, id uuid.UUID, title string) (*keysDomain.KeySummary, error)
	ToggleStatus(ctx context.Context, ownerID string, id uuid.UUID) (*keysDomain.KeySummary, error)
	Delete(ctx context.Context, ownerID string, id uuid.UUID) error
}
