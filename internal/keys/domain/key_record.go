package domain

import (
	"time"

	"github.com/google/uuid"
)

// KeyRecord is the persisted unit: one generated keypair and its protection metadata.
//
// PublicKey is PEM. WrappedPrivateKey, Salt and IV are base64 (standard encoding).
// PasswordHash is a PHC-formatted string carrying its own salt, independent of Salt.
// OwnerID, Algorithm, key material, Salt, IV and CreatedAt never change after creation.
type KeyRecord struct {
	ID                uuid.UUID
	OwnerID           string
	Title             string
	Algorithm         Algorithm
	PublicKey         string
	WrappedPrivateKey string
	WrapAlgorithm     WrapAlgorithm
	PasswordHash      string
	Salt              string
	IV                string
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsOwnedBy reports whether ownerID is the record owner.
func (k *KeyRecord) IsOwnedBy(ownerID string) bool {
	return ownerID != "" && k.OwnerID == ownerID
}

// Summary projects the record onto its non-sensitive fields.
func (k *KeyRecord) Summary() *KeySummary {
	return &KeySummary{
		ID:        k.ID,
		Title:     k.Title,
		Algorithm: k.Algorithm,
		Status:    k.Status,
		CreatedAt: k.CreatedAt,
	}
}

// KeySummary is the listing projection of a KeyRecord. It never carries key
// material, salts, IVs or password hashes.
type KeySummary struct {
	ID        uuid.UUID
	Title     string
	Algorithm Algorithm
	Status    Status
	CreatedAt time.Time
}

// DecryptedKey holds a plaintext private key returned by DecryptPrivateKey.
// PrivateKey must not be persisted or logged.
type DecryptedKey struct {
	ID         uuid.UUID
	Algorithm  Algorithm
	PrivateKey []byte
}

// Zero overwrites the plaintext private key.
func (d *DecryptedKey) Zero() {
	if d == nil {
		return
	}
	Zero(d.PrivateKey)
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// CreateKeyInput carries the client supplied fields of a Create request.
// Algorithm is the raw token; it is parsed during validation.
type CreateKeyInput struct {
	Title           string
	Algorithm       string
	Password        string
	ConfirmPassword string
}
