// Package domain defines the authenticated identity model of the key vault.
//
// Identity is resolved from a signed bearer token by the auth service and
// threaded through the request context. Its OwnerID is the only value the key
// use cases trust as the record owner.
package domain

import (
	"context"
	"time"

	"github.com/allisson/keyvault/internal/errors"
)

// MinSigningSecretLength is the minimum signing secret size in bytes (HS256 key).
const MinSigningSecretLength = 32

// Identity is the caller resolved from a verified token.
type Identity struct {
	OwnerID   string
	ExpiresAt time.Time
}

// KMSKeeper opens and seals data with a KMS-held key. *secrets.Keeper from
// gocloud.dev/secrets satisfies it.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// Authentication errors.
var (
	// ErrMissingCredential indicates a request without a usable bearer token.
	ErrMissingCredential = errors.WithCode(errors.ErrUnauthorized, "unauthenticated", "missing bearer token")

	// ErrInvalidCredential indicates a token that is malformed, badly signed, expired or has no owner.
	ErrInvalidCredential = errors.WithCode(errors.ErrUnauthorized, "invalid_credential", "invalid bearer token")

	// ErrSigningSecretRequired indicates that no signing secret was configured.
	ErrSigningSecretRequired = errors.Wrap(errors.ErrInvalidInput, "signing secret is required")

	// ErrSigningSecretTooShort indicates a signing secret under MinSigningSecretLength bytes.
	ErrSigningSecretTooShort = errors.Wrap(errors.ErrInvalidInput, "signing secret must be at least 32 bytes")
)
