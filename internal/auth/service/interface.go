// Package service resolves caller identities from signed bearer tokens and
// loads the signing secret, optionally sealed by a KMS.
package service

import (
	"context"
	"time"

	authDomain "github.com/allisson/keyvault/internal/auth/domain"
)

// TokenService issues and verifies HS256 bearer tokens.
type TokenService interface {
	// Issue mints a token for ownerID valid for ttl.
	Issue(ownerID string, ttl time.Duration) (string, error)

	// Verify checks signature and expiry and returns the identity carried by the token.
	// Every failure is reported as ErrInvalidCredential.
	Verify(token string) (*authDomain.Identity, error)
}

// KMSService opens keepers for KMS key URIs.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI. Supported schemes: gcpkms://,
	// awskms://, azurekeyvault://, hashivault:// and base64key://.
	OpenKeeper(ctx context.Context, keyURI string) (authDomain.KMSKeeper, error)
}
