// Package http provides HTTP middleware and utilities for authentication.
package http

import (
	"context"

	authDomain "github.com/allisson/keyvault/internal/auth/domain"
)

// identityKey is a context key type for storing the authenticated identity.
type identityKey struct{}

// WithIdentity stores the authenticated identity in the context.
func WithIdentity(ctx context.Context, identity *authDomain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the authenticated identity from the context.
func GetIdentity(ctx context.Context) (*authDomain.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*authDomain.Identity)
	return identity, ok && identity != nil
}

// GetOwner returns the owner id of the authenticated identity, or false when
// the request was not authenticated.
func GetOwner(ctx context.Context) (string, bool) {
	identity, ok := GetIdentity(ctx)
	if !ok || identity.OwnerID == "" {
		return "", false
	}
	return identity.OwnerID, true
}
