package service

import (
	"fmt"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/keyvault/internal/errors"
)

// Password hashing policies accepted by NewPasswordVerifier.
const (
	PasswordPolicyInteractive = "interactive"
	PasswordPolicyModerate    = "moderate"
)

// passwordVerifier implements PasswordVerifier with Argon2id. Each hash embeds
// its own random salt, unrelated to the wrapping key salt.
type passwordVerifier struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordVerifier creates a PasswordVerifier for the given policy name.
func NewPasswordVerifier(policy string) (PasswordVerifier, error) {
	var (
		hasher *pwdhash.PasswordHasher
		err    error
	)

	switch policy {
	case PasswordPolicyInteractive:
		hasher, err = pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	case PasswordPolicyModerate:
		hasher, err = pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	default:
		return nil, fmt.Errorf("unsupported password hash policy: %s", policy)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &passwordVerifier{hasher: hasher}, nil
}

// Hash returns a PHC formatted Argon2id hash of password.
func (p *passwordVerifier) Hash(password string) (string, error) {
	hash, err := p.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify reports whether password matches passwordHash. A malformed hash is an error.
func (p *passwordVerifier) Verify(password, passwordHash string) (bool, error) {
	ok, err := p.hasher.Verify([]byte(password), passwordHash)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to verify password")
	}
	return ok, nil
}
