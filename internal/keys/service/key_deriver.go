package service

import (
	"golang.org/x/crypto/scrypt"

	apperrors "github.com/allisson/keyvault/internal/errors"
	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
)

// Scrypt cost parameters. Stored records depend on them: changing these values
// makes existing wrapped keys undecryptable.
const (
	scryptN = 1 << 14
	scryptR = 8
	scryptP = 1
)

// scryptKeyDeriver derives 32-byte wrapping keys with scrypt.
type scryptKeyDeriver struct {
	n, r, p int
}

// NewScryptKeyDeriver creates a KeyDeriver using scrypt (N=16384, r=8, p=1).
func NewScryptKeyDeriver() KeyDeriver {
	return &scryptKeyDeriver{n: scryptN, r: scryptR, p: scryptP}
}

// Derive returns a WrappingKeySize key for password and salt.
func (s *scryptKeyDeriver) Derive(password string, salt []byte) ([]byte, error) {
	if len(salt) < keysDomain.SaltSize {
		return nil, keysDomain.ErrInvalidSalt
	}

	key, err := scrypt.Key([]byte(password), salt, s.n, s.r, s.p, keysDomain.WrappingKeySize)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to derive wrapping key")
	}
	return key, nil
}
