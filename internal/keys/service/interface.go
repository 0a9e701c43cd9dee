// Package service provides the cryptographic building blocks of the key vault:
// keypair generation, password based key derivation, private key wrapping,
// password verification and a bounded pool for CPU-bound work.
package service

import (
	"context"

	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
)

// KeyPair is a freshly generated keypair in its interchange encoding.
// PublicKey is a PEM "PUBLIC KEY" block; PrivateKey is PEM ("PRIVATE KEY" for
// RSA/DSA, "EC PRIVATE KEY" for ECC). Callers zero PrivateKey once sealed.
type KeyPair struct {
	PublicKey  string
	PrivateKey []byte
}

// KeyPairGenerator produces algorithm specific keypairs.
type KeyPairGenerator interface {
	// Generate creates a keypair for alg. Unknown algorithms fail with
	// ErrInvalidAlgorithm before any key material is produced.
	Generate(ctx context.Context, alg keysDomain.Algorithm) (*KeyPair, error)

	// DerivePublicKey recomputes the PEM public key of a PEM private key.
	DerivePublicKey(alg keysDomain.Algorithm, privateKeyPEM []byte) (string, error)
}

// KeyDeriver turns a password and salt into a fixed-length wrapping key.
type KeyDeriver interface {
	// Derive is deterministic: the same password and salt always yield the same key.
	Derive(password string, salt []byte) ([]byte, error)
}

// Wrapper seals and opens private key bytes with a derived key and IV.
type Wrapper interface {
	Encrypt(plaintext, key, iv, aad []byte) ([]byte, error)
	// Decrypt returns ErrDecryptionFailed when the key, IV or ciphertext don't match.
	Decrypt(ciphertext, key, iv, aad []byte) ([]byte, error)
}

// WrapperManager resolves the Wrapper for a wrap algorithm.
type WrapperManager interface {
	Wrapper(alg keysDomain.WrapAlgorithm) (Wrapper, error)
}

// PasswordVerifier hashes and verifies the password that gates decryption.
type PasswordVerifier interface {
	Hash(password string) (string, error)
	Verify(password, passwordHash string) (bool, error)
}
