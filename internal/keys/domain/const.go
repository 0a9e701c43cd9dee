// Package domain defines the key vault domain models: protected key records,
// the closed set of keypair algorithms, wrap algorithms and record status.
package domain

import "strings"

const (
	// MaxTitleLength matches the title column width (VARCHAR(255)).
	MaxTitleLength = 255

	// SaltSize is the number of random bytes used to derive a wrapping key.
	SaltSize = 16

	// IVSize is the initialization vector length for every wrap algorithm.
	IVSize = 16

	// WrappingKeySize is the length of a derived wrapping key (AES-256).
	WrappingKeySize = 32
)

// Algorithm identifies the asymmetric keypair family of a record.
// The set is closed: RSA, DSA and ECC (secp256k1).
type Algorithm string

const (
	// AlgorithmRSA generates 4096-bit RSA keypairs.
	AlgorithmRSA Algorithm = "RSA"
	// AlgorithmDSA generates DSA keypairs with L=2048, N=256 parameters.
	AlgorithmDSA Algorithm = "DSA"
	// AlgorithmECC generates secp256k1 keypairs.
	AlgorithmECC Algorithm = "ECC"
)

// Algorithms lists every supported algorithm in presentation order.
var Algorithms = []Algorithm{AlgorithmRSA, AlgorithmDSA, AlgorithmECC}

// ParseAlgorithm resolves a client supplied token (case-insensitive) to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToUpper(strings.TrimSpace(s))) {
	case AlgorithmRSA:
		return AlgorithmRSA, nil
	case AlgorithmDSA:
		return AlgorithmDSA, nil
	case AlgorithmECC:
		return AlgorithmECC, nil
	default:
		return "", ErrInvalidAlgorithm
	}
}

// WrapAlgorithm identifies the symmetric cipher that sealed a private key.
type WrapAlgorithm string

const (
	// WrapAESCBC is AES-256-CBC with PKCS#7 padding and no MAC.
	WrapAESCBC WrapAlgorithm = "aes-256-cbc"
	// WrapAESGCM is AES-256-GCM using the 16-byte IV as nonce.
	WrapAESGCM WrapAlgorithm = "aes-256-gcm"
)

// ParseWrapAlgorithm resolves a configured wrap algorithm name.
func ParseWrapAlgorithm(s string) (WrapAlgorithm, error) {
	switch WrapAlgorithm(strings.ToLower(strings.TrimSpace(s))) {
	case WrapAESCBC:
		return WrapAESCBC, nil
	case WrapAESGCM:
		return WrapAESGCM, nil
	default:
		return "", ErrUnsupportedWrapAlgorithm
	}
}

// Status is the advisory lifecycle state of a record.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}
