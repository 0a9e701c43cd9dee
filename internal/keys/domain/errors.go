package domain

import (
	"github.com/allisson/keyvault/internal/errors"
)

// Validation errors, reported in the order Create checks them.
var (
	// ErrTitleRequired indicates a missing or blank title.
	ErrTitleRequired = errors.WithCode(errors.ErrInvalidInput, "title_required", "title is required")

	// ErrTitleTooLong indicates a title longer than MaxTitleLength characters.
	ErrTitleTooLong = errors.WithCode(errors.ErrInvalidInput, "title_too_long", "title is too long")

	// ErrInvalidAlgorithm indicates an algorithm outside of RSA, DSA and ECC.
	ErrInvalidAlgorithm = errors.WithCode(
		errors.ErrInvalidInput,
		"invalid_algorithm",
		"algorithm must be one of RSA, DSA or ECC",
	)

	// ErrPasswordRequired indicates a missing password.
	ErrPasswordRequired = errors.WithCode(errors.ErrInvalidInput, "password_required", "password is required")

	// ErrPasswordMismatch indicates the confirmation differs from the password.
	ErrPasswordMismatch = errors.WithCode(
		errors.ErrInvalidInput,
		"password_mismatch",
		"password and confirmation do not match",
	)
)

// Access and cryptographic errors.
var (
	// ErrKeyRecordNotFound indicates the record does not exist.
	ErrKeyRecordNotFound = errors.WithCode(errors.ErrNotFound, "key_not_found", "key record not found")

	// ErrKeyRecordNotOwned indicates the record is not among the caller's records.
	ErrKeyRecordNotOwned = errors.WithCode(
		errors.ErrInvalidReference,
		"invalid_reference",
		"key record does not belong to the caller",
	)

	// ErrWrongPassword indicates the password failed verification.
	ErrWrongPassword = errors.WithCode(errors.ErrUnauthorized, "wrong_password", "wrong password")

	// ErrDecryptionFailed indicates the wrapped key could not be opened with the derived key.
	ErrDecryptionFailed = errors.WithCode(errors.ErrInvalidInput, "decryption_failed", "decryption failed")

	// ErrInvalidSalt indicates a salt shorter than SaltSize.
	ErrInvalidSalt = errors.Wrap(errors.ErrInvalidInput, "salt must be at least 16 bytes")

	// ErrInvalidIV indicates an IV that is not IVSize bytes.
	ErrInvalidIV = errors.Wrap(errors.ErrInvalidInput, "iv must be 16 bytes")

	// ErrInvalidWrappingKey indicates a wrapping key that is not WrappingKeySize bytes.
	ErrInvalidWrappingKey = errors.Wrap(errors.ErrInvalidInput, "wrapping key must be 32 bytes")

	// ErrUnsupportedWrapAlgorithm indicates an unknown wrap algorithm.
	ErrUnsupportedWrapAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported wrap algorithm")

	// ErrInvalidKeyEncoding indicates PEM or DER data that cannot be parsed.
	ErrInvalidKeyEncoding = errors.Wrap(errors.ErrInvalidInput, "invalid key encoding")
)
