// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. Use cases return these (usually wrapped with
// domain context) and HTTP handlers map them to status codes.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors shared by every bounded context.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or unverifiable credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated caller doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidReference indicates the referenced resource exists outside of the
	// caller's ownership (or is not among the caller's resources at all).
	ErrInvalidReference = errors.New("invalid reference")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// codedError attaches a machine-readable code to a wrapped error.
type codedError struct {
	code    string
	message string
	err     error
}

func (e *codedError) Error() string {
	return e.message + ": " + e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

// WithCode wraps err with a message and a stable machine-readable code that
// transports can surface to callers (e.g., "wrong_password").
func WithCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &codedError{code: code, message: message, err: err}
}

// Code returns the outermost code attached with WithCode, or an empty string.
func Code(err error) string {
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}
	return ""
}
