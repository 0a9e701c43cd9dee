// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
)

// CreateKeyRequest contains the parameters for creating a protected keypair.
// Field rules are checked by the use case so that the first violated rule,
// in a fixed order, is the one reported.
type CreateKeyRequest struct {
	Title           string `json:"title"`
	Algorithm       string `json:"algorithm"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ToInput converts the request into the use case input.
func (r *CreateKeyRequest) ToInput() *keysDomain.CreateKeyInput {
	return &keysDomain.CreateKeyInput{
		Title:           r.Title,
		Algorithm:       r.Algorithm,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

// DecryptKeyRequest carries the password that unlocks a private key.
type DecryptKeyRequest struct {
	Password string `json:"password"`
}

// Validate checks if the decrypt request is valid.
func (r *DecryptKeyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
	)
}

// RenameKeyRequest carries the new title of a record.
type RenameKeyRequest struct {
	Title string `json:"title"`
}
