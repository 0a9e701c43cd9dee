package dto

import (
	"time"

	keysDomain "github.com/allisson/keyvault/internal/keys/domain"
)

// KeyResponse is the non-sensitive view of a key record used by every listing
// and mutation response. It never carries key material.
type KeyResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Algorithm string    `json:"algorithm"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// MapSummaryToResponse converts a domain summary to an API response.
func MapSummaryToResponse(summary *keysDomain.KeySummary) KeyResponse {
	return KeyResponse{
		ID:        summary.ID.String(),
		Title:     summary.Title,
		Algorithm: string(summary.Algorithm),
		Status:    string(summary.Status),
		CreatedAt: summary.CreatedAt,
	}
}

// ListKeysResponse represents a page of key records.
type ListKeysResponse struct {
	Data []KeyResponse `json:"data"`
}

// MapSummariesToListResponse converts domain summaries to a list response.
func MapSummariesToListResponse(summaries []*keysDomain.KeySummary) ListKeysResponse {
	data := make([]KeyResponse, 0, len(summaries))
	for _, summary := range summaries {
		data = append(data, MapSummaryToResponse(summary))
	}

	return ListKeysResponse{
		Data: data,
	}
}

// PublicKeyResponse exports the PEM public key of a record.
type PublicKeyResponse struct {
	ID        string `json:"id"`
	Algorithm string `json:"algorithm"`
	PublicKey string `json:"public_key"`
}

// MapRecordToPublicKeyResponse converts a record to a public key response.
func MapRecordToPublicKeyResponse(record *keysDomain.KeyRecord) PublicKeyResponse {
	return PublicKeyResponse{
		ID:        record.ID.String(),
		Algorithm: string(record.Algorithm),
		PublicKey: record.PublicKey,
	}
}

// DecryptKeyResponse carries a plaintext PEM private key.
// SECURITY: only returned by the decrypt endpoint; must travel over HTTPS.
type DecryptKeyResponse struct {
	ID         string `json:"id"`
	Algorithm  string `json:"algorithm"`
	PrivateKey string `json:"private_key"`
}

// MapDecryptedKeyToResponse converts a decrypted key to an API response. The
// caller zeroes the domain object afterwards.
func MapDecryptedKeyToResponse(key *keysDomain.DecryptedKey) DecryptKeyResponse {
	return DecryptKeyResponse{
		ID:         key.ID.String(),
		Algorithm:  string(key.Algorithm),
		PrivateKey: string(key.PrivateKey),
	}
}
