package commands

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	authDomain "github.com/allisson/keyvault/internal/auth/domain"
	authService "github.com/allisson/keyvault/internal/auth/service"
)

// signingSecretSize is the number of random bytes behind a generated secret.
const signingSecretSize = 32

// RunCreateSigningSecret generates a random bearer token signing secret.
//
// Without kmsKeyURI the secret is printed as AUTH_SIGNING_SECRET, which is only
// suitable for local development. With kmsKeyURI the secret is sealed by the KMS
// key and printed as AUTH_SIGNING_SECRET_CIPHERTEXT together with KMS_KEY_URI.
// For local development, use kmsKeyURI="base64key://<32-byte-base64-key>".
func RunCreateSigningSecret(
	ctx context.Context,
	kmsService authService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	raw := make([]byte, signingSecretSize)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate signing secret: %w", err)
	}
	secret := []byte(base64.RawURLEncoding.EncodeToString(raw))
	defer func() {
		zero(raw)
		zero(secret)
	}()

	if len(secret) < authDomain.MinSigningSecretLength {
		return fmt.Errorf("generated signing secret is too short")
	}

	output := map[string]string{}
	if kmsKeyURI == "" {
		logger.Warn("signing secret generated without KMS; use only for local development")
		output["AUTH_SIGNING_SECRET"] = string(secret)
	} else {
		ciphertext, err := authService.SealSigningSecret(ctx, kmsService, kmsKeyURI, secret)
		if err != nil {
			return fmt.Errorf("failed to seal signing secret with KMS: %w", err)
		}
		output["AUTH_SIGNING_SECRET_CIPHERTEXT"] = ciphertext
		output["KMS_KEY_URI"] = kmsKeyURI
		logger.Info("signing secret sealed with KMS")
	}

	if format == "json" {
		return writeJSON(writer, output)
	}

	_, _ = fmt.Fprintln(writer, "# Signing Secret Configuration")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	for _, key := range []string{"AUTH_SIGNING_SECRET", "AUTH_SIGNING_SECRET_CIPHERTEXT", "KMS_KEY_URI"} {
		if value, ok := output[key]; ok {
			_, _ = fmt.Fprintf(writer, "%s=%q\n", key, value)
		}
	}
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
