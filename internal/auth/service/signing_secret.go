package service

import (
	"context"
	"encoding/base64"
	"log/slog"

	authDomain "github.com/allisson/keyvault/internal/auth/domain"
	apperrors "github.com/allisson/keyvault/internal/errors"
)

// SigningSecretConfig selects where the token signing secret comes from.
// Ciphertext (base64, sealed by the KMS key at KMSKeyURI) takes precedence over Secret.
type SigningSecretConfig struct {
	Secret     string
	Ciphertext string
	KMSKeyURI  string
}

// LoadSigningSecret resolves the token signing secret, opening it through the
// KMS when a ciphertext is configured.
func LoadSigningSecret(
	ctx context.Context,
	kms KMSService,
	cfg SigningSecretConfig,
	logger *slog.Logger,
) (secret []byte, err error) {
	if cfg.Ciphertext == "" {
		if cfg.Secret == "" {
			return nil, authDomain.ErrSigningSecretRequired
		}
		return []byte(cfg.Secret), nil
	}

	if cfg.KMSKeyURI == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "KMS_KEY_URI is required to open the signing secret")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(cfg.Ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode signing secret ciphertext")
	}

	keeper, err := kms.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			err = apperrors.Join(err, closeErr)
		}
	}()

	secret, err = keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt signing secret")
	}

	if logger != nil {
		logger.Info("signing secret opened with KMS")
	}

	return secret, nil
}

// SealSigningSecret encrypts secret with the KMS key at keyURI and returns it base64 encoded,
// ready for AUTH_SIGNING_SECRET_CIPHERTEXT.
func SealSigningSecret(ctx context.Context, kms KMSService, keyURI string, secret []byte) (ciphertext string, err error) {
	keeper, err := kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			err = apperrors.Join(err, closeErr)
		}
	}()

	sealed, err := keeper.Encrypt(ctx, secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encrypt signing secret")
	}

	return base64.StdEncoding.EncodeToString(sealed), nil
}
