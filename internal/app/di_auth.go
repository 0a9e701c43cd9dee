package app

import (
	"context"
	"fmt"

	authService "github.com/allisson/keyvault/internal/auth/service"
)

// KMSService returns the service that opens KMS keepers for the signing secret.
func (c *Container) KMSService() authService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = authService.NewKMSService()
	})
	return c.kmsService
}

// SigningSecret returns the bearer token signing secret, opening it through the
// KMS when AUTH_SIGNING_SECRET_CIPHERTEXT is configured.
func (c *Container) SigningSecret(ctx context.Context) ([]byte, error) {
	var err error
	c.signingSecretInit.Do(func() {
		c.signingSecret, err = authService.LoadSigningSecret(
			ctx,
			c.KMSService(),
			authService.SigningSecretConfig{
				Secret:     c.config.AuthSigningSecret,
				Ciphertext: c.config.AuthSigningSecretCiphertext,
				KMSKeyURI:  c.config.KMSKeyURI,
			},
			c.Logger(),
		)
		if err != nil {
			c.initErrors["signingSecret"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signingSecret"]; exists {
		return nil, storedErr
	}
	return c.signingSecret, nil
}

// TokenService returns the HS256 token service used to authenticate requests.
func (c *Container) TokenService(ctx context.Context) (authService.TokenService, error) {
	var err error
	c.tokenServiceInit.Do(func() {
		c.tokenService, err = c.initTokenService(ctx)
		if err != nil {
			c.initErrors["tokenService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

func (c *Container) initTokenService(ctx context.Context) (authService.TokenService, error) {
	secret, err := c.SigningSecret(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing secret for token service: %w", err)
	}

	tokenService, err := authService.NewTokenService(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	return tokenService, nil
}
