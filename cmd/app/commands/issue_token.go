package commands

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	authService "github.com/allisson/keyvault/internal/auth/service"
)

// RunIssueToken mints a bearer token for ownerID valid for ttl. It is an
// operator helper for local testing; production tokens come from the identity
// provider sharing the signing secret.
func RunIssueToken(
	tokenService authService.TokenService,
	logger *slog.Logger,
	writer io.Writer,
	ownerID string,
	ttl time.Duration,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	token, err := tokenService.Issue(ownerID, ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	expiresAt := time.Now().UTC().Add(ttl)
	logger.Info("token issued",
		slog.String("owner_id", ownerID),
		slog.Time("expires_at", expiresAt),
	)

	if format == "json" {
		return writeJSON(writer, map[string]string{
			"token":      token,
			"owner_id":   ownerID,
			"expires_at": expiresAt.Format(time.RFC3339),
		})
	}

	_, err = fmt.Fprintln(writer, token)
	return err
}
