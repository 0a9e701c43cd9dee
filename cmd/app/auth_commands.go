package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/keyvault/cmd/app/commands"
	"github.com/allisson/keyvault/internal/app"
	"github.com/allisson/keyvault/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-signing-secret",
			Usage: "Generate a bearer token signing secret, optionally sealed with KMS",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "kms-key-uri",
					Aliases: []string{"k"},
					Usage:   "KMS key URI used to seal the secret (defaults to KMS_KEY_URI)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				keyURI := cmd.String("kms-key-uri")
				if keyURI == "" {
					keyURI = cfg.KMSKeyURI
				}

				return commands.RunCreateSigningSecret(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					keyURI,
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "issue-token",
			Usage: "Issue a bearer token for an owner (local testing helper)",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "owner",
					Aliases:  []string{"o"},
					Required: true,
					Usage:    "Owner id placed in the userId claim",
				},
				&cli.DurationFlag{
					Name:    "ttl",
					Aliases: []string{"t"},
					Usage:   "Token lifetime (defaults to AUTH_TOKEN_EXPIRATION_SECONDS)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenService, err := container.TokenService(ctx)
				if err != nil {
					return err
				}

				ttl := cmd.Duration("ttl")
				if ttl <= 0 {
					ttl = cfg.AuthTokenExpiration
				}

				return commands.RunIssueToken(
					tokenService,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("owner"),
					ttl,
					cmd.String("format"),
				)
			},
		},
	}
}
