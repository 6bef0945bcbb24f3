package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/allisson/drive-proxy/cmd/app/commands"
	"github.com/allisson/drive-proxy/internal/app"
	"github.com/allisson/drive-proxy/internal/config"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "inspect-capability",
			Usage: "Print the file id and expiry sealed in a presigned URL payload",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "payload",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Payload query parameter or full presigned URL",
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

				codec, err := container.CapabilityCodec()
				if err != nil {
					return err
				}

				return commands.RunInspectCapability(
					ctx,
					codec,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("payload"),
					cmd.String("format"),
					time.Now(),
				)
			},
		},
		{
			Name:  "check-kms",
			Usage: "Seal and open a test value with the configured KMS key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Value: "",
					Usage: "KMS key URI (defaults to KMS_KEY_URI)",
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

				return commands.RunCheckKMS(
					ctx,
					container.KMSService(),
					container.Logger(),
					commands.DefaultIO().Writer,
					keyURI,
				)
			},
		},
		{
			Name:  "create-local-key",
			Usage: "Generate a base64key:// KMS key URI for local development",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateLocalKey(container.Logger(), commands.DefaultIO().Writer)
			},
		},
	}
}
