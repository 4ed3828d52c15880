// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/publicid/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "publicid",
		Usage:   "Identifier obfuscation service",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "encode",
				Usage: "Obfuscate an identifier into a URL-safe token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "Identifier to obfuscate",
					},
					&cli.BoolFlag{
						Name:    "padding",
						Aliases: []string{"p"},
						Value:   true,
						Usage:   "Keep trailing '=' padding in the token",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunEncode(
						ctx,
						cmd.String("id"),
						cmd.Bool("padding"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "decode",
				Usage: "Recover the identifier behind a token",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "token",
						Aliases:  []string{"t"},
						Required: true,
						Usage:    "Token to decode",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunDecode(
						ctx,
						cmd.String("token"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "encode-numeric",
				Usage: "Obfuscate a numeric identifier (30-bit domain)",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "Numeric identifier to obfuscate",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunEncodeNumeric(
						ctx,
						cmd.Int64("id"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "decode-numeric",
				Usage: "Reverse a numeric obfuscation",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "id",
						Aliases:  []string{"i"},
						Required: true,
						Usage:    "Obfuscated numeric identifier",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunDecodeNumeric(
						ctx,
						cmd.Int64("id"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			},
			{
				Name:  "generate-key",
				Usage: "Generate fresh cipher and numeric key material",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenerateKey(commands.DefaultIO())
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
