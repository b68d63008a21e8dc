// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mvidal/ordervault/cmd/app/commands"
)

func main() {
	cmd := &cli.Command{
		Name:    "ordervault",
		Usage:   "Order management with hybrid payload encryption",
		Version: "1.0.0",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate the RSA keypair used to wrap order payload keys",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "keys",
						Usage:   "Directory to write public.pem and private.pem into",
					},
					&cli.IntFlag{
						Name:  "bits",
						Value: 2048,
						Usage: "RSA modulus size in bits (minimum 2048)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGenerateKeys(os.Stdout, cmd.String("output"), int(cmd.Int("bits")))
				},
			},
			{
				Name:  "seed",
				Usage: "Create demo clients and products",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunSeed(ctx)
				},
			},
			{
				Name:  "create-order",
				Usage: "Create an order for a client",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "client",
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "Client id (UUID)",
					},
					&cli.StringSliceFlag{
						Name:     "line",
						Aliases:  []string{"l"},
						Required: true,
						Usage:    "Order line as <product-uuid>:<quantity> (repeatable)",
					},
					&cli.StringFlag{
						Name:    "payload",
						Aliases: []string{"p"},
						Usage:   "Sensitive payload as a JSON object (encrypted before storage)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunCreateOrder(
						ctx,
						os.Stdout,
						cmd.String("client"),
						cmd.StringSlice("line"),
						cmd.String("payload"),
					)
				},
			},
			{
				Name:  "get-order",
				Usage: "Show an order with its lines (payload stays encrypted)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Required: true,
						Usage:    "Order id (UUID)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunGetOrder(ctx, os.Stdout, cmd.String("id"))
				},
			},
			{
				Name:  "decrypt-order",
				Usage: "Decrypt and print an order's sensitive payload",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Required: true,
						Usage:    "Order id (UUID)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunDecryptOrder(ctx, os.Stdout, cmd.String("id"))
				},
			},
			{
				Name:  "update-order-status",
				Usage: "Advance an order's status by one step",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Required: true,
						Usage:    "Order id (UUID)",
					},
					&cli.StringFlag{
						Name:     "status",
						Aliases:  []string{"s"},
						Required: true,
						Usage:    "Target status: preparing or delivered",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunUpdateOrderStatus(ctx, os.Stdout, cmd.String("id"), cmd.String("status"))
				},
			},
			{
				Name:  "metrics",
				Usage: "Serve the Prometheus metrics endpoint until interrupted",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMetricsListener(ctx)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		logger.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
