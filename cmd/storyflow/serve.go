package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/storyflow-backend/internal/app"
)

func serveCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and live notification stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.Log)
			logger.Info("starting storyflow",
				slog.String("version", app.BuildVersion()),
				slog.String("log_level", cfg.Log.Level),
				slog.Bool("redis_relay", cfg.Redis.Enabled),
			)

			ctx := cmd.Context()
			if migrate {
				if err := migrateUp(ctx, cfg.Database.DSN, logger); err != nil {
					return err
				}
			}

			a, err := app.New(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.Serve(ctx)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}

func migrateUp(ctx context.Context, dsn string, logger *slog.Logger) error {
	m, err := newMigrator(ctx, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	res, err := m.Up(ctx)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", slog.Int("count", len(res)))
	return nil
}
