package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/storyflow-backend/internal/adapter/postgres"
	"github.com/heartmarshall/storyflow-backend/internal/app"
)

func newMigrator(ctx context.Context, dsn string) (*postgres.Migrator, error) {
	return postgres.NewMigrator(ctx, dsn)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "migrate", Short: "Manage database migrations"}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return migrateUp(cmd.Context(), cfg.Database.DSN, app.NewLogger(cfg.Log))
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, m *postgres.Migrator) error {
				res, err := m.Down(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("rolled back %s\n", res.Source.Path)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, m *postgres.Migrator) error {
				st, err := m.Status(ctx)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(st)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Version", "File", "State", "Applied At"})
				for _, s := range st {
					applied := ""
					if !s.AppliedAt.IsZero() {
						applied = s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
					}
					tw.AppendRow(table.Row{s.Source.Version, s.Source.Path, s.State, applied})
				}
				tw.Render()
				return nil
			})
		},
	})
	return cmd
}

func withMigrator(ctx context.Context, fn func(context.Context, *postgres.Migrator) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := newMigrator(ctx, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(ctx, m)
}
