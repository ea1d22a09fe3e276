package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/storyflow-backend/internal/app"
)

func cleanupCmd() *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete read notifications past the retention period",
		Long:  "Delete read notifications past the retention period. Intended to be run by an external cron job.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			return withApp(ctx, func(ctx context.Context, a *app.App) error {
				n, err := a.NotificationService.Cleanup(ctx, olderThan)
				if err != nil {
					return err
				}
				fmt.Printf("deleted %d notifications\n", n)
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "age cutoff (defaults to notification.retention_days)")
	return cmd
}
