package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/storyflow-backend/internal/app"
)

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue an access token for a registered user",
		Long:  "Issue an access token carrying the user's current role. Intended for local testing and operations.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", args[0], err)
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				u, err := a.Users.GetByID(ctx, id)
				if err != nil {
					return fmt.Errorf("user %s: %w", id, err)
				}
				token, err := a.Tokens.GenerateAccessToken(u.ID, u.Role)
				if err != nil {
					return err
				}
				fmt.Println(token)
				return nil
			})
		},
	}
}
