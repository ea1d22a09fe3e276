package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/storyflow-backend/internal/app"
	"github.com/heartmarshall/storyflow-backend/internal/domain"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Manage local user projections"}
	cmd.AddCommand(userAddCmd())
	cmd.AddCommand(userListCmd())
	return cmd
}

func userAddCmd() *cobra.Command {
	var id, email, name, role string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create or update a user with a role",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := domain.UserRole(strings.ToUpper(role))
			if !r.IsValid() {
				return fmt.Errorf("unknown role %q", role)
			}
			uid := uuid.New()
			if id != "" {
				parsed, err := uuid.Parse(id)
				if err != nil {
					return fmt.Errorf("invalid user id %q: %w", id, err)
				}
				uid = parsed
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				now := time.Now().UTC()
				u, err := a.Users.Upsert(ctx, domain.User{
					ID: uid, Email: email, Name: name, Role: r, CreatedAt: now, UpdatedAt: now,
				})
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(u)
				}
				fmt.Printf("%s\t%s\t%s\n", u.ID, u.Role, u.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "user id (defaults to a new UUID)")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleWriter), "role")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func userListCmd() *cobra.Command {
	var role string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *domain.UserRole
			if role != "" {
				r := domain.UserRole(strings.ToUpper(role))
				if !r.IsValid() {
					return fmt.Errorf("unknown role %q", role)
				}
				filter = &r
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				users, err := a.Users.List(ctx, filter, limit, 0)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(users)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Email", "Name", "Role"})
				for _, u := range users {
					tw.AppendRow(table.Row{u.ID, u.Email, u.Name, u.Role})
				}
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "role filter")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum rows")
	return cmd
}
