package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/storyflow-backend/internal/app"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <submission-id>",
		Short: "Print the transition history of a submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid submission id %q: %w", args[0], err)
			}
			return withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				transitions, err := a.Transitions.ListBySubmission(ctx, id)
				if err != nil {
					return err
				}
				if jsonOutput {
					return printJSON(transitions)
				}
				if len(transitions) == 0 {
					fmt.Println("no transitions recorded")
					return nil
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"When", "Action", "From", "To", "By", "Comment"})
				for _, t := range transitions {
					comment := ""
					if t.Comment != nil {
						comment = *t.Comment
					}
					tw.AppendRow(table.Row{
						t.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
						t.Action, t.FromStatus, t.ToStatus, t.PerformedByID, comment,
					})
				}
				tw.Render()
				return nil
			})
		},
	}
}
