package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/engine"
	"tally/internal/ui"
)

func newListCmd() *cobra.Command {
	var filter string
	var sortBy string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			todos, err := svc.ListTodos(ctx, engine.ParseFilter(filter), engine.ParseSortMode(sortBy))
			if err != nil {
				return err
			}

			if len(todos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No todos. Add one: tl add \"Buy milk tomorrow 9am\""))
				return nil
			}

			for _, t := range todos {
				line := fmt.Sprintf("%s #%d %s", ui.Checkbox(t.IsCompleted, t.IsOverdue), t.ID, t.Text)
				if t.DueTime != nil {
					due := t.DueTime.Format("Mon Jan 2 15:04")
					if t.IsOverdue {
						line += " " + ui.Bad.Render(due)
					} else {
						line += " " + ui.Muted.Render(due)
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "all", "Filter (all|today|overdue|completed|unscheduled|past)")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "due", "Sort (due|created|manual)")

	return cmd
}
