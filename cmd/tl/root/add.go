package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func newAddCmd() *cobra.Command {
	var literal bool

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a todo (understands due times like \"tomorrow at 7pm\")",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("text is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.AddTodo(ctx, strings.Join(args, " "), literal)
			if err != nil {
				return err
			}

			line := fmt.Sprintf("%s #%d %s", ui.Good.Render(ui.IconPlus+" Added"), res.TodoID, res.Text)
			fmt.Fprintln(cmd.OutOrStdout(), line)
			if res.DueTime != nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Due", res.DueTime.Format("Mon Jan 2 15:04")))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&literal, "literal", false, "Store the text verbatim, skip due-time extraction")

	return cmd
}
