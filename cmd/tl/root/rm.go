package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo",
		Args: func(cmd *cobra.Command, args []string) error {
			return idArg(args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			id, _ := strconv.ParseInt(args[0], 10, 64)
			if err := svc.RemoveTodo(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Warn.Render("Deleted"), id)
			return nil
		},
	}

	return cmd
}
