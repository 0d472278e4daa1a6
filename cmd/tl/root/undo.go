package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func newUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <id>",
		Short: "Mark a completed todo as pending again",
		Long: `Revert a completion, e.g. after an accidental "done".

Ledger counters and unlocked achievements are not rolled back; an unlock is
permanent and streak history is not rewritten.`,
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
			if err := svc.UncompleteTodo(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d is pending again\n", ui.Warn.Render(ui.IconWarn+" Undone"), id)
			return nil
		},
	}

	return cmd
}
