package root

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func newSnoozeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snooze <id>",
		Short: "Push a todo's due time back 30 minutes (capped at end of day)",
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
			next, err := svc.SnoozeTodo(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d until %s\n", ui.Warn.Render(ui.IconClock+" Snoozed"), id, next.Format("15:04"))
			return nil
		},
	}

	return cmd
}
