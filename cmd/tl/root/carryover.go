package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func newCarryoverCmd() *cobra.Command {
	var rollOver bool
	var noRollOver bool

	cmd := &cobra.Command{
		Use:   "carryover",
		Short: "Move leftover todos from previous days onto today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if rollOver || noRollOver {
				if err := svc.SetRollOver(ctx, rollOver); err != nil {
					return err
				}
				state := ui.Bad.Render("off")
				if rollOver {
					state = ui.Good.Render("on")
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Auto roll-over", state))
				return nil
			}

			past, err := svc.PastTodos(ctx)
			if err != nil {
				return err
			}
			if len(past) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing to carry over."))
				return nil
			}

			ids := make([]int64, 0, len(past))
			for _, t := range past {
				ids = append(ids, t.ID)
			}
			if err := svc.CarryOver(ctx, ids); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d todo(s) onto today\n", ui.Good.Render("Carried"), len(ids))
			return nil
		},
	}

	cmd.Flags().BoolVar(&rollOver, "auto", false, "Enable automatic roll-over at the daily reset")
	cmd.Flags().BoolVar(&noRollOver, "no-auto", false, "Disable automatic roll-over")

	return cmd
}
