package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func idArg(args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
		return errors.New("id must be an integer")
	}
	return nil
}

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a todo",
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
			res, err := svc.CompleteTodo(ctx, id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Good.Render(ui.IconDone+" Done"), res.TodoID)
			if res.WasEarly {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Beat the due time."))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%s %d day(s)", ui.IconStreak, res.Stats.CurrentStreak)))
			for _, a := range res.NewlyUnlocked {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", a.Icon, ui.BadgeUnlock, ui.Gold.Render(a.Title), ui.Muted.Render(a.Description))
			}
			return nil
		},
	}

	return cmd
}
