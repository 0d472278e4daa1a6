package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func newDueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due <id> <when>",
		Short: "Set a todo's due time from a phrase (\"tomorrow 9am\", \"in 2 hours\")",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("id and a time phrase are required")
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return errors.New("id must be an integer")
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

			id, _ := strconv.ParseInt(args[0], 10, 64)
			phrase := strings.Join(args[1:], " ")
			due, err := svc.UpdateDueTime(ctx, id, phrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s\n", ui.Good.Render(ui.IconClock+" Due"), id, due.Format("Mon Jan 2 15:04"))
			return nil
		},
	}

	return cmd
}
