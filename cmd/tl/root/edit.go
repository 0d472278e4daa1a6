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

func newEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id> <text>",
		Short: "Rewrite a todo's text",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("id and text are required")
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
			text := strings.Join(args[1:], " ")
			if err := svc.UpdateText(ctx, id, text); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Good.Render("Updated"), id)
			return nil
		},
	}

	return cmd
}
