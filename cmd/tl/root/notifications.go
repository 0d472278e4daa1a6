package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func newNotificationsCmd() *cobra.Command {
	var markRead int64

	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if markRead > 0 {
				if err := svc.MarkNotificationRead(ctx, markRead); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s #%d\n", ui.Good.Render("Read"), markRead)
				return nil
			}

			list, err := svc.Notifications(ctx)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No notifications."))
				return nil
			}
			for _, n := range list {
				line := fmt.Sprintf("%s #%d %s %s", ui.IconBell, n.ID, n.Message, ui.Muted.Render(n.CreatedAt.Format("Jan 2 15:04")))
				if n.IsRead {
					line = ui.Dim.Render(line)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&markRead, "read", 0, "Mark the given notification id as read")

	return cmd
}
