package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func newAchievementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "Show the achievement catalog with progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			views, err := svc.AchievementViews(ctx)
			if err != nil {
				return err
			}

			unlocked := 0
			for _, v := range views {
				if v.IsUnlocked {
					unlocked++
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements (%d/%d)", unlocked, len(views))))
			fmt.Fprintln(cmd.OutOrStdout(), "")

			for _, v := range views {
				title := ui.Muted.Render(v.Title)
				marker := ui.IconLocked
				if v.IsUnlocked {
					title = ui.Gold.Render(v.Title)
					marker = v.Icon
				}
				bar := ui.ProgressBar(v.ProgressPercent, 10)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %d/%d\n", marker, title, bar, v.Progress, v.MaxProgress)
				fmt.Fprintf(cmd.OutOrStdout(), "   %s\n", ui.Dim.Render(v.Description))
			}
			return nil
		},
	}

	return cmd
}
