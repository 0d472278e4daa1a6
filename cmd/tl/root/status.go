package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show streaks, daily stats and recent achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stats, err := svc.UserStats(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "Productivity"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Completed", stats.TotalCompleted))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", fmt.Sprintf("%s %d day(s) (best %d)", ui.IconStreak, stats.CurrentStreak, stats.LongestStreak)))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Best day", fmt.Sprintf("%d tasks", stats.MaxDailyTasks)))
			if stats.LastCompletionDate != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Last completion", stats.LastCompletionDate))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "")

			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("⏱ Time of day"))
			fmt.Fprintf(cmd.OutOrStdout(), "- 🌅 before 6 AM: %d\n", stats.EarlyBirdCompletions)
			fmt.Fprintf(cmd.OutOrStdout(), "- 🌙 after 11 PM: %d\n", stats.LateCompletions)
			fmt.Fprintf(cmd.OutOrStdout(), "- ⏰ beat the due time: %d\n", stats.EarlyCompletions)
			fmt.Fprintf(cmd.OutOrStdout(), "- 🏖️ on weekends: %d\n", stats.WeekendCompletions)
			fmt.Fprintln(cmd.OutOrStdout(), "")

			// Last few active days, newest first.
			if len(stats.DailyCompletions) > 0 {
				days := make([]string, 0, len(stats.DailyCompletions))
				for day := range stats.DailyCompletions {
					days = append(days, day)
				}
				sort.Sort(sort.Reverse(sort.StringSlice(days)))
				if len(days) > 7 {
					days = days[:7]
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("📊 Recent days"))
				for _, day := range days {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s: %d\n", day, stats.DailyCompletions[day])
				}
				fmt.Fprintln(cmd.OutOrStdout(), "")
			}

			recent, err := svc.RecentUnlocks(ctx, 5)
			if err != nil {
				return err
			}
			if len(recent) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render(ui.IconTrophy+" Recent achievements"))
				for _, a := range recent {
					when := ""
					if a.UnlockedAt != nil {
						when = a.UnlockedAt.Format("Jan 2")
					}
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s %s\n", a.Icon, ui.Gold.Render(a.Title), ui.Muted.Render(when))
				}
			}

			return nil
		},
	}

	return cmd
}
