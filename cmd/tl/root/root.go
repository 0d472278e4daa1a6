package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tally/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "tl",
	Short:         "Tally is a local-first todo tracker with streaks and achievements",
	Long:          "Tally is a local-first CLI/TUI todo tracker. It understands natural-language due times and keeps streaks, daily stats and achievements.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoneCmd(),
		newUndoCmd(),
		newListCmd(),
		newRemoveCmd(),
		newSnoozeCmd(),
		newEditCmd(),
		newDueCmd(),
		newStatusCmd(),
		newAchievementsCmd(),
		newCarryoverCmd(),
		newNotificationsCmd(),
		newNotifyCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
