package root

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"tally/internal/config"
	"tally/internal/engine"
	"tally/internal/storage"
)

func newNotifyCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Run the pending-task notification daemon",
		Long: `Periodically (hourly by default) writes a reminder notification for every
user with pending todos, skipping users inactive for more than 3 days.
Use --once to run a single sweep and exit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg := config.Load()
			path := cfg.DBPath
			if path == "" {
				var err error
				path, err = storage.ResolveDBPath()
				if err != nil {
					return err
				}
			}
			db, err := storage.Open(ctx, path)
			if err != nil {
				return err
			}
			defer db.Close()

			svc := engine.NewService(db)

			if once {
				sent, err := svc.SweepPending(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Sent %d notification(s)\n", sent)
				return nil
			}

			c := cron.New()
			spec := fmt.Sprintf("@every %ds", int(cfg.NotifyInterval.Seconds()))
			if _, err := c.AddFunc(spec, func() {
				jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				sent, err := svc.SweepPending(jobCtx)
				if err != nil {
					log.Printf("sweep: %v", err)
					return
				}
				if sent > 0 {
					log.Printf("sweep: sent %d notification(s)", sent)
				}
			}); err != nil {
				return err
			}

			c.Start()
			log.Printf("notify daemon started (every %s)", cfg.NotifyInterval)
			<-ctx.Done()
			stopCtx := c.Stop()
			<-stopCtx.Done()
			log.Println("notify daemon stopped")
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Run one sweep and exit")

	return cmd
}
