package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newSweepCmd() *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Fail every outstanding quest whose deadline has passed",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			run := func() error {
				out, err := g.SweepDeadlines(ctx)
				if err != nil {
					return err
				}
				if len(out.Failed) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No deadlines passed."))
				}
				return nil
			}

			if !watch {
				return run()
			}
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				if err := run(); err != nil {
					return err
				}
				<-ticker.C
			}
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Keep sweeping on an interval")
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Sweep interval in watch mode")

	return cmd
}
