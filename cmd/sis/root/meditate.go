package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newMeditateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meditate",
		Short: "Run one recovery cycle while locked down",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := g.Meditate(ctx)
			if err != nil {
				return err
			}
			if out.Rejected {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" "+out.Reason))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render(ui.IconLotus), out.Message)
			if !out.Reduced {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(ui.Bar(out.CyclesDone, out.CyclesDone+out.CyclesRemaining, 20)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Lockdown remaining", g.Meditation().Remaining().Round(time.Second)))
			return nil
		},
	}

	return cmd
}
