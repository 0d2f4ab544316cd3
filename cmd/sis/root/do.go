package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <id>",
		Short: "Complete a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := g.CompleteTask(ctx, args[0])
			if err != nil {
				return err
			}
			if out.Rejected {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" "+out.Reason))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q done: +%d xp, +%d gold\n",
				ui.Good.Render(ui.IconDone), out.Title, out.XP, out.Gold)
			if out.ChainCompleted {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(ui.IconChain+" chain complete"))
			}
			if out.LevelUp {
				fmt.Fprintln(cmd.OutOrStdout(), ui.BadgeLevelUp+" "+ui.Gold.Render(fmt.Sprintf("level %d", out.Level)))
			}
			return nil
		},
	}

	return cmd
}
