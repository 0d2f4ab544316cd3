package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newFailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fail <id>",
		Short: "Concede a quest and take the damage",
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

			out, err := g.FailTask(ctx, args[0], true)
			if err != nil {
				return err
			}
			switch {
			case out.RestDay:
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Rest day. No damage taken."))
			case out.Shielded:
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render("Shielded. No damage taken."))
			case out.Died:
				fmt.Fprintln(cmd.OutOrStdout(), ui.Bad.Render(ui.IconSkull+" The run ends here."))
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "%s %q failed: -%d health\n",
					ui.Bad.Render(ui.IconBolt), out.Title, out.Damage)
				if out.LockdownEngaged {
					fmt.Fprintln(cmd.OutOrStdout(), ui.BadgeLockdown)
				}
			}
			return nil
		},
	}

	return cmd
}
