package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a quest (a few per day are free)",
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

			out, err := g.DeleteTask(ctx, args[0])
			if err != nil {
				return err
			}
			if out.Cost > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted. Over quota: -%d gold.\n", out.Cost)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Deleted."))
			}
			return nil
		},
	}

	return cmd
}
