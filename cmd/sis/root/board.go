package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Interactive quest board (TUI)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			return tui.RunBoard(ctx, g)
		},
	}

	return cmd
}
