package root

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"
)

func newBossCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boss <level>",
		Short: "Claim a boss milestone defeat",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("milestone level is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("level must be an integer")
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

			level, _ := strconv.Atoi(args[0])
			_, err = g.DefeatBoss(ctx, level)
			return err
		},
	}

	return cmd
}
