package root

import (
	"context"

	"github.com/spf13/cobra"
)

func newShieldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shield",
		Short: "Buy a shield that absorbs the next failure",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			_, err = g.ActivateShield(ctx)
			return err
		},
	}
	return cmd
}

func newRestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rest",
		Short: "Declare a rest day (failures cost nothing, rust pauses)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			_, err = g.ActivateRestDay(ctx)
			return err
		},
	}
	return cmd
}
