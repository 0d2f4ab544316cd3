package root

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the state document as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := json.MarshalIndent(g.State(), "", "  ")
			if err != nil {
				return fmt.Errorf("encode state: %w", err)
			}
			cmd.Println(string(data))
			return nil
		},
	}

	return cmd
}
