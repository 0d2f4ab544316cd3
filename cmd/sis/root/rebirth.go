package root

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newRebirthCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rebirth",
		Short: "Give up this run and carry a decayed legacy forward",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Fprint(cmd.OutOrStdout(), ui.Warn.Render("This ends the current run. Type 'yes' to confirm: "))
				line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
				if strings.TrimSpace(line) != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("The boulder stays where it is."))
					return nil
				}
			}

			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			_, err = g.TriggerRebirth(ctx)
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")

	return cmd
}
