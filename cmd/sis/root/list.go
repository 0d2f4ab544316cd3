package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List outstanding quests passing the active filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			recs, err := g.OutstandingFiltered(ctx)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Nothing outstanding."))
				return nil
			}
			for _, r := range recs {
				line := fmt.Sprintf("%s %q d%d (+%d xp/+%d gold)", ui.IconQuest, r.Meta.Title, r.Meta.Difficulty, r.Meta.XP, r.Meta.Gold)
				if r.Meta.Deadline != nil {
					line += " " + ui.Warn.Render("due "+r.Meta.Deadline.Format("2006-01-02"))
					if r.Meta.Deadline.Before(time.Now()) {
						line += " " + ui.Bad.Render("OVERDUE")
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("  id: "+r.ID))
			}
			return nil
		},
	}

	return cmd
}
