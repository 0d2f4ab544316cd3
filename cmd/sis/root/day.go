package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Roll the daily login (idempotent per calendar day)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := g.RollDailyLogin(ctx)
			if err != nil {
				return err
			}
			if out.AlreadyRolled {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Today is already rolled."))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconBoulder, "A new day"))
			if out.RotDamage > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s rot: -%d health (%d days away)\n", ui.Bad.Render(ui.IconBolt), out.RotDamage, out.MissedDays)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s — %s\n", out.Modifier.Icon, ui.Key.Render(out.Modifier.Name), ui.Muted.Render(out.Modifier.Desc))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Streak", out.Streak))

			st := g.State()
			fmt.Fprintln(cmd.OutOrStdout(), ui.H2.Render("Today's objectives"))
			for _, m := range st.Missions.Missions {
				if def, ok := engine.MissionDefByID(m.DefID); ok {
					fmt.Fprintf(cmd.OutOrStdout(), "- %s %s\n", def.Name, ui.Muted.Render("("+def.Desc+")"))
				}
			}
			return nil
		},
	}

	return cmd
}
