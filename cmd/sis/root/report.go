package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show this week's report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			rep := g.AnalyticsEngine().GenerateWeeklyReport(g.State().Skills)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading("📊", "Week of "+rep.WeekStart))
			fmt.Fprintln(out, ui.LabelValue("Completed", rep.Completed))
			fmt.Fprintln(out, ui.LabelValue("Failed", rep.Failed))
			fmt.Fprintf(out, "%s %.0f%%\n", ui.Key.Render("Success rate:"), rep.SuccessRate*100)
			fmt.Fprintln(out, ui.LabelValue("XP earned", rep.XPEarned))
			fmt.Fprintln(out, ui.LabelValue("Gold earned", rep.GoldEarned))
			fmt.Fprintln(out, ui.LabelValue("Damage taken", rep.DamageTaken))
			if len(rep.TopSkills) > 0 {
				fmt.Fprintln(out, ui.LabelValue("Top skills", strings.Join(rep.TopSkills, ", ")))
			}
			if rep.BestDay != "" {
				fmt.Fprintln(out, ui.LabelValue("Best day", rep.BestDay))
			}
			if rep.WorstDay != "" {
				fmt.Fprintln(out, ui.LabelValue("Worst day", rep.WorstDay))
			}
			return nil
		},
	}

	return cmd
}
