package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newAddCmd() *cobra.Command {
	var diff int
	var skill string
	var skill2 string
	var deadline string
	var highStakes bool
	var boss bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
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

			in := engine.CreateTaskInput{
				Title:      args[0],
				Difficulty: engine.Difficulty(diff),
				Skill:      skill,
				Skill2:     skill2,
				HighStakes: highStakes,
				Boss:       boss,
			}
			if deadline != "" {
				t, err := time.ParseInLocation("2006-01-02", deadline, time.Local)
				if err != nil {
					return fmt.Errorf("bad deadline %q (want YYYY-MM-DD)", deadline)
				}
				end := t.Add(24*time.Hour - time.Second)
				in.Deadline = &end
			}

			out, err := g.CreateTask(ctx, in)
			if err != nil {
				return err
			}
			if out.Rejected {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" "+out.Reason))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %q added (%d xp / %d gold on completion)\n",
				ui.Good.Render(ui.IconQuest), args[0], out.XP, out.Gold)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("id: "+out.ID))
			return nil
		},
	}

	cmd.Flags().IntVarP(&diff, "diff", "d", 2, "Difficulty (1-5)")
	cmd.Flags().StringVarP(&skill, "skill", "s", "", "Primary skill")
	cmd.Flags().StringVar(&skill2, "skill2", "", "Secondary skill (synergy bonus)")
	cmd.Flags().StringVar(&deadline, "due", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&highStakes, "high-stakes", false, "Triple gold, no excuses")
	cmd.Flags().BoolVar(&boss, "boss", false, "Boss quest (flat bounty)")

	return cmd
}
