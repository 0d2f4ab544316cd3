package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newResearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "research",
		Short: "Manage research items (quota-gated secondary activity)",
	}
	cmd.AddCommand(newResearchAddCmd(), newResearchDoneCmd(), newResearchListCmd(), newResearchRmCmd())
	return cmd
}

func newResearchAddCmd() *cobra.Command {
	var typ string
	var skill string
	var taskRef string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Open a research item",
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

			out, err := g.CreateResearch(ctx, args[0], engine.ResearchType(typ), skill, taskRef)
			if err != nil {
				return err
			}
			if out.Rejected {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" "+out.Reason))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s research #%d opened (target %d words)\n",
				ui.Good.Render(ui.IconScroll), out.Item.ID, out.Item.WordTarget)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typ, "type", "t", "short", "Type (short|long)")
	cmd.Flags().StringVarP(&skill, "skill", "s", "", "Linked skill")
	cmd.Flags().StringVar(&taskRef, "task", "", "Linked quest id")

	return cmd
}

func newResearchDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <id> <words>",
		Short: "Submit a research item at its final word count",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("id and word count are required")
			}
			for _, a := range args {
				if _, err := strconv.Atoi(a); err != nil {
					return fmt.Errorf("%q must be an integer", a)
				}
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

			id, _ := strconv.Atoi(args[0])
			words, _ := strconv.Atoi(args[1])
			out, err := g.CompleteResearch(ctx, id, words)
			if err != nil {
				return err
			}
			if out.Rejected {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" "+out.Reason))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s research #%d done: +%d xp, +%d gold",
				ui.Good.Render(ui.IconDone), id, out.XP, out.Gold)
			if out.GoldPenalty > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), " (-%d overage)", out.GoldPenalty)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	return cmd
}

func newResearchListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List research items and the creation gate",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			r := g.ResearchEngine()
			gate := ui.Bad.Render("closed")
			if r.CanCreate() {
				gate = ui.Good.Render("open")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s ratio %.2f (gate %s)\n", ui.Key.Render("Quests per research:"), r.Ratio(), gate)
			for _, it := range r.Items() {
				status := ui.Warn.Render("open")
				if it.Completed {
					status = ui.Good.Render("done")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- #%d %q [%s] target %d, %s\n", it.ID, it.Title, it.Type, it.WordTarget, status)
			}
			return nil
		},
	}

	return cmd
}

func newResearchRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a research item",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("id is required")
			}
			if _, err := strconv.Atoi(args[0]); err != nil {
				return errors.New("id must be an integer")
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

			id, _ := strconv.Atoi(args[0])
			out, err := g.DeleteResearch(ctx, id)
			if err != nil {
				return err
			}
			if out.Rejected {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" "+out.Reason))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Deleted."))
			return nil
		},
	}

	return cmd
}
