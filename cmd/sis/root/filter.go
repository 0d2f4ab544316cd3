package root

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Tag quests and pick the active filter",
	}
	cmd.AddCommand(newFilterTagCmd(), newFilterSetCmd(), newFilterShowCmd())
	return cmd
}

func newFilterTagCmd() *cobra.Command {
	var energy string
	var contextTag string
	var tags []string

	cmd := &cobra.Command{
		Use:   "tag <quest title>",
		Short: "Attach energy/context/tags to a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest title is required")
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
			return g.TagTask(ctx, args[0], energy, contextTag, tags)
		},
	}

	cmd.Flags().StringVarP(&energy, "energy", "e", "", "Energy (high|low)")
	cmd.Flags().StringVarP(&contextTag, "context", "c", "", "Context (home|work|out)")
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "Free-form tags")

	return cmd
}

func newFilterSetCmd() *cobra.Command {
	var energy string
	var contextTag string
	var toggle []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the active filter selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			return g.SetActiveFilter(ctx, energy, contextTag, toggle)
		},
	}

	cmd.Flags().StringVarP(&energy, "energy", "e", "", "Energy (high|low|any)")
	cmd.Flags().StringVarP(&contextTag, "context", "c", "", "Context (home|work|out|any)")
	cmd.Flags().StringSliceVarP(&toggle, "toggle", "t", nil, "Toggle tags")

	return cmd
}

func newFilterShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the active filter",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			a := g.FiltersEngine().Active()
			var tags []string
			for t := range a.Tags {
				tags = append(tags, t)
			}
			sort.Strings(tags)
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Energy", a.Energy))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Context", a.Context))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Tags", strings.Join(tags, ", ")))
			return nil
		},
	}

	return cmd
}
