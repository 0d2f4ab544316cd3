package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

func newChainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chain",
		Short: "Manage ordered quest chains",
	}
	cmd.AddCommand(newChainNewCmd(), newChainStatusCmd(), newChainBreakCmd())
	return cmd
}

func newChainNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <name> <quest title>...",
		Short: "Start a chain of quests completed strictly in order",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 3 {
				return errors.New("a name and at least two quest titles are required")
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

			out, err := g.CreateChain(ctx, args[0], args[1:])
			if err != nil {
				return err
			}
			if out.Rejected {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" "+out.Reason))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s chain %q started: %d quests, first %q\n",
				ui.Good.Render(ui.IconChain), out.Chain.Name, len(out.Chain.Tasks), out.Chain.Tasks[0])
			return nil
		},
	}

	return cmd
}

func newChainStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the active chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Chain", g.ChainsEngine().Describe()))
			for _, rec := range g.State().Chains.History {
				mark := ui.Good.Render("done")
				if rec.Broken {
					mark = ui.Bad.Render("broken")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "- %q %d/%d %s\n", rec.Name, rec.Done, rec.Total, mark)
			}
			return nil
		},
	}

	return cmd
}

func newChainBreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break",
		Short: "End the active chain early, keeping a prorated bonus",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			g, cleanup, err := openGame(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out, err := g.BreakChain(ctx)
			if err != nil {
				return err
			}
			if out.Rejected {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" "+out.Reason))
			}
			return nil
		},
	}

	return cmd
}
