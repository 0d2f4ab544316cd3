package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "sis",
	Short:         "Sisyphus — a life-RPG engine for your task notes",
	Long:          "Sisyphus turns a folder of task notes into a single-player RPG: quests pay experience and gold, failure draws blood, and every day the boulder waits.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newFailCmd(),
		newDeleteCmd(),
		newDayCmd(),
		newMeditateCmd(),
		newResearchCmd(),
		newChainCmd(),
		newBossCmd(),
		newShieldCmd(),
		newRestCmd(),
		newFilterCmd(),
		newListCmd(),
		newStatusCmd(),
		newReportCmd(),
		newRebirthCmd(),
		newSweepCmd(),
		newBoardCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
