package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the mrplan command tree.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mrplan",
		Short:         "Material requirements planning engine",
		Long:          "mrplan explodes master production schedules through multi-level BOMs\ninto time-phased net requirements, and manages the resulting planning runs.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newPlanCommand())
	rootCmd.AddCommand(newRunsCommand())

	return rootCmd
}
