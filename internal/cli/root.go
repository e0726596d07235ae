// Package cli implements the curtisos command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "curtisos" command.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "curtisos",
		Short:         "Personal business operations server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	// Commands open the runtime when they run, never at construction.
	load := func(cmd *cobra.Command) (*Runtime, error) {
		return openRuntime(cmd, configPath)
	}

	root.AddCommand(
		newServeCmd(load),
		newMigrateCmd(load),
		newExportCmd(load),
		newSyncEmailCmd(load),
		newDevPlansCmd(load),
		newDashboardCmd(load),
	)
	return root
}

type loader func(cmd *cobra.Command) (*Runtime, error)
