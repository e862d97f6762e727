package main

import (
	"github.com/spf13/cobra"
)

var runCoreCmd = &cobra.Command{
	Use:   "run-core",
	Short: "Start core services",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Logger.Info("Starting core services...")
		finish(cmd, args, "Starting Librarian core services...\n(Not implemented yet)\n", 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCoreCmd)
}
