package main

import (
	"github.com/spf13/cobra"
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow logs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Logger.Info("Log tail requested")
		finish(cmd, args, "Following logs...\n(Not implemented yet)\n", 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tailCmd)
}
