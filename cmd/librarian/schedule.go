package main

import (
	"github.com/spf13/cobra"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Schedule management",
}

var scheduleReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Reload schedule configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Logger.Info("Schedule reload requested", "schedule_file", app.Config.Get("announce.schedule_file", ""))
		finish(cmd, args, "Reloading schedule configuration...\n(Not implemented yet)\n", 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleReloadCmd)
}
