package main

import (
	"fmt"

	"github.com/aretw0/librarian/pkg/logging"
	"github.com/spf13/cobra"
)

var broadcastCmd = &cobra.Command{
	Use:   "broadcast <message>",
	Short: "Send urgent broadcast",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message := args[0]
		logging.LogUserInput(app.Logger, message)
		app.Logger.Info("Broadcast command requested", "message", message)
		finish(cmd, args, fmt.Sprintf("Broadcasting: %s\n(Not implemented yet)\n", message), 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(broadcastCmd)
}
