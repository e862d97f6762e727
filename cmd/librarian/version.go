package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/librarian"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of librarian",
	// No stores are needed to print the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "librarian version %s\n", strings.TrimSpace(librarian.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
