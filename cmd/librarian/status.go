package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	statusJSON    bool
	statusDiagram bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show system status",
	Long: `Show system status. With --json, prints the introspected state of the config and secrets stores;
with --diagram, prints the same state as a Mermaid diagram.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Logger.Info("Status command requested")

		if statusDiagram {
			finish(cmd, args, app.Diagram()+"\n", 0)
			return nil
		}

		if statusJSON {
			data, err := json.MarshalIndent(app.State(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode status: %w", err)
			}
			finish(cmd, args, string(data)+"\n", 0)
			return nil
		}

		var b strings.Builder
		b.WriteString("Librarian System Status\n")
		b.WriteString("=======================\n")
		b.WriteString("Status: Not implemented yet\n")
		b.WriteString("Queue depth: 0\n")
		b.WriteString("Last announcement: None\n")
		b.WriteString("Last error: None\n")
		fmt.Fprintf(&b, "Config: %s\n", app.Config.Path())
		fmt.Fprintf(&b, "Secrets: %s (%s, %d channels)\n",
			app.Secrets.Path(), app.Secrets.Permission(), len(app.Secrets.Channels()))
		finish(cmd, args, b.String(), 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Output in JSON format")
	statusCmd.Flags().BoolVar(&statusDiagram, "diagram", false, "Output a Mermaid diagram")
}
