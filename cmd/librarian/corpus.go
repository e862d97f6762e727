package main

import (
	"github.com/spf13/cobra"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Knowledge base management",
}

var corpusIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Rebuild knowledge base from documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app.Logger.Info("Corpus ingest requested", "db_path", app.Config.Get("rag.db_path", ""))
		finish(cmd, args, "Rebuilding knowledge base...\n(Not implemented yet)\n", 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(corpusCmd)
	corpusCmd.AddCommand(corpusIngestCmd)
}
