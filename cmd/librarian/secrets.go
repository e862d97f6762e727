package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/librarian/pkg/secrets"
	"github.com/spf13/cobra"
)

var secretsCmd = &cobra.Command{
	Use:   "secrets",
	Short: "Secrets management",
	Long:  `Manage channel PSKs. Keys are always masked on output.`,
}

var secretsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured channels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		channels := app.Secrets.Channels()
		if len(channels) == 0 {
			finish(cmd, args, "No channels configured\n", 0)
			return nil
		}

		var b strings.Builder
		b.WriteString("Configured channels:\n")
		for _, channel := range channels {
			key, _ := app.Secrets.Get(channel)
			fmt.Fprintf(&b, "  %s: %s\n", channel, secrets.Mask(key))
		}
		finish(cmd, args, b.String(), 0)
		return nil
	},
}

var secretsSetCmd = &cobra.Command{
	Use:   "set <channel> <psk>",
	Short: "Set PSK for a channel",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel, psk := args[0], args[1]
		if channel == "" || psk == "" {
			finish(cmd, []string{channel}, "Error: Channel and PSK are required\n", 1)
			return errReported
		}

		if err := app.Secrets.Set(channel, psk); err != nil {
			return err
		}
		// The key itself never reaches the log.
		finish(cmd, []string{channel}, fmt.Sprintf("Set PSK for channel '%s'\n", channel), 0)
		return nil
	},
}

var secretsGetCmd = &cobra.Command{
	Use:   "get <channel>",
	Short: "Get PSK for a channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		channel := args[0]
		if channel == "" {
			finish(cmd, args, "Error: Channel is required\n", 1)
			return errReported
		}

		key, ok := app.Secrets.Get(channel)
		if !ok {
			finish(cmd, args, fmt.Sprintf("No PSK found for channel '%s'\n", channel), 1)
			return errReported
		}
		finish(cmd, args, fmt.Sprintf("Channel '%s': %s\n", channel, secrets.Mask(key)), 0)
		return nil
	},
}

var secretsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate secrets configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := app.Secrets.Validate()

		var b strings.Builder
		for _, channel := range report.Missing {
			fmt.Fprintf(&b, "Missing PSK for channel '%s'\n", channel)
		}
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "Warning: %s\n", w.Message)
		}

		if !report.Valid {
			b.WriteString("Secrets configuration has issues\n")
			finish(cmd, args, b.String(), 1)
			return errReported
		}
		b.WriteString("Secrets configuration is valid\n")
		finish(cmd, args, b.String(), 0)
		return nil
	},
}

var secretsCreateExampleCmd = &cobra.Command{
	Use:   "create-example",
	Short: "Create example secrets file",
	Long:  `Overwrite the secrets file with placeholder entries. Existing keys are lost.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.Secrets.CreateExample(); err != nil {
			return err
		}
		finish(cmd, args, "Created example secrets file\n", 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(secretsCmd)
	secretsCmd.AddCommand(secretsListCmd, secretsSetCmd, secretsGetCmd, secretsValidateCmd, secretsCreateExampleCmd)
}
