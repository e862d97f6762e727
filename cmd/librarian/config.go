package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/librarian/pkg/adapters/fs"
	lifecycleadapter "github.com/aretw0/librarian/pkg/adapters/lifecycle"
	"github.com/aretw0/librarian/pkg/config"
	"github.com/aretw0/librarian/pkg/core"
)

var (
	showFormat    string
	watchPattern  string
	watchDebounce time.Duration
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print the value at a dotted path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, status := app.Config.Lookup(args[0])
		if status != core.LookupFound {
			finish(cmd, args, fmt.Sprintf("No value at '%s' (%s)\n", args[0], status), 1)
			return errReported
		}

		out, err := formatValue(value)
		if err != nil {
			return err
		}
		finish(cmd, args, out, 0)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set a value and save the config file",
	Long: `Set the value at a dotted path and save the config file.
The value is read as a TOML literal (8, true, 0.3, [30, 10], "text");
anything else is stored as a plain string.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if len(config.SplitPath(path)) == 0 {
			finish(cmd, args, "Error: path is required\n", 1)
			return errReported
		}

		app.Config.Set(path, config.ParseValue(args[1]))
		if err := app.Config.Save(); err != nil {
			return err
		}
		finish(cmd, args, fmt.Sprintf("Set %s\n", path), 0)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the whole configuration document",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serializer, err := fs.SerializerFor(showFormat)
		if err != nil {
			return err
		}
		data, err := serializer.Serialize(app.Config.Document())
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		finish(cmd, args, string(data), 0)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := app.Config.Validate()

		var b strings.Builder
		for _, e := range report.Errors {
			fmt.Fprintf(&b, "Error: %s\n", e)
		}
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "Warning: %s\n", w)
		}

		if !report.Valid {
			b.WriteString("Configuration has issues\n")
			finish(cmd, args, b.String(), 1)
			return errReported
		}
		b.WriteString("Configuration is valid\n")
		finish(cmd, args, b.String(), 0)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		finish(cmd, args, app.Config.Path()+"\n", 0)
		return nil
	},
}

var configWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the configuration whenever the file changes",
	Long:  `Watch the config file and reload it on every change until interrupted. Each reload is validated.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return watchConfig(ctx, cmd)
	},
}

func watchConfig(ctx context.Context, cmd *cobra.Command) error {
	watcher := config.NewWatcher(app.Config, config.WatchOptions{
		Pattern:  watchPattern,
		Debounce: watchDebounce,
		Logger:   app.Logger.With("component", "watcher"),
	})
	events, err := watcher.Start(ctx)
	if err != nil {
		return err
	}

	source := lifecycleadapter.NewSource(events, app.Config)
	if err := source.Start(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", app.Config.Path())
	for e := range source.Events() {
		fmt.Fprintln(cmd.OutOrStdout(), e.String())
	}
	return nil
}

// formatValue renders a config value the way it would appear in the file.
// Tables are printed as TOML; lists as inline arrays.
func formatValue(v any) (string, error) {
	switch val := v.(type) {
	case map[string]any:
		data, err := fs.NewTOMLSerializer().Serialize(val)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case string:
		return val + "\n", nil
	case []any, []map[string]any:
		data, err := json.Marshal(val)
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	default:
		return fmt.Sprintf("%v\n", val), nil
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd, configShowCmd, configValidateCmd, configPathCmd, configWatchCmd)
	configShowCmd.Flags().StringVarP(&showFormat, "format", "f", "toml", "Output format (toml, yaml, json)")
	configWatchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Glob for file names that trigger a reload (default: the config file name)")
	configWatchCmd.Flags().DurationVar(&watchDebounce, "debounce", config.DefaultDebounce, "Quiet period before reloading")
}
