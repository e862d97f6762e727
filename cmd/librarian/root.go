package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/librarian"
	"github.com/aretw0/librarian/pkg/logging"
)

var (
	verbose     bool
	testMode    bool
	rootDir     string
	configPath  string
	secretsPath string

	app       *librarian.App
	logCloser io.Closer
)

// errReported marks a failure whose explanation has already been printed.
var errReported = errors.New("command failed")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "librarian",
	Short: "Librarian - Meshtastic-focused digital librarian",
	Long: `Librarian answers questions and announces schedules over a Meshtastic mesh.
This tool manages the station's configuration and channel secrets.`,
	Example: `  librarian status                    # Show system status
  librarian config get ollama.model    # Read a configuration value
  librarian secrets set decomp25 <psk> # Store a channel PSK
  librarian broadcast "Hello world"    # Send urgent broadcast
  librarian corpus ingest              # Rebuild knowledge base
  librarian run-core                   # Start core services`,
	Version:           strings.TrimSpace(librarian.Version),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: openApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	closeApp()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&testMode, "test", "t", false, "Run in test mode (logs to test.log)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Project root (default: discovered from the working directory)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <root>/configs/config.toml)")
	rootCmd.PersistentFlags().StringVar(&secretsPath, "secrets", "", "Secrets file (default: <root>/configs/channels.secrets)")
}

// openApp loads both stores, then builds the process logger from the loaded config.
func openApp(cmd *cobra.Command, args []string) error {
	var opts []librarian.Option
	if rootDir != "" {
		opts = append(opts, librarian.WithRoot(rootDir))
	}
	if configPath != "" {
		opts = append(opts, librarian.WithConfigPath(configPath))
	}
	if secretsPath != "" {
		opts = append(opts, librarian.WithSecretsPath(secretsPath))
	}

	a, err := librarian.Open(opts...)
	if err != nil {
		return err
	}

	level, dir := "", logging.DefaultDir
	if settings, err := a.Config.Settings(); err == nil {
		if _, err := logging.ParseLevel(settings.Logging.Level); err == nil {
			level = settings.Logging.Level
		}
		if settings.Logging.Dir != "" {
			dir = settings.Logging.Dir
		}
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(a.Root, dir)
	}

	logger, closer, err := logging.Setup(logging.Options{
		Dir:      dir,
		Level:    level,
		Verbose:  verbose,
		TestMode: testMode,
		Console:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	a.SetLogger(logger)

	for _, w := range a.SecretsLoad.Warnings {
		logger.Warn(w.Message, "component", "secrets", "code", w.Code)
	}

	app = a
	logCloser = closer
	return nil
}

func closeApp() {
	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
	app = nil
}

// finish prints output for the user and records the command in the log.
func finish(cmd *cobra.Command, args []string, output string, code int) {
	fmt.Fprint(cmd.OutOrStdout(), output)
	if app != nil {
		logging.LogCommand(app.Logger, cmd.CommandPath(), args, strings.TrimRight(output, "\n"), code)
	}
}
