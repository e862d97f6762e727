package librarian

import (
	"log/slog"
	"time"

	"github.com/aretw0/librarian/internal/platform"
)

// --- Types ---

// App is the composition root holding the config and secrets stores.
type App = platform.App

// AppState is the aggregated introspection state returned by App.State.
type AppState = platform.AppState

// --- Configuration ---

// Option defines a functional option for configuring Librarian.
type Option = platform.Option

// WithRoot sets the project root that relative store paths resolve against.
func WithRoot(dir string) Option {
	return platform.WithRoot(dir)
}

// WithConfigPath overrides the config file location.
func WithConfigPath(path string) Option {
	return platform.WithConfigPath(path)
}

// WithSecretsPath overrides the secrets file location.
func WithSecretsPath(path string) Option {
	return platform.WithSecretsPath(path)
}

// WithLogger sets the logger for both stores.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithLocking enables or disables advisory lock files around writes.
func WithLocking(enabled bool) Option {
	return platform.WithLocking(enabled)
}

// WithLockTimeout bounds how long a write waits for the advisory lock.
func WithLockTimeout(d time.Duration) Option {
	return platform.WithLockTimeout(d)
}

// --- Factory ---

// Open builds and loads both stores.
func Open(opts ...Option) (*App, error) {
	return platform.New(opts...)
}

// --- Utils ---

// FindRoot recursively looks upwards for a project root indicator.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
