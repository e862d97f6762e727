package platform

import (
	"log/slog"
	"time"
)

// options holds the internal configuration for a Librarian app.
type options struct {
	root        string
	configPath  string
	secretsPath string
	logger      *slog.Logger
	locking     bool
	lockTimeout time.Duration
}

// Option defines a functional option for configuring Librarian.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		locking: true,
	}
}

// WithRoot sets the project root that relative store paths resolve against.
// When unset, the root is discovered from the working directory with FindRoot.
func WithRoot(dir string) Option {
	return func(o *options) {
		o.root = dir
	}
}

// WithConfigPath overrides the config file location (default configs/config.toml).
// Relative paths are resolved against the root.
func WithConfigPath(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// WithSecretsPath overrides the secrets file location (default configs/channels.secrets).
// Relative paths are resolved against the root.
func WithSecretsPath(path string) Option {
	return func(o *options) {
		o.secretsPath = path
	}
}

// WithLogger sets the logger for both stores.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLocking enables or disables the advisory lock files taken around writes.
// By default, locking is enabled.
func WithLocking(enabled bool) Option {
	return func(o *options) {
		o.locking = enabled
	}
}

// WithLockTimeout bounds how long a write waits for the advisory lock.
// Zero means default (5s).
func WithLockTimeout(d time.Duration) Option {
	return func(o *options) {
		o.lockTimeout = d
	}
}
