package platform

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/introspection"

	"github.com/aretw0/librarian/pkg/config"
	"github.com/aretw0/librarian/pkg/logging"
	"github.com/aretw0/librarian/pkg/secrets"
)

// App is the composition root: one config store and one secrets store,
// constructed once and passed to whatever needs them.
type App struct {
	Root    string
	Config  *config.Store
	Secrets *secrets.Store
	// SecretsLoad is the outcome of the initial secrets load.
	SecretsLoad secrets.LoadResult
	Logger      *slog.Logger
}

// AppState aggregates the introspection state of both stores.
type AppState struct {
	Root    string             `json:"root"`
	Config  config.StoreState  `json:"config"`
	Secrets secrets.StoreState `json:"secrets"`
	Load    secrets.LoadResult `json:"secrets_load"`
}

// New resolves paths, builds both stores and loads them.
//
//	app, err := platform.New(platform.WithRoot("/srv/librarian"))
//
// A config load failure is returned as is. A missing or loosely permissioned
// secrets file is not an error; it is reported in App.SecretsLoad.
func New(opts ...Option) (*App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.Discard()
	}

	root, err := resolveRootOption(o.root)
	if err != nil {
		return nil, err
	}

	configPath := resolvePath(root, o.configPath, config.DefaultPath)
	secretsPath := resolvePath(root, o.secretsPath, secrets.DefaultPath)

	app := &App{
		Root:   root,
		Logger: logger,
		Config: config.NewStore(configPath,
			config.WithLogger(logger.With("component", "config")),
			config.WithLocking(o.locking),
			config.WithLockTimeout(o.lockTimeout),
		),
		Secrets: secrets.NewStore(secretsPath,
			secrets.WithLogger(logger.With("component", "secrets")),
			secrets.WithLocking(o.locking),
			secrets.WithLockTimeout(o.lockTimeout),
		),
	}

	if err := app.Config.Load(); err != nil {
		return nil, err
	}

	app.SecretsLoad, err = app.Secrets.Load()
	if err != nil {
		return nil, err
	}

	logger.Debug("librarian initialized", "root", root, "config", configPath, "secrets", secretsPath)
	return app, nil
}

// SetLogger rewires the app and both stores to logger.
func (a *App) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	a.Logger = logger
	a.Config.SetLogger(logger.With("component", "config"))
	a.Secrets.SetLogger(logger.With("component", "secrets"))
}

// State implements introspection.Introspectable.
func (a *App) State() any {
	state := AppState{Root: a.Root, Load: a.SecretsLoad}
	if s, ok := a.Config.State().(config.StoreState); ok {
		state.Config = s
	}
	if s, ok := a.Secrets.State().(secrets.StoreState); ok {
		state.Secrets = s
	}
	return state
}

// ComponentType implements introspection.Component.
func (a *App) ComponentType() string {
	return "librarian"
}

var _ introspection.Introspectable = (*App)(nil)
var _ introspection.Component = (*App)(nil)

func resolveRootOption(root string) (string, error) {
	if root != "" {
		return filepath.Abs(root)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return ResolveRoot(wd)
}

func resolvePath(root, path, def string) string {
	if path == "" {
		path = filepath.FromSlash(def)
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
