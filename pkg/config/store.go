package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/librarian/pkg/adapters/fs"
	"github.com/aretw0/librarian/pkg/core"
)

// Store holds the configuration document in memory and mirrors it to a TOML file.
type Store struct {
	mu         sync.RWMutex
	path       string
	doc        map[string]any
	loaded     bool
	lastLoad   time.Time
	logger     *slog.Logger
	serializer fs.Serializer
	locking    bool
	lock       *fs.FileLock
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLocking enables or disables the advisory lock taken around writes.
// Locking is enabled by default.
func WithLocking(enabled bool) StoreOption {
	return func(s *Store) {
		s.locking = enabled
	}
}

// WithLockTimeout bounds how long Save waits for another writer.
func WithLockTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		s.lock = fs.NewFileLock(s.path, d)
	}
}

// NewStore creates a store backed by path. Nothing is read until Load is called.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:       path,
		doc:        make(map[string]any),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		serializer: fs.NewTOMLSerializer(),
		locking:    true,
		lock:       fs.NewFileLock(path, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Loaded reports whether Load has succeeded at least once.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// SetLogger swaps the logger used for diagnostic events.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger = logger
}

func (s *Store) log() *slog.Logger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logger
}

// Load reads the config file, replacing the in-memory document.
//
// If the file does not exist, the default document is written first
// (creating parent directories) and then read back.
// Returns an error wrapping core.ErrConfigSyntax when the file is not valid TOML,
// or core.ErrConfigIO for any other failure.
func (s *Store) Load() error {
	logger := s.log()

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		logger.Info("config file not found, creating default", "path", s.path)
		if err := s.write(DefaultDocument); err != nil {
			return err
		}
	} else if err != nil {
		logger.Error("failed to stat config", "path", s.path, "error", err)
		return fmt.Errorf("%w: %s: %w", core.ErrConfigIO, s.path, err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		logger.Error("failed to read config", "path", s.path, "error", err)
		return fmt.Errorf("%w: %s: %w", core.ErrConfigIO, s.path, err)
	}

	doc, err := s.serializer.Parse(bytes.NewReader(data))
	if err != nil {
		logger.Error("invalid TOML syntax", "path", s.path, "error", err)
		return fmt.Errorf("%w: %s: %w", core.ErrConfigSyntax, s.path, err)
	}

	s.mu.Lock()
	s.doc = doc
	s.loaded = true
	s.lastLoad = time.Now()
	s.mu.Unlock()

	logger.Info("loaded configuration", "path", s.path, "sections", len(doc))
	return nil
}

// Reload re-reads the file, discarding uncommitted in-memory edits.
func (s *Store) Reload() error {
	return s.Load()
}

// Save serializes the in-memory document over the backing file.
// It returns core.ErrNotLoaded until Load has succeeded, so a store that never
// read the file cannot replace it with a partial document.
func (s *Store) Save() error {
	s.mu.RLock()
	if !s.loaded {
		s.mu.RUnlock()
		s.log().Error("refusing to save unloaded config", "path", s.path)
		return fmt.Errorf("%w: %s", core.ErrNotLoaded, s.path)
	}
	data, err := s.serializer.Serialize(s.doc)
	s.mu.RUnlock()
	if err != nil {
		s.log().Error("failed to encode config", "path", s.path, "error", err)
		return fmt.Errorf("%w: %s: %w", core.ErrConfigIO, s.path, err)
	}

	if err := s.write(data); err != nil {
		return err
	}
	s.log().Info("saved configuration", "path", s.path)
	return nil
}

// write persists data atomically under the advisory lock.
func (s *Store) write(data []byte) error {
	if err := fs.EnsureDir(s.path); err != nil {
		s.log().Error("failed to create config directory", "path", s.path, "error", err)
		return fmt.Errorf("%w: %w", core.ErrConfigIO, err)
	}

	if s.locking {
		unlock, err := s.lock.Lock(context.Background())
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrConfigIO, err)
		}
		defer unlock()
	}

	if err := fs.WriteFileAtomic(s.path, data, 0644); err != nil {
		s.log().Error("failed to write config", "path", s.path, "error", err)
		return fmt.Errorf("%w: %w", core.ErrConfigIO, err)
	}
	return nil
}

// Get returns the value at a dotted path, or def when the path cannot be resolved.
// Tables are returned as copies.
func (s *Store) Get(path string, def any) any {
	v, status := s.Lookup(path)
	if status != core.LookupFound {
		return def
	}
	return v
}

// Lookup resolves a dotted path and reports why it failed, if it did.
func (s *Store) Lookup(path string) (any, core.LookupStatus) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, status := lookup(s.doc, path)
	if status != core.LookupFound {
		return nil, status
	}
	return cloneValue(v), core.LookupFound
}

// Set assigns value at a dotted path, creating intermediate tables as needed.
// The change is not persisted until Save.
func (s *Store) Set(path string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		s.doc = make(map[string]any)
	}
	if !assign(s.doc, path, cloneValue(value)) {
		s.logger.Debug("ignoring set on empty path")
		return
	}
	s.logger.Debug("config value set", "path", path)
}

// Document returns a deep copy of the whole document.
func (s *Store) Document() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneValue(s.doc).(map[string]any)
}

// Sections returns the top-level section names in sorted order.
func (s *Store) Sections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.doc))
	for name := range s.doc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Settings decodes the current document into the typed view.
func (s *Store) Settings() (Settings, error) {
	return DecodeSettings(s.Document())
}
