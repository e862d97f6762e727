package secrets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aretw0/librarian/pkg/adapters/fs"
	"github.com/aretw0/librarian/pkg/core"
)

// DefaultPath is where the secrets file lives relative to the project root.
const DefaultPath = "configs/channels.secrets"

// Header is written at the top of every saved secrets file.
var Header = []string{
	"# Channel PSKs for Librarian",
	"# Format: channel_name:psk_value",
	"# This file should have permissions 0600 (readable only by owner)",
}

// ExampleHeader is written by CreateExample.
var ExampleHeader = append(append([]string{}, Header...),
	"# Replace EXAMPLE_PSK_VALUE with actual PSK values",
)

// ExampleEntries are the placeholder pairs written by CreateExample.
var ExampleEntries = []Entry{
	{Channel: "decomp25", Key: "EXAMPLE_PSK_VALUE_REPLACE_WITH_REAL_PSK"},
	{Channel: "test_channel", Key: "TEST_PSK_VALUE"},
}

// LoadResult carries the non-fatal outcome of Load.
type LoadResult struct {
	Permission core.PermissionStatus `json:"permission"`
	Warnings   []core.Warning        `json:"warnings,omitempty"`
	Loaded     int                   `json:"loaded"`
}

// Store holds channel keys in memory, in first-seen order, and mirrors every change to disk.
type Store struct {
	mu         sync.RWMutex
	path       string
	keys       map[string]string
	order      []string
	permission core.PermissionStatus
	loaded     bool
	lastLoad   time.Time
	logger     *slog.Logger
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
func WithLocking(enabled bool) StoreOption {
	return func(s *Store) {
		s.locking = enabled
	}
}

// WithLockTimeout bounds how long Set waits for another writer.
func WithLockTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		s.lock = fs.NewFileLock(s.path, d)
	}
}

// NewStore creates an empty store backed by path. Nothing is read until Load is called.
func NewStore(path string, opts ...StoreOption) *Store {
	s := &Store{
		path:       path,
		keys:       make(map[string]string),
		permission: core.PermissionMissing,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
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

// Load reads the secrets file, replacing everything held in memory.
//
// A missing file leaves the store empty and is reported as PermissionMissing
// with a WarnMissingFile warning. A file that is not owner-only is still read,
// with PermissionWrong and a WarnPermissions warning. Malformed lines become
// warnings. The only error is core.ErrSecretsIO, for a file that is present
// but cannot be read; the previous contents are kept in that case.
func (s *Store) Load() (LoadResult, error) {
	logger := s.log()

	status, mode, err := fs.CheckOwnerOnly(s.path)
	if err != nil {
		logger.Error("failed to load secrets", "path", s.path, "error", err)
		return LoadResult{Permission: status}, fmt.Errorf("%w: %w", core.ErrSecretsIO, err)
	}

	result := LoadResult{Permission: status}

	switch status {
	case core.PermissionMissing:
		msg := fmt.Sprintf("Secrets file %s does not exist", s.path)
		logger.Warn(msg)
		result.Warnings = append(result.Warnings, core.Warning{Code: core.WarnMissingFile, Message: msg})
		s.replace(nil, status)
		return result, nil

	case core.PermissionWrong:
		msg := fmt.Sprintf("Secrets file %s has incorrect permissions: %s", s.path, mode)
		logger.Warn(msg)
		logger.Warn("Expected: -rw------- (0600)")
		result.Warnings = append(result.Warnings, core.Warning{Code: core.WarnPermissions, Message: msg})
	}

	f, err := os.Open(s.path)
	if err != nil {
		logger.Error("failed to load secrets", "path", s.path, "error", err)
		return result, fmt.Errorf("%w: %s: %w", core.ErrSecretsIO, s.path, err)
	}
	defer f.Close()

	entries, warnings, err := Parse(f)
	if err != nil {
		logger.Error("failed to load secrets", "path", s.path, "error", err)
		return result, fmt.Errorf("%w: %s: %w", core.ErrSecretsIO, s.path, err)
	}
	for _, w := range warnings {
		logger.Warn(w.Message, "line", w.Line)
	}
	result.Warnings = append(result.Warnings, warnings...)

	result.Loaded = s.replace(entries, status)
	logger.Info(fmt.Sprintf("Loaded %d secrets from %s", result.Loaded, s.path))
	return result, nil
}

// Reload re-reads the file. Entries no longer on disk are dropped.
func (s *Store) Reload() (LoadResult, error) {
	return s.Load()
}

// replace swaps the in-memory table for entries and returns the number of distinct channels.
// A repeated channel keeps its first position and takes its last value.
func (s *Store) replace(entries []Entry, status core.PermissionStatus) int {
	keys := make(map[string]string, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, seen := keys[e.Channel]; !seen {
			order = append(order, e.Channel)
		}
		keys[e.Channel] = e.Key
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = keys
	s.order = order
	s.permission = status
	s.loaded = true
	s.lastLoad = time.Now()
	return len(order)
}

// Get returns the key for channel and whether it exists.
func (s *Store) Get(channel string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	key, ok := s.keys[channel]
	return key, ok
}

// Set stores key for channel and rewrites the whole file with owner-only permissions.
//
// A new channel is appended; an existing one keeps its position. A store that
// was never loaded reads the file first so existing entries are kept. If the
// write fails the in-memory table is left as it was and core.ErrSecretsIO is returned.
func (s *Store) Set(channel, key string) error {
	if err := checkEntry(channel, key); err != nil {
		return err
	}

	unlock, err := s.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	if !s.Loaded() {
		if _, err := s.Load(); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.keys[channel]
	s.keys[channel] = key
	if !existed {
		s.order = append(s.order, channel)
	}

	if err := s.writeLocked(Header, s.entriesLocked()); err != nil {
		if existed {
			s.keys[channel] = prev
		} else {
			delete(s.keys, channel)
			s.order = s.order[:len(s.order)-1]
		}
		s.logger.Error("failed to save secrets", "path", s.path, "error", err)
		return err
	}

	s.logger.Info(fmt.Sprintf("Saved %d secrets to %s", len(s.order), s.path))
	return nil
}

// CreateExample overwrites the file with the placeholder entries and makes
// them the in-memory table. Any existing content is lost.
func (s *Store) CreateExample() error {
	unlock, err := s.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeLocked(ExampleHeader, ExampleEntries); err != nil {
		s.logger.Error("failed to create example secrets", "path", s.path, "error", err)
		return err
	}

	s.keys = make(map[string]string, len(ExampleEntries))
	s.order = make([]string, 0, len(ExampleEntries))
	for _, e := range ExampleEntries {
		s.keys[e.Channel] = e.Key
		s.order = append(s.order, e.Channel)
	}
	s.loaded = true
	s.logger.Info(fmt.Sprintf("Created example secrets file at %s", s.path))
	return nil
}

// Channels returns channel names in the order they were first seen.
func (s *Store) Channels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Permission returns the permission status observed by the last Load or write.
func (s *Store) Permission() core.PermissionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.permission
}

func (s *Store) acquire() (func(), error) {
	if err := fs.EnsureDir(s.path); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrSecretsIO, err)
	}
	if !s.locking {
		return func() {}, nil
	}
	unlock, err := s.lock.Lock(context.Background())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrSecretsIO, err)
	}
	return unlock, nil
}

func (s *Store) entriesLocked() []Entry {
	entries := make([]Entry, len(s.order))
	for i, channel := range s.order {
		entries[i] = Entry{Channel: channel, Key: s.keys[channel]}
	}
	return entries
}

// writeLocked persists entries; s.mu must be held.
func (s *Store) writeLocked(header []string, entries []Entry) error {
	if err := fs.WriteFileAtomic(s.path, Render(header, entries), fs.OwnerOnly); err != nil {
		return fmt.Errorf("%w: %w", core.ErrSecretsIO, err)
	}
	// Re-apply in case the rename landed on a filesystem that ignores the temp file mode.
	if err := os.Chmod(s.path, fs.OwnerOnly); err != nil {
		return fmt.Errorf("%w: %w", core.ErrSecretsIO, err)
	}
	s.permission = core.PermissionOK
	return nil
}
