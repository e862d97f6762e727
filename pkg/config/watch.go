package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/librarian/pkg/core"
)

// DefaultDebounce collapses the burst of events an editor or atomic rename produces.
const DefaultDebounce = 300 * time.Millisecond

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// Pattern is a doublestar glob matched against the base name of changed files.
	// Defaults to the config file's own base name.
	Pattern string
	// Debounce is the quiet period before a reload. Defaults to DefaultDebounce.
	Debounce time.Duration
	Logger   *slog.Logger
	// OnError receives watcher failures that do not stop the loop.
	OnError func(error)
}

// Watcher reloads a Store whenever its file changes on disk.
type Watcher struct {
	store *Store
	opts  WatchOptions
}

// NewWatcher creates a watcher for store. Call Start to begin watching.
func NewWatcher(store *Store, opts WatchOptions) *Watcher {
	if opts.Pattern == "" {
		opts.Pattern = filepath.Base(store.Path())
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{store: store, opts: opts}
}

// Start watches the directory holding the config file until ctx is done.
// Each debounced burst of matching changes triggers one Reload and one Event.
// The returned channel is closed when watching stops.
func (w *Watcher) Start(ctx context.Context) (<-chan core.Event, error) {
	if !doublestar.ValidatePattern(w.opts.Pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", w.opts.Pattern)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory, not the file: atomic saves replace the inode.
	dir := filepath.Dir(w.store.Path())
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	events := make(chan core.Event, 8)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		return w.run(ctx, fsw, events)
	}, lifecycle.WithErrorHandler(func(err error) {
		w.opts.Logger.Error("config watcher stopped", "error", err)
		w.reportError(err)
	}))

	w.opts.Logger.Info("config watcher started", "path", w.store.Path(), "pattern", w.opts.Pattern)
	return events, nil
}

func (w *Watcher) run(ctx context.Context, fsw *fsnotify.Watcher, events chan<- core.Event) error {
	defer close(events)
	defer fsw.Close()

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.opts.Logger.Info("config watcher stopped", "path", w.store.Path())
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			if !w.matches(event) {
				continue
			}
			w.opts.Logger.Debug("config change detected", "name", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			pending = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				continue
			}
			w.opts.Logger.Error("fsnotify error", "error", err)
			w.reportError(err)

		case <-pending:
			pending = nil
			if !w.emit(ctx, events, w.reload()) {
				return nil
			}
		}
	}
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	ok, err := doublestar.Match(w.opts.Pattern, filepath.Base(event.Name))
	return err == nil && ok
}

func (w *Watcher) reload() core.Event {
	e := core.Event{
		Type:      core.EventReload,
		Path:      w.store.Path(),
		Timestamp: time.Now().Unix(),
	}
	if err := w.store.Reload(); err != nil {
		e.Type = core.EventReloadFailed
		e.Err = err
		w.opts.Logger.Error("config reload failed", "path", e.Path, "error", err)
		return e
	}
	w.opts.Logger.Info("config reloaded", "path", e.Path)
	return e
}

func (w *Watcher) emit(ctx context.Context, events chan<- core.Event, e core.Event) bool {
	select {
	case events <- e:
		return true
	case <-ctx.Done():
		return false
	}
}

func (w *Watcher) reportError(err error) {
	if w.opts.OnError != nil {
		w.opts.OnError(err)
	}
}
