package secrets

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability. Key material is never included.
type StoreState struct {
	Path       string     `json:"path"`
	Loaded     bool       `json:"loaded"`
	LastLoad   *time.Time `json:"last_load,omitempty"`
	Permission string     `json:"permission"`
	Channels   []string   `json:"channels"`
	Locking    bool       `json:"locking"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := StoreState{
		Path:       s.path,
		Loaded:     s.loaded,
		Permission: s.permission.String(),
		Channels:   append([]string{}, s.order...),
		Locking:    s.locking,
	}
	if !s.lastLoad.IsZero() {
		t := s.lastLoad
		state.LastLoad = &t
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "secrets-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
