package config

import (
	"time"

	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Path     string     `json:"path"`
	Loaded   bool       `json:"loaded"`
	LastLoad *time.Time `json:"last_load,omitempty"`
	Sections []string   `json:"sections"`
	Locking  bool       `json:"locking"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	sections := s.Sections()

	s.mu.RLock()
	defer s.mu.RUnlock()

	state := StoreState{
		Path:     s.path,
		Loaded:   s.loaded,
		Sections: sections,
		Locking:  s.locking,
	}
	if !s.lastLoad.IsZero() {
		t := s.lastLoad
		state.LastLoad = &t
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "config-store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
