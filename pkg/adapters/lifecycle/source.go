// Package lifecycle turns config watcher events into lifecycle events.
//
// Every successful reload is validated before it is published, so consumers
// see the reload and the health of the new document as one event.
package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/librarian/pkg/config"
	"github.com/aretw0/librarian/pkg/core"
)

// Validator checks the document a reload produced. *config.Store implements it.
type Validator interface {
	Validate() config.Report
}

// ReloadEvent is a reload that succeeded, with the report for the new document.
type ReloadEvent struct {
	core.Event
	Report config.Report
}

func (e ReloadEvent) String() string {
	return fmt.Sprintf("%s (valid: %t, %d errors, %d warnings)",
		e.Event, e.Report.Valid, len(e.Report.Errors), len(e.Report.Warnings))
}

// FailedEvent is a reload the store rejected. The previous document stays in effect.
type FailedEvent struct {
	core.Event
}

func (e FailedEvent) String() string {
	return fmt.Sprintf("%s (keeping previous configuration)", e.Event)
}

type reloadSource struct {
	events    <-chan core.Event
	validator Validator
	out       chan lifecycle.Event
}

// NewSource creates a lifecycle.Source fed by a config watcher.
// RELOAD events are validated with v and published as ReloadEvent;
// RELOAD_FAILED events are published as FailedEvent. Other events pass through.
// The output closes when events is closed or the context given to Start is done.
func NewSource(events <-chan core.Event, v Validator) lifecycle.Source {
	return &reloadSource{
		events:    events,
		validator: v,
		out:       make(chan lifecycle.Event),
	}
}

func (s *reloadSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *reloadSource) Start(ctx context.Context) error {
	if s.validator == nil {
		return errors.New("reload source needs a validator")
	}
	lifecycle.Go(ctx, s.run)
	return nil
}

func (s *reloadSource) run(ctx context.Context) error {
	defer close(s.out)
	for {
		var (
			e  core.Event
			ok bool
		)
		select {
		case <-ctx.Done():
			return nil
		case e, ok = <-s.events:
			if !ok {
				return nil
			}
		}

		select {
		case s.out <- s.translate(e):
		case <-ctx.Done():
			return nil
		}
	}
}

func (s *reloadSource) translate(e core.Event) lifecycle.Event {
	switch e.Type {
	case core.EventReload:
		return ReloadEvent{Event: e, Report: s.validator.Validate()}
	case core.EventReloadFailed:
		return FailedEvent{Event: e}
	default:
		return e
	}
}
