package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/librarian/pkg/config"
	"github.com/aretw0/librarian/pkg/core"
)

type fixedValidator struct {
	report config.Report
	calls  int
}

func (v *fixedValidator) Validate() config.Report {
	v.calls++
	return v.report
}

func TestSource_TranslatesEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	boom := errors.New("boom")
	v := &fixedValidator{report: config.Report{Valid: false, Errors: []string{"Missing required section: rag"}}}

	in := make(chan core.Event, 3)
	src := NewSource(in, v)
	require.NoError(t, src.Start(ctx))

	in <- core.Event{Type: core.EventReload, Path: "configs/config.toml"}
	in <- core.Event{Type: core.EventReloadFailed, Path: "configs/config.toml", Err: boom}
	close(in)

	var got []string
	var failed FailedEvent
	for e := range src.Events() {
		got = append(got, e.String())
		if f, ok := e.(FailedEvent); ok {
			failed = f
		}
	}

	assert.Equal(t, []string{
		"RELOAD configs/config.toml (valid: false, 1 errors, 0 warnings)",
		"RELOAD_FAILED configs/config.toml: boom (keeping previous configuration)",
	}, got)
	assert.Equal(t, 1, v.calls, "only successful reloads are validated")
	assert.ErrorIs(t, failed.Err, boom)
}

func TestSource_ReloadCarriesReport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	in := make(chan core.Event, 1)
	src := NewSource(in, &fixedValidator{report: config.Report{Valid: true}})
	require.NoError(t, src.Start(ctx))

	in <- core.Event{Type: core.EventReload, Path: "c.toml", Timestamp: 42}

	e := <-src.Events()
	reload, ok := e.(ReloadEvent)
	require.True(t, ok, "expected ReloadEvent, got %T", e)
	assert.True(t, reload.Report.Valid)
	assert.Equal(t, int64(42), reload.Timestamp)
}

func TestSource_RequiresValidator(t *testing.T) {
	assert.Error(t, NewSource(make(chan core.Event), nil).Start(context.Background()))
}

func TestSource_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	src := NewSource(make(chan core.Event), &fixedValidator{})
	require.NoError(t, src.Start(ctx))
	cancel()

	select {
	case _, ok := <-src.Events():
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("source did not close")
	}
}
