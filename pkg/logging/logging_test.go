package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{" debug ", slog.LevelDebug, false},
		{"trace", LevelTrace, false},
		{"warn", slog.LevelWarn, false},
		{"Warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReplaceLevelNames(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level:       LevelTrace,
		ReplaceAttr: ReplaceLevelNames,
	}))

	logger.Log(t.Context(), LevelTrace, "wire dump")
	assert.Contains(t, buf.String(), "level=TRACE")
}

// readJSONLines decodes every line of a JSON log file.
func readJSONLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var records []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}

func TestSetup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	logger, closer, err := Setup(Options{Dir: dir, Console: &console})
	require.NoError(t, err)

	logger.Debug("hidden from console")
	logger.Info("hello", "channel", "decomp25")
	require.NoError(t, closer.Close())

	out := console.String()
	assert.Contains(t, out, "msg=hello")
	assert.Contains(t, out, "channel=decomp25")
	assert.NotContains(t, out, "hidden from console")

	records := readJSONLines(t, filepath.Join(dir, "librarian.log"))
	var msgs []string
	for _, rec := range records {
		msgs = append(msgs, rec["msg"].(string))
	}
	assert.Contains(t, msgs, "Operation: logging_initialized")
	assert.Contains(t, msgs, "hidden from console", "file sink records debug")
	assert.Contains(t, msgs, "hello")
}

func TestSetup_VerboseAndTestMode(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, closer, err := Setup(Options{Dir: dir, Console: &console, Verbose: true, TestMode: true})
	require.NoError(t, err)
	logger.Debug("details")
	require.NoError(t, closer.Close())

	assert.Contains(t, console.String(), "details")
	_, err = os.Stat(filepath.Join(dir, "test.log"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "librarian.log"))
	assert.True(t, os.IsNotExist(err))
}

func TestSetup_ConsoleLevel(t *testing.T) {
	var console bytes.Buffer

	logger, closer, err := Setup(Options{Dir: t.TempDir(), Console: &console, Level: "ERROR"})
	require.NoError(t, err)
	defer closer.Close()

	logger.Warn("quiet")
	logger.Error("loud")
	assert.NotContains(t, console.String(), "quiet")
	assert.Contains(t, console.String(), "loud")
}

func TestSetup_BadLevel(t *testing.T) {
	_, _, err := Setup(Options{Dir: t.TempDir(), Level: "chatty"})
	assert.Error(t, err)
}

func TestSetup_DirIsFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))

	_, _, err := Setup(Options{Dir: blocker, Console: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestSetup_SplitsByLevel(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, closer, err := Setup(Options{Dir: dir, Console: &console, Level: "WARNING"})
	require.NoError(t, err)
	logger = logger.With("component", "config").WithGroup("g")

	logger.Debug("one", "k", "v")
	logger.Warn("two")
	require.NoError(t, closer.Close())

	assert.NotContains(t, console.String(), "msg=one")
	assert.Contains(t, console.String(), "msg=two")
	assert.Contains(t, console.String(), "component=config")

	data, err := os.ReadFile(filepath.Join(dir, "librarian.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"one"`)
	assert.Contains(t, string(data), `"component":"config"`)
	assert.Contains(t, string(data), `"g":{"k":"v"}`)
	assert.Contains(t, string(data), `"msg":"two"`)
}

func captureJSON(t *testing.T, fn func(*slog.Logger)) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	fn(slog.New(slog.NewJSONHandler(&buf, nil)))

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec))
	return rec
}

func TestLogOperation(t *testing.T) {
	rec := captureJSON(t, func(l *slog.Logger) {
		LogOperation(l, "reload", "config", "watch", "path", "configs/config.toml")
	})

	assert.Equal(t, "Operation: reload", rec["msg"])
	assert.Equal(t, "reload", rec["operation"])
	assert.Equal(t, "config", rec["component"])
	assert.Equal(t, "watch", rec["phase"])
	assert.Equal(t, "configs/config.toml", rec["path"])
}

func TestLogCommand(t *testing.T) {
	rec := captureJSON(t, func(l *slog.Logger) {
		LogCommand(l, "secrets list", []string{"--verbose"}, "No channels configured", 0)
	})

	assert.Equal(t, "command_execution", rec["operation"])
	assert.Equal(t, "cli", rec["component"])
	assert.Equal(t, "execution", rec["phase"])
	assert.Equal(t, "secrets list", rec["command"])
	assert.Equal(t, []any{"--verbose"}, rec["args"])
	assert.Equal(t, float64(0), rec["return_code"])
}

func TestLogUserInputAndOutput(t *testing.T) {
	in := captureJSON(t, func(l *slog.Logger) { LogUserInput(l, "what is on today?") })
	assert.Equal(t, "what is on today?", in["user_input"])
	assert.Equal(t, "input", in["phase"])

	out := captureJSON(t, func(l *slog.Logger) { LogOutput(l, "Keynote at 10") })
	assert.Equal(t, "Keynote at 10", out["output"])
	assert.Equal(t, "output", out["phase"])
}
