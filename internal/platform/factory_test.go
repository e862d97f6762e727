package platform

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/librarian/pkg/core"
)

func TestNew_FreshRoot(t *testing.T) {
	root := t.TempDir()

	app, err := New(WithRoot(root))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "configs", "config.toml"), app.Config.Path())
	assert.Equal(t, filepath.Join(root, "configs", "channels.secrets"), app.Secrets.Path())
	assert.True(t, app.Config.Loaded())
	assert.Equal(t, "hdl-librarian-01", app.Config.Get("node.name", nil))

	assert.Equal(t, core.PermissionMissing, app.SecretsLoad.Permission)
	require.Len(t, app.SecretsLoad.Warnings, 1)
	assert.Equal(t, core.WarnMissingFile, app.SecretsLoad.Warnings[0].Code)
}

func TestNew_PathOverrides(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere.secrets")

	app, err := New(
		WithRoot(root),
		WithConfigPath("station.toml"),
		WithSecretsPath(abs),
		WithLocking(false),
	)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "station.toml"), app.Config.Path())
	assert.Equal(t, abs, app.Secrets.Path())

	state := app.State().(AppState)
	assert.False(t, state.Config.Locking)
	assert.False(t, state.Secrets.Locking)
}

func TestNew_ConfigSyntaxError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "configs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "configs", "config.toml"), []byte("[node"), 0644))

	_, err := New(WithRoot(root))
	assert.ErrorIs(t, err, core.ErrConfigSyntax)
}

func TestNew_SecretsIOError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "configs", "channels.secrets"), 0755))

	_, err := New(WithRoot(root))
	assert.ErrorIs(t, err, core.ErrSecretsIO)
}

func TestApp_SetLogger(t *testing.T) {
	app, err := New(WithRoot(t.TempDir()))
	require.NoError(t, err)

	var buf bytes.Buffer
	app.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	require.NoError(t, app.Secrets.Set("decomp25", "abc"))
	app.Config.Validate()

	out := buf.String()
	assert.Contains(t, out, "component=secrets")
	assert.Contains(t, out, "component=config")
}

func TestApp_State(t *testing.T) {
	root := t.TempDir()
	app, err := New(WithRoot(root))
	require.NoError(t, err)

	state, ok := app.State().(AppState)
	require.True(t, ok)
	assert.Equal(t, root, state.Root)
	assert.True(t, state.Config.Loaded)
	assert.Len(t, state.Config.Sections, 6)
	assert.Equal(t, "missing", state.Secrets.Permission)
	assert.Equal(t, core.PermissionMissing, state.Load.Permission)
	assert.Equal(t, "librarian", app.ComponentType())
}

func TestBuildTree(t *testing.T) {
	app, err := New(WithRoot(t.TempDir()))
	require.NoError(t, err)

	tree := buildTree(app.State().(AppState))
	assert.Equal(t, "Librarian", tree.Name)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "running", tree.Children[0].Status)
	assert.Equal(t, "suspended", tree.Children[1].Status, "missing secrets file")

	require.NoError(t, app.Secrets.Set("decomp25", "abc"))
	tree = buildTree(app.State().(AppState))
	assert.Equal(t, "running", tree.Children[1].Status)
	assert.Equal(t, "1", tree.Children[1].Metadata["channels"])

	assert.NotEmpty(t, app.Diagram())
}
