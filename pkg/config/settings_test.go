package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/librarian/pkg/config"
)

func TestSettings_Default(t *testing.T) {
	store, _ := setupStore(t)

	settings, err := store.Settings()
	require.NoError(t, err)

	assert.Equal(t, "hdl-librarian-01", settings.Node.Name)
	assert.Equal(t, "/dev/ttyACM0", settings.Node.SerialDevice)
	assert.Equal(t, "decomp25", settings.Meshtastic.GroupChannel)
	assert.True(t, settings.Meshtastic.DMAckEnabled)
	assert.Equal(t, 8, settings.Meshtastic.BacklogNoticeThreshold)
	assert.Equal(t, 11434, settings.Ollama.Port)
	assert.Equal(t, 256, settings.Ollama.MaxTokens)
	assert.InDelta(t, 0.3, settings.Ollama.Temperature, 1e-9)
	assert.Equal(t, "http://127.0.0.1:11434", settings.Ollama.BaseURL())
	assert.Equal(t, 6, settings.RAG.TopK)
	assert.True(t, settings.RAG.FallbackLexical)
	assert.Equal(t, []int{30, 10}, settings.Announce.PreStartOffsets)
	assert.Equal(t, []time.Duration{30 * time.Minute, 10 * time.Minute}, settings.Announce.PreStartDurations())
	assert.Equal(t, "INFO", settings.Logging.Level)
	assert.Equal(t, "./logs", settings.Logging.Dir)
}

func TestSettings_FollowsSet(t *testing.T) {
	store, _ := setupStore(t)
	store.Set("ollama.max_tokens", int64(512))
	store.Set("logging.level", "DEBUG")

	settings, err := store.Settings()
	require.NoError(t, err)
	assert.Equal(t, 512, settings.Ollama.MaxTokens)
	assert.Equal(t, "DEBUG", settings.Logging.Level)
}

func TestDecodeSettings_WrongType(t *testing.T) {
	_, err := config.DecodeSettings(map[string]any{
		"ollama": map[string]any{"port": "not-a-number"},
	})
	assert.Error(t, err)
}

func TestDecodeSettings_IgnoresUnknown(t *testing.T) {
	settings, err := config.DecodeSettings(map[string]any{
		"node":    map[string]any{"name": "n1", "extra": true},
		"plugins": map[string]any{"enabled": true},
	})
	require.NoError(t, err)
	assert.Equal(t, "n1", settings.Node.Name)
}
