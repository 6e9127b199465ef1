package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Gateway.URL)
	assert.Equal(t, "memory", cfg.Storage.Type)
	assert.True(t, cfg.Chat.Keybindings.Enabled)
	assert.NotEmpty(t, cfg.Chat.Keybindings.Bindings)
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
gateway:
  url: https://gateway.example.com
  timeout: 30
chat:
  default_model: openai/gpt-4o
  keybindings:
    bindings:
      capture.screen:
        keys: ["ctrl+shift+p"]
storage:
  type: sqlite
  sqlite:
    path: /tmp/conv.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://gateway.example.com", cfg.Gateway.URL)
	assert.Equal(t, 30, cfg.Gateway.Timeout)
	assert.Equal(t, "openai/gpt-4o", cfg.Chat.DefaultModel)
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "/tmp/conv.db", cfg.Storage.SQLite.Path)

	capture := cfg.Chat.Keybindings.Bindings[ActionID(NamespaceCapture, "screen")]
	assert.Equal(t, []string{"ctrl+shift+p"}, capture.Keys)

	// Untouched defaults stay merged in.
	quit := cfg.Chat.Keybindings.Bindings[ActionID(NamespaceGlobal, "quit")]
	assert.Equal(t, []string{"ctrl+c"}, quit.Keys)
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("XIPCHAT_GATEWAY_URL", "https://env.example.com")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.Gateway.URL)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gateway: [broken"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWriteToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Gateway.URL = "https://gateway.example.com"
	require.NoError(t, cfg.WriteTo(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.example.com", loaded.Gateway.URL)
}

func TestDefaultKeybindingsAreNamespaced(t *testing.T) {
	bindings := GetDefaultKeybindings()
	require.NotEmpty(t, bindings)

	for id, entry := range bindings {
		assert.Contains(t, id, ".", "action id %q must be namespaced", id)
		assert.NotEmpty(t, entry.Keys, "action %q needs at least one key", id)
		assert.NotEmpty(t, entry.Description, "action %q needs a description", id)
	}

	assert.Contains(t, bindings, "global.quit")
	assert.Contains(t, bindings, "capture.screen")
}
