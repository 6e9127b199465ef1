package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xipchat/cli/config"
)

func setTestConfig(t *testing.T, bindings map[string]config.KeyBindingEntry) {
	t.Helper()

	previous := cfg
	t.Cleanup(func() { cfg = previous })

	cfg = config.DefaultConfig()
	cfg.Chat.Keybindings.Bindings = bindings
}

func TestValidateKeybindingsAcceptsDefaults(t *testing.T) {
	setTestConfig(t, config.GetDefaultKeybindings())

	assert.NoError(t, validateKeybindings(keybindingsValidateCmd, nil))
}

func TestValidateKeybindingsRejectsUnknownKey(t *testing.T) {
	setTestConfig(t, map[string]config.KeyBindingEntry{
		"chat.new_conversation": {Keys: []string{"ctrl+nosuchkey"}},
	})

	err := validateKeybindings(keybindingsValidateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 problem")
}

func TestValidateKeybindingsRejectsConflicts(t *testing.T) {
	setTestConfig(t, map[string]config.KeyBindingEntry{
		"chat.new_conversation": {Keys: []string{"ctrl+n"}},
		"help.toggle":           {Keys: []string{"ctrl+n"}},
	})

	err := validateKeybindings(keybindingsValidateCmd, nil)
	require.Error(t, err)
}

func TestFormatComboForPlatform(t *testing.T) {
	assert.Equal(t, "⌘N", formatCombo("ctrl+n", "darwin"))
	assert.Equal(t, "Ctrl+N", formatCombo("ctrl+n", "linux"))
	assert.Equal(t, "Meta+N", formatCombo("meta+n", "linux"))
	assert.NotEmpty(t, formatCombo("ctrl+n", ""))
}
