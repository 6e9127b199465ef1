package ui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	shortcuts "github.com/xipchat/cli/internal/shortcuts"
)

// editingKeys are keys the focused text input consumes for editing and
// cursor movement. Key presses in this set count as typing into an
// editable surface and are therefore exempt from shortcut dispatch.
var editingKeys = []string{
	"space", "tab", "enter", "alt+enter", "backspace", "delete",
	"up", "down", "left", "right", "home", "end",
	"ctrl+a", "ctrl+e", "ctrl+u", "ctrl+k", "ctrl+w",
}

// FromKeyMsg translates a terminal key press into a shortcut key event
// with the given origination target.
func FromKeyMsg(msg tea.KeyMsg, target shortcuts.Target) *shortcuts.KeyEvent {
	binding := shortcuts.ParseCombo(msg.String())

	return &shortcuts.KeyEvent{
		Key:    binding.Key,
		Ctrl:   binding.Ctrl,
		Alt:    binding.Alt || msg.Alt,
		Shift:  binding.Shift,
		Meta:   binding.Meta,
		Target: target,
	}
}

// isEditingKey reports whether a focused text input would consume the
// key press as typing.
func isEditingKey(msg tea.KeyMsg) bool {
	key := msg.String()

	if shortcuts.IsPrintableCharacter(key) {
		return true
	}

	return slices.Contains(editingKeys, key)
}
