package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/xipchat/cli/internal/shortcuts"
)

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+n":
		return tea.KeyMsg{Type: tea.KeyCtrlN}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFromKeyMsgCanonical(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected string
	}{
		{"plain rune", keyMsg("a"), "a"},
		{"ctrl combo", keyMsg("ctrl+n"), "ctrl+n"},
		{"enter", keyMsg("enter"), "enter"},
		{"alt flagged rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, "alt+x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := FromKeyMsg(tt.msg, shortcuts.StaticTarget(false))
			assert.Equal(t, tt.expected, event.Canonical())
		})
	}
}

func TestFromKeyMsgCarriesTarget(t *testing.T) {
	event := FromKeyMsg(keyMsg("a"), shortcuts.StaticTarget(true))
	assert.True(t, event.Target.Editable())

	event = FromKeyMsg(keyMsg("a"), nil)
	assert.Nil(t, event.Target)
}

func TestIsEditingKey(t *testing.T) {
	assert.True(t, isEditingKey(keyMsg("a")))
	assert.True(t, isEditingKey(keyMsg("enter")))
	assert.True(t, isEditingKey(keyMsg("backspace")))
	assert.True(t, isEditingKey(keyMsg("up")))
	assert.True(t, isEditingKey(keyMsg("ctrl+a")))

	assert.False(t, isEditingKey(keyMsg("ctrl+n")))
	assert.False(t, isEditingKey(keyMsg("ctrl+c")))
	assert.False(t, isEditingKey(keyMsg("esc")))
}
