package shortcuts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMacLike(t *testing.T) {
	assert.True(t, IsMacLike("darwin"))
	assert.True(t, IsMacLike("MacIntel"))
	assert.True(t, IsMacLike("iPhone"))
	assert.False(t, IsMacLike("linux"))
	assert.False(t, IsMacLike("windows"))
	assert.False(t, IsMacLike(""))
}

func TestFormatNonMac(t *testing.T) {
	tests := []struct {
		name     string
		binding  Binding
		expected string
	}{
		{"ctrl enter", Binding{Ctrl: true, Key: "enter"}, "Ctrl+↵"},
		{"plain letter uppercased", Binding{Ctrl: true, Key: "s"}, "Ctrl+S"},
		{"all modifiers", Binding{Ctrl: true, Alt: true, Shift: true, Meta: true, Key: "p"}, "Ctrl+Alt+Shift+Meta+P"},
		{"escape", Binding{Key: "escape"}, "Esc"},
		{"short escape alias", Binding{Key: "esc"}, "Esc"},
		{"arrows", Binding{Alt: true, Key: "ArrowLeft"}, "Alt+←"},
		{"terminal arrow name", Binding{Alt: true, Key: "up"}, "Alt+↑"},
		{"space", Binding{Shift: true, Key: "space"}, "Shift+Space"},
		{"degenerate modifier only", Binding{Ctrl: true, Shift: true}, "Ctrl+Shift"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.binding, "linux"))
		})
	}
}

func TestFormatMacLike(t *testing.T) {
	tests := []struct {
		name     string
		binding  Binding
		expected string
	}{
		{"ctrl enter", Binding{Ctrl: true, Key: "enter"}, "⌘↵"},
		{"ctrl shift letter", Binding{Ctrl: true, Shift: true, Key: "s"}, "⌘⇧S"},
		{"alt arrow", Binding{Alt: true, Key: "down"}, "⌥↓"},
		{"meta hidden on mac", Binding{Ctrl: true, Meta: true, Key: "k"}, "⌘K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.binding, "darwin"))
		})
	}
}

func TestFormatIsPure(t *testing.T) {
	binding := Binding{Ctrl: true, Key: "enter", Handler: func() {}}
	first := Format(binding, "linux")
	second := Format(binding, "linux")
	assert.Equal(t, first, second)
	assert.Equal(t, "Ctrl+↵", first)
}
