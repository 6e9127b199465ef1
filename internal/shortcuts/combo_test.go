package shortcuts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalOrderingAndCase(t *testing.T) {
	tests := []struct {
		name     string
		binding  Binding
		expected string
	}{
		{"key only", Binding{Key: "S"}, "s"},
		{"single modifier", Binding{Ctrl: true, Key: "s"}, "ctrl+s"},
		{"all modifiers in fixed order", Binding{Ctrl: true, Alt: true, Shift: true, Meta: true, Key: "Enter"}, "ctrl+alt+shift+meta+enter"},
		{"meta only", Binding{Meta: true, Key: "k"}, "meta+k"},
		{"degenerate modifier prefix", Binding{Ctrl: true, Shift: true}, "ctrl+shift"},
		{"empty binding", Binding{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.binding.Canonical())
		})
	}
}

func TestCanonicalIsDeterministic(t *testing.T) {
	binding := Binding{Ctrl: true, Shift: true, Key: "ArrowUp"}
	assert.Equal(t, binding.Canonical(), binding.Canonical())
}

func TestParseCombo(t *testing.T) {
	tests := []struct {
		combo    string
		expected Binding
	}{
		{"ctrl+s", Binding{Ctrl: true, Key: "s"}},
		{"Ctrl+Shift+S", Binding{Ctrl: true, Shift: true, Key: "s"}},
		{"control+alt+delete", Binding{Ctrl: true, Alt: true, Key: "delete"}},
		{"cmd+k", Binding{Meta: true, Key: "k"}},
		{"super+enter", Binding{Meta: true, Key: "enter"}},
		{"option+left", Binding{Alt: true, Key: "left"}},
		{"enter", Binding{Key: "enter"}},
		{"ctrl+shift", Binding{Ctrl: true, Shift: true}},
		{" ctrl + p ", Binding{Ctrl: true, Key: "p"}},
	}

	for _, tt := range tests {
		t.Run(tt.combo, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCombo(tt.combo))
		})
	}
}

func TestParseComboRoundTripsThroughCanonical(t *testing.T) {
	for _, combo := range []string{"ctrl+s", "ctrl+alt+shift+meta+x", "alt+enter", "f5"} {
		assert.Equal(t, combo, ParseCombo(combo).Canonical())
	}
}
