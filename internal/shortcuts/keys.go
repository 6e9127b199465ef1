package shortcuts

import (
	"slices"
	"strings"
)

// knownKeys lists the non-printable key identifiers accepted in
// combination strings, terminal naming first with DOM-style aliases.
var knownKeys = []string{
	"enter", "return", "tab", "space", "backspace", "delete",
	"esc", "escape",
	"up", "down", "left", "right",
	"arrowup", "arrowdown", "arrowleft", "arrowright",
	"home", "end", "pgup", "pgdn", "page_up", "page_down",
	"f1", "f2", "f3", "f4", "f5", "f6",
	"f7", "f8", "f9", "f10", "f11", "f12",
}

// IsPrintableCharacter checks if a key string is a single printable character
func IsPrintableCharacter(key string) bool {
	return len(key) == 1 && key[0] >= ' ' && key[0] <= '~'
}

// IsKnownKey checks if a key string names a known non-printable key
func IsKnownKey(key string) bool {
	return slices.Contains(knownKeys, strings.ToLower(key))
}

// ValidCombo reports whether a combination string parses to a usable
// binding: a printable or known key, with or without modifiers.
func ValidCombo(combo string) bool {
	binding := ParseCombo(combo)
	if binding.Key == "" {
		return false
	}
	return IsPrintableCharacter(binding.Key) || IsKnownKey(binding.Key)
}
