package shortcuts

import (
	"runtime"
	"strings"
)

// macModifierGlyphs render the command-style modifiers on macOS-like
// platforms. Meta is not shown separately there; ctrl stands for the
// primary command modifier.
var macModifierGlyphs = struct {
	ctrl, alt, shift string
}{"⌘", "⌥", "⇧"}

// keyGlyphs substitutes well-known keys with display glyphs. Lookup is
// case-insensitive on the raw key identifier; both terminal-style and
// DOM-style arrow names are accepted.
var keyGlyphs = map[string]string{
	"enter":      "↵",
	"return":     "↵",
	"esc":        "Esc",
	"escape":     "Esc",
	"up":         "↑",
	"arrowup":    "↑",
	"down":       "↓",
	"arrowdown":  "↓",
	"left":       "←",
	"arrowleft":  "←",
	"right":      "→",
	"arrowright": "→",
	"space":      "Space",
}

// IsMacLike reports whether the platform descriptor names a macOS-like
// host. Descriptors are free-form: GOOS values, user agent platform
// strings, anything mentioning Mac hardware.
func IsMacLike(platform string) bool {
	p := strings.ToLower(platform)
	for _, marker := range []string{"darwin", "mac", "iphone", "ipad"} {
		if strings.Contains(p, marker) {
			return true
		}
	}
	return false
}

// Format renders a binding's combination as a human-readable label for
// the given platform descriptor. Pure function; no registry state.
//
// On macOS-like platforms modifiers render as glyphs joined without a
// separator; elsewhere as literal labels joined with "+". Join order is
// ctrl, alt, shift, meta, key.
func Format(binding Binding, platform string) string {
	macLike := IsMacLike(platform)

	var parts []string
	if binding.Ctrl {
		if macLike {
			parts = append(parts, macModifierGlyphs.ctrl)
		} else {
			parts = append(parts, "Ctrl")
		}
	}
	if binding.Alt {
		if macLike {
			parts = append(parts, macModifierGlyphs.alt)
		} else {
			parts = append(parts, "Alt")
		}
	}
	if binding.Shift {
		if macLike {
			parts = append(parts, macModifierGlyphs.shift)
		} else {
			parts = append(parts, "Shift")
		}
	}
	if binding.Meta && !macLike {
		parts = append(parts, "Meta")
	}

	if binding.Key != "" {
		parts = append(parts, keyGlyph(binding.Key))
	}

	if macLike {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, "+")
}

// FormatNative renders a binding for the platform the process runs on.
func FormatNative(binding Binding) string {
	return Format(binding, runtime.GOOS)
}

func keyGlyph(key string) string {
	if glyph, ok := keyGlyphs[strings.ToLower(key)]; ok {
		return glyph
	}
	return strings.ToUpper(key)
}
