package shortcuts

import (
	"strings"
)

// Binding associates a key combination with a handler and a display label
type Binding struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
	Key   string

	Description string
	Handler     func()
}

// Canonical returns the identity of the binding's combination: present
// modifiers in fixed order (ctrl, alt, shift, meta) followed by the
// lowercased key, joined by "+". Two bindings address the same shortcut
// iff their canonical keys are equal.
//
// A binding without a key yields a degenerate modifier-only canonical key
// (e.g. "ctrl+shift"); registration never fails on it.
func (b Binding) Canonical() string {
	return canonicalKey(b.Ctrl, b.Alt, b.Shift, b.Meta, b.Key)
}

func canonicalKey(ctrl, alt, shift, meta bool, key string) string {
	parts := make([]string, 0, 5)

	if ctrl {
		parts = append(parts, "ctrl")
	}
	if alt {
		parts = append(parts, "alt")
	}
	if shift {
		parts = append(parts, "shift")
	}
	if meta {
		parts = append(parts, "meta")
	}
	if key != "" {
		parts = append(parts, strings.ToLower(key))
	}

	return strings.Join(parts, "+")
}

// ParseCombo parses a combination string like "ctrl+shift+s" into a
// binding with modifier flags and key populated. The last segment is the
// key; every preceding segment must name a modifier. Modifier aliases
// follow common usage: control, option, cmd/command/super/win.
func ParseCombo(combo string) Binding {
	var b Binding

	segments := strings.Split(combo, "+")
	for i, segment := range segments {
		segment = strings.TrimSpace(segment)
		last := i == len(segments)-1

		switch strings.ToLower(segment) {
		case "ctrl", "control":
			b.Ctrl = true
		case "alt", "option":
			b.Alt = true
		case "shift":
			b.Shift = true
		case "meta", "cmd", "command", "super", "win":
			b.Meta = true
		default:
			if last {
				b.Key = strings.ToLower(segment)
			}
		}
	}

	return b
}
