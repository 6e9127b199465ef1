package config

// KeyBindingEntry describes one configurable shortcut
type KeyBindingEntry struct {
	Keys        []string `yaml:"keys" mapstructure:"keys"`
	Description string   `yaml:"description" mapstructure:"description"`
	Category    string   `yaml:"category" mapstructure:"category"`
	Enabled     *bool    `yaml:"enabled,omitempty" mapstructure:"enabled"`
}

// Keybinding action namespaces
const (
	NamespaceGlobal    = "global"
	NamespaceChat      = "chat"
	NamespaceCapture   = "capture"
	NamespaceClipboard = "clipboard"
	NamespaceHelp      = "help"
)

// ActionID builds a namespaced keybinding action identifier
func ActionID(namespace, name string) string {
	return namespace + "." + name
}

// GetDefaultKeybindings returns the default keybinding configuration.
// Users can override any entry in their config file; missing entries
// fall back to these defaults.
func GetDefaultKeybindings() map[string]KeyBindingEntry {
	bindings := make(map[string]KeyBindingEntry)

	addGlobalBindings(bindings)
	addChatBindings(bindings)
	addCaptureBindings(bindings)
	addClipboardBindings(bindings)
	addHelpBindings(bindings)

	return bindings
}

func addGlobalBindings(bindings map[string]KeyBindingEntry) {
	enabled := true
	bindings[ActionID(NamespaceGlobal, "quit")] = KeyBindingEntry{
		Keys:        []string{"ctrl+c"},
		Description: "exit application",
		Category:    "global",
		Enabled:     &enabled,
	}
}

func addChatBindings(bindings map[string]KeyBindingEntry) {
	enabled := true
	bindings[ActionID(NamespaceChat, "new_conversation")] = KeyBindingEntry{
		Keys:        []string{"ctrl+n"},
		Description: "start a new conversation",
		Category:    "chat",
		Enabled:     &enabled,
	}
	bindings[ActionID(NamespaceChat, "focus_input")] = KeyBindingEntry{
		Keys:        []string{"ctrl+l"},
		Description: "focus the message input",
		Category:    "chat",
		Enabled:     &enabled,
	}
}

func addCaptureBindings(bindings map[string]KeyBindingEntry) {
	enabled := true
	bindings[ActionID(NamespaceCapture, "screen")] = KeyBindingEntry{
		Keys:        []string{"ctrl+p"},
		Description: "capture the screen and attach it",
		Category:    "capture",
		Enabled:     &enabled,
	}
}

func addClipboardBindings(bindings map[string]KeyBindingEntry) {
	enabled := true
	bindings[ActionID(NamespaceClipboard, "copy_reply")] = KeyBindingEntry{
		Keys:        []string{"ctrl+y"},
		Description: "copy the last assistant reply",
		Category:    "clipboard",
		Enabled:     &enabled,
	}
}

func addHelpBindings(bindings map[string]KeyBindingEntry) {
	enabled := true
	bindings[ActionID(NamespaceHelp, "toggle")] = KeyBindingEntry{
		Keys:        []string{"ctrl+h"},
		Description: "toggle the shortcut help bar",
		Category:    "help",
		Enabled:     &enabled,
	}
}
