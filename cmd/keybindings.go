package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xipchat/cli/config"
	"github.com/xipchat/cli/internal/shortcuts"
)

var keybindingsCmd = &cobra.Command{
	Use:   "keybindings",
	Short: "Inspect keybinding configuration",
	Long:  `Inspect the keyboard shortcuts of the chat interface, including any overrides from the config file.`,
}

var keybindingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured keybindings",
	Long:  `Display all keybinding actions with their key assignments, formatted for the current or a chosen platform.`,
	RunE:  listKeybindings,
}

var keybindingsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate keybinding configuration",
	Long:  `Check the configured keybindings for unknown keys and conflicting assignments.`,
	RunE:  validateKeybindings,
}

func init() {
	keybindingsListCmd.Flags().String("platform", "", "format keys for a platform (e.g. darwin, linux, windows)")

	keybindingsCmd.AddCommand(keybindingsListCmd)
	keybindingsCmd.AddCommand(keybindingsValidateCmd)
	rootCmd.AddCommand(keybindingsCmd)
}

func listKeybindings(cmd *cobra.Command, args []string) error {
	platform, _ := cmd.Flags().GetString("platform")

	bindings := cfg.Chat.Keybindings.Bindings
	if len(bindings) == 0 {
		fmt.Println("No keybindings configured.")
		return nil
	}

	ids := make([]string, 0, len(bindings))
	for id := range bindings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if !cfg.Chat.Keybindings.Enabled {
		fmt.Println("Note: keybindings are currently disabled in config")
		fmt.Println()
	}

	currentCategory := ""
	for _, id := range ids {
		entry := bindings[id]

		if entry.Category != currentCategory {
			currentCategory = entry.Category
			fmt.Printf("%s\n", strings.ToUpper(currentCategory))
		}

		status := "enabled"
		if entry.Enabled != nil && !*entry.Enabled {
			status = "disabled"
		}

		keys := make([]string, 0, len(entry.Keys))
		for _, combo := range entry.Keys {
			keys = append(keys, formatCombo(combo, platform))
		}

		fmt.Printf("  %-28s %-16s %s\n", id, strings.Join(keys, ", "), status)
		fmt.Printf("     %s\n", entry.Description)
	}

	return nil
}

func validateKeybindings(cmd *cobra.Command, args []string) error {
	var problems []string
	assigned := map[string]string{}

	ids := make([]string, 0, len(cfg.Chat.Keybindings.Bindings))
	for id := range cfg.Chat.Keybindings.Bindings {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		entry := cfg.Chat.Keybindings.Bindings[id]
		for _, combo := range entry.Keys {
			if !shortcuts.ValidCombo(combo) {
				problems = append(problems, fmt.Sprintf("%s: unknown key in %q", id, combo))
				continue
			}

			canonical := shortcuts.ParseCombo(combo).Canonical()
			if other, ok := assigned[canonical]; ok {
				problems = append(problems, fmt.Sprintf("%s: %q already assigned to %s", id, combo, other))
			}
			assigned[canonical] = id
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Printf("  %s\n", p)
		}
		return fmt.Errorf("keybinding validation failed with %d problem(s)", len(problems))
	}

	fmt.Println("Keybinding configuration is valid")
	fmt.Printf("Total configured bindings: %d\n", len(cfg.Chat.Keybindings.Bindings))
	return nil
}

func formatCombo(combo, platform string) string {
	binding := shortcuts.ParseCombo(combo)
	if platform == "" {
		return shortcuts.FormatNative(binding)
	}
	return shortcuts.Format(binding, platform)
}

// getDefaultKeybindingIDs is used by the config command to report which
// actions carry defaults.
func getDefaultKeybindingIDs() []string {
	defaults := config.GetDefaultKeybindings()
	ids := make([]string, 0, len(defaults))
	for id := range defaults {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
