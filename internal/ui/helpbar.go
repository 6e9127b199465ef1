package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xipchat/cli/internal/shortcuts"
)

var (
	helpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	helpSeparator = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Render(" • ")
)

// RenderHelpBar renders registered shortcuts as a single help line,
// ordered by canonical combination for stable output.
func RenderHelpBar(bindings []shortcuts.Binding) string {
	sorted := make([]shortcuts.Binding, len(bindings))
	copy(sorted, bindings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Canonical() < sorted[j].Canonical()
	})

	parts := make([]string, 0, len(sorted))
	for _, b := range sorted {
		label := helpKeyStyle.Render(shortcuts.FormatNative(b))
		if b.Description != "" {
			label = fmt.Sprintf("%s %s", label, helpDescStyle.Render(b.Description))
		}
		parts = append(parts, label)
	}

	return strings.Join(parts, helpSeparator)
}
