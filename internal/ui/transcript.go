package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	sdk "github.com/inference-gateway/sdk"
	"github.com/muesli/reflow/wordwrap"
	"github.com/xipchat/cli/internal/domain"
	"github.com/xipchat/cli/internal/formatting"
)

var (
	userLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	assistantLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))

	systemLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("8"))

	attachmentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Italic(true)
)

// RenderTranscript renders conversation entries as wrapped, labeled text
func RenderTranscript(entries []domain.ConversationEntry, width int) string {
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for i, entry := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(renderEntry(entry, width))
	}

	return b.String()
}

func renderEntry(entry domain.ConversationEntry, width int) string {
	label := roleLabel(entry.Message.Role)
	text := formatting.ExtractTextFromContent(entry.Message.Content)

	var b strings.Builder
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(wordwrap.String(text, width))

	for i := range entry.Images {
		b.WriteString("\n")
		b.WriteString(attachmentStyle.Render(fmt.Sprintf("  [attached image %d]", i+1)))
	}

	return b.String()
}

func roleLabel(role sdk.MessageRole) string {
	switch role {
	case sdk.User:
		return userLabelStyle.Render("You")
	case sdk.Assistant:
		return assistantLabelStyle.Render("Assistant")
	default:
		return systemLabelStyle.Render(string(role))
	}
}
