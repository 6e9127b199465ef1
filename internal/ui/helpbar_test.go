package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xipchat/cli/internal/shortcuts"
)

func TestRenderHelpBarOrdersByCombination(t *testing.T) {
	bindings := []shortcuts.Binding{
		{Ctrl: true, Key: "y", Description: "Copy last reply"},
		{Ctrl: true, Key: "c", Description: "Quit"},
		{Ctrl: true, Key: "n", Description: "New conversation"},
	}

	out := RenderHelpBar(bindings)

	quit := strings.Index(out, "Quit")
	newConv := strings.Index(out, "New conversation")
	copyReply := strings.Index(out, "Copy last reply")
	assert.True(t, quit < newConv, "ctrl+c sorts before ctrl+n")
	assert.True(t, newConv < copyReply, "ctrl+n sorts before ctrl+y")
}

func TestRenderHelpBarUsesNativeFormatting(t *testing.T) {
	b := shortcuts.Binding{Ctrl: true, Key: "n", Description: "New conversation"}

	out := RenderHelpBar([]shortcuts.Binding{b})
	assert.Contains(t, out, shortcuts.FormatNative(b))
	assert.Contains(t, out, "New conversation")
}

func TestRenderHelpBarEmpty(t *testing.T) {
	assert.Equal(t, "", RenderHelpBar(nil))
}
