package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	sdk "github.com/inference-gateway/sdk"
	"github.com/xipchat/cli/config"
	"github.com/xipchat/cli/internal/domain"
	"github.com/xipchat/cli/internal/logger"
	"github.com/xipchat/cli/internal/shortcuts"
)

const saveTimeout = 10 * time.Second

// TextCopier places text on the system clipboard
type TextCopier interface {
	CopyText(text string) error
}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	waitingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// ChatModel is the interactive chat session. Key presses flow through
// the shortcut stream first; only events whose default was not
// suppressed reach the text input and viewport.
type ChatModel struct {
	cfg      *config.Config
	chat     domain.ChatService
	repo     domain.ConversationRepository
	capturer domain.ScreenCapturer
	copier   TextCopier

	stream   *shortcuts.Stream
	registry *shortcuts.Registry

	textarea textarea.Model
	viewport viewport.Model

	width  int
	height int
	ready  bool

	waiting       bool
	quitting      bool
	showHelp      bool
	status        string
	statusIsError bool
	lastReply     string
	pendingImages []domain.ImageAttachment

	// commands queued by shortcut handlers during dispatch
	queued []tea.Cmd
}

// NewChatModel wires the chat session and registers the configured
// keyboard shortcuts.
func NewChatModel(
	cfg *config.Config,
	chat domain.ChatService,
	repo domain.ConversationRepository,
	capturer domain.ScreenCapturer,
	copier TextCopier,
) *ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.CharLimit = 0
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.Focus()

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	stream := shortcuts.NewStream()

	m := &ChatModel{
		cfg:      cfg,
		chat:     chat,
		repo:     repo,
		capturer: capturer,
		copier:   copier,
		stream:   stream,
		registry: shortcuts.NewRegistry(stream),
		textarea: ta,
		viewport: vp,
	}

	m.registerShortcuts()
	return m
}

// Registry exposes the shortcut registry, mainly for the help view and
// inspection commands.
func (m *ChatModel) Registry() *shortcuts.Registry {
	return m.registry
}

func (m *ChatModel) registerShortcuts() {
	if !m.cfg.Chat.Keybindings.Enabled {
		return
	}

	handlers := map[string]func(){
		config.ActionID(config.NamespaceGlobal, "quit"):           m.handleQuit,
		config.ActionID(config.NamespaceChat, "new_conversation"): m.handleNewConversation,
		config.ActionID(config.NamespaceChat, "focus_input"):      m.handleFocusInput,
		config.ActionID(config.NamespaceCapture, "screen"):        m.handleCaptureScreen,
		config.ActionID(config.NamespaceClipboard, "copy_reply"):  m.handleCopyReply,
		config.ActionID(config.NamespaceHelp, "toggle"):           m.handleToggleHelp,
	}

	for actionID, entry := range m.cfg.Chat.Keybindings.Bindings {
		if entry.Enabled != nil && !*entry.Enabled {
			continue
		}

		handler, ok := handlers[actionID]
		if !ok {
			logger.Warn("ignoring keybinding for unknown action", "action", actionID, "keys", entry.Keys)
			continue
		}

		for _, combo := range entry.Keys {
			binding := shortcuts.ParseCombo(combo)
			binding.Description = entry.Description
			binding.Handler = handler
			m.registry.Register(binding)
		}
	}
}

func (m *ChatModel) handleQuit() {
	m.quitting = true
	m.registry.StopListening()
	m.chat.CancelActive()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := m.repo.Save(ctx); err != nil {
		logger.Warn("failed to save conversation on exit", "error", err)
	}

	m.queue(tea.Quit)
}

// handleNewConversation persists the current conversation before the
// reset; the save must complete before Clear discards the entries, so it
// runs inline rather than as a queued command.
func (m *ChatModel) handleNewConversation() {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := m.repo.Save(ctx); err != nil {
		logger.Warn("failed to save conversation before reset", "error", err)
	}

	if err := m.repo.Clear(); err != nil {
		m.setError(fmt.Sprintf("Failed to start new conversation: %v", err))
		return
	}

	m.lastReply = ""
	m.pendingImages = nil
	m.waiting = false
	m.refreshViewport()
	m.setStatus("Started a new conversation")
}

func (m *ChatModel) handleFocusInput() {
	m.queue(m.textarea.Focus())
}

func (m *ChatModel) handleCaptureScreen() {
	m.setStatus("Capturing screen...")
	m.queue(m.captureCmd())
}

func (m *ChatModel) handleCopyReply() {
	if m.lastReply == "" {
		m.setStatus("No reply to copy yet")
		return
	}

	if err := m.copier.CopyText(m.lastReply); err != nil {
		m.setError(fmt.Sprintf("Clipboard copy failed: %v", err))
		return
	}

	m.setStatus("Copied last reply to clipboard")
}

func (m *ChatModel) handleToggleHelp() {
	m.showHelp = !m.showHelp
}

func (m *ChatModel) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.queued = append(m.queued, cmd)
	}
}

func (m *ChatModel) drainQueued() tea.Cmd {
	if len(m.queued) == 0 {
		return nil
	}

	cmds := m.queued
	m.queued = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

func (m *ChatModel) Init() tea.Cmd {
	m.registry.StartListening()
	return textarea.Blink
}

func (m *ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case chatResponseMsg:
		return m.handleChatResponse(msg)

	case chatErrMsg:
		m.waiting = false
		m.setError(fmt.Sprintf("Request failed: %v", msg.err))
		return m, nil

	case captureMsg:
		return m.handleCapture(msg)
	}

	return m, nil
}

func (m *ChatModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	chrome := m.textarea.Height() + 4
	m.viewport.Width = msg.Width
	m.viewport.Height = max(msg.Height-chrome, 1)
	m.textarea.SetWidth(msg.Width)

	m.ready = true
	m.refreshViewport()
	return m, nil
}

func (m *ChatModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	editable := m.textarea.Focused() && isEditingKey(msg)
	event := FromKeyMsg(msg, shortcuts.StaticTarget(editable))
	m.stream.Emit(event)

	if event.DefaultPrevented() {
		return m, m.drainQueued()
	}

	switch msg.String() {
	case "enter":
		if m.textarea.Focused() {
			return m, m.sendMessage()
		}

	case "alt+enter":
		if m.textarea.Focused() {
			m.textarea.InsertString("\n")
			return m, nil
		}

	case "esc":
		if m.textarea.Focused() {
			m.textarea.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.textarea.Focused() {
		m.textarea, cmd = m.textarea.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}

	return m, cmd
}

func (m *ChatModel) handleChatResponse(msg chatResponseMsg) (tea.Model, tea.Cmd) {
	m.waiting = false

	response := msg.response
	entry := domain.ConversationEntry{
		Message: sdk.Message{
			Role:    sdk.Assistant,
			Content: sdk.NewMessageContent(response.Content),
		},
		Model: response.Model,
		Time:  time.Now(),
	}

	if err := m.repo.AddMessage(entry); err != nil {
		m.setError(fmt.Sprintf("Failed to record reply: %v", err))
		return m, nil
	}

	m.repo.AddTokenUsage(response.Usage)
	m.lastReply = response.Content
	m.refreshViewport()
	m.viewport.GotoBottom()

	stats := m.repo.TokenStats()
	m.setStatus(fmt.Sprintf("%s • %.1fs • %d tokens this session",
		response.Model, response.Duration.Seconds(), stats.TotalTokens))

	return m, nil
}

func (m *ChatModel) handleCapture(msg captureMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError(fmt.Sprintf("Screen capture failed: %v", msg.err))
		return m, nil
	}

	m.pendingImages = append(m.pendingImages, *msg.attachment)
	m.setStatus(fmt.Sprintf("Screen captured, %d image(s) attached to next message", len(m.pendingImages)))
	return m, nil
}

// sendMessage records the user turn and fires the gateway request.
func (m *ChatModel) sendMessage() tea.Cmd {
	text := strings.TrimSpace(m.textarea.Value())
	if text == "" && len(m.pendingImages) == 0 {
		return nil
	}

	message, err := m.buildUserMessage(text)
	if err != nil {
		m.setError(fmt.Sprintf("Failed to build message: %v", err))
		return nil
	}

	entry := domain.ConversationEntry{
		Message: message,
		Time:    time.Now(),
		Images:  m.pendingImages,
	}
	if err := m.repo.AddMessage(entry); err != nil {
		m.setError(fmt.Sprintf("Failed to record message: %v", err))
		return nil
	}

	m.textarea.Reset()
	m.pendingImages = nil
	m.waiting = true
	m.setStatus("")
	m.refreshViewport()
	m.viewport.GotoBottom()

	model := m.cfg.Chat.DefaultModel
	history := historyMessages(m.repo.GetMessages())
	chat := m.chat

	return func() tea.Msg {
		response, err := chat.SendMessage(context.Background(), model, history)
		if err != nil {
			return chatErrMsg{err: err}
		}
		return chatResponseMsg{response: response}
	}
}

func (m *ChatModel) buildUserMessage(text string) (sdk.Message, error) {
	if len(m.pendingImages) == 0 {
		return sdk.Message{
			Role:    sdk.User,
			Content: sdk.NewMessageContent(text),
		}, nil
	}

	var parts []sdk.ContentPart

	textPart, err := sdk.NewTextContentPart(text)
	if err != nil {
		return sdk.Message{}, fmt.Errorf("text content: %w", err)
	}
	parts = append(parts, textPart)

	for _, img := range m.pendingImages {
		imagePart, err := sdk.NewImageContentPart(img.DataURL(), nil)
		if err != nil {
			return sdk.Message{}, fmt.Errorf("image content: %w", err)
		}
		parts = append(parts, imagePart)
	}

	return sdk.Message{
		Role:    sdk.User,
		Content: sdk.NewMessageContent(parts),
	}, nil
}

func historyMessages(entries []domain.ConversationEntry) []sdk.Message {
	messages := make([]sdk.Message, 0, len(entries))
	for _, entry := range entries {
		messages = append(messages, entry.Message)
	}
	return messages
}

func (m *ChatModel) captureCmd() tea.Cmd {
	capturer := m.capturer
	return func() tea.Msg {
		attachment, err := capturer.Capture(context.Background())
		return captureMsg{attachment: attachment, err: err}
	}
}

func (m *ChatModel) refreshViewport() {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	m.viewport.SetContent(RenderTranscript(m.repo.GetMessages(), width))
}

func (m *ChatModel) setStatus(status string) {
	m.status = status
	m.statusIsError = false
}

func (m *ChatModel) setError(status string) {
	m.status = status
	m.statusIsError = true
	logger.Error("chat session error", "error", status)
}

func (m *ChatModel) View() string {
	if m.quitting {
		return "Goodbye.\n"
	}
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(RenderHelpBar(m.registry.Bindings()))
	}

	return b.String()
}

func (m *ChatModel) statusLine() string {
	if m.waiting {
		return waitingStyle.Render("Waiting for reply...")
	}
	if m.status == "" {
		return statusStyle.Render("Press " + helpHint(m.registry) + " for shortcuts")
	}
	if m.statusIsError {
		return errorStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

func helpHint(registry *shortcuts.Registry) string {
	for _, b := range registry.Bindings() {
		if strings.Contains(strings.ToLower(b.Description), "help") {
			return shortcuts.FormatNative(b)
		}
	}
	return "?"
}
