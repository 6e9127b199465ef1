package domain

import (
	"context"
	"time"

	sdk "github.com/inference-gateway/sdk"
)

// ConversationEntry represents a message in the conversation with metadata
type ConversationEntry struct {
	Message sdk.Message       `json:"message"`
	Model   string            `json:"model,omitempty"`
	Time    time.Time         `json:"time"`
	Images  []ImageAttachment `json:"images,omitempty"`
}

// ImageAttachment is a base64-encoded image attached to a message
type ImageAttachment struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// DataURL renders the attachment as a data URL for multimodal content parts
func (a ImageAttachment) DataURL() string {
	return "data:" + a.MimeType + ";base64," + a.Data
}

// SessionTokenStats accumulates token usage over a conversation
type SessionTokenStats struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
}

// Add accumulates usage reported by a single completion
func (s *SessionTokenStats) Add(usage *sdk.CompletionUsage) {
	if usage == nil {
		return
	}
	s.PromptTokens += usage.PromptTokens
	s.CompletionTokens += usage.CompletionTokens
	s.TotalTokens += usage.TotalTokens
}

// ConversationRepository handles the live conversation state
type ConversationRepository interface {
	ID() string
	AddMessage(entry ConversationEntry) error
	GetMessages() []ConversationEntry
	TokenStats() SessionTokenStats
	AddTokenUsage(usage *sdk.CompletionUsage)
	Clear() error
	Save(ctx context.Context) error
}

// ChatResponse is the outcome of a single completion request
type ChatResponse struct {
	Content  string
	Model    string
	Usage    *sdk.CompletionUsage
	Duration time.Duration
}

// ChatService sends conversation messages to the inference gateway
type ChatService interface {
	SendMessage(ctx context.Context, model string, messages []sdk.Message) (*ChatResponse, error)
	CancelActive()
}

// ScreenCapturer captures the screen as an image attachment
type ScreenCapturer interface {
	Capture(ctx context.Context) (*ImageAttachment, error)
}
