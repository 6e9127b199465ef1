package storage

import (
	"context"
	"time"

	domain "github.com/xipchat/cli/internal/domain"
)

// ConversationStorage defines the interface for persistent conversation storage
type ConversationStorage interface {
	// SaveConversation saves a conversation with a unique ID
	SaveConversation(ctx context.Context, conversationID string, entries []domain.ConversationEntry, metadata ConversationMetadata) error

	// LoadConversation loads a conversation by its ID
	LoadConversation(ctx context.Context, conversationID string) ([]domain.ConversationEntry, ConversationMetadata, error)

	// ListConversations returns conversation summaries, most recent first
	ListConversations(ctx context.Context, limit, offset int) ([]ConversationSummary, error)

	// DeleteConversation removes a conversation by its ID
	DeleteConversation(ctx context.Context, conversationID string) error

	// Close closes the storage connection
	Close() error

	// Health checks if the storage is healthy and reachable
	Health(ctx context.Context) error
}

// ConversationMetadata contains metadata about a conversation
type ConversationMetadata struct {
	ID           string                   `json:"id"`
	Title        string                   `json:"title"`
	CreatedAt    time.Time                `json:"created_at"`
	UpdatedAt    time.Time                `json:"updated_at"`
	MessageCount int                      `json:"message_count"`
	Model        string                   `json:"model,omitempty"`
	TokenStats   domain.SessionTokenStats `json:"token_stats"`
}

// ConversationSummary contains summary information about a conversation
type ConversationSummary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
	Model        string    `json:"model,omitempty"`
}

func summaryFromMetadata(metadata ConversationMetadata) ConversationSummary {
	return ConversationSummary{
		ID:           metadata.ID,
		Title:        metadata.Title,
		CreatedAt:    metadata.CreatedAt,
		UpdatedAt:    metadata.UpdatedAt,
		MessageCount: metadata.MessageCount,
		Model:        metadata.Model,
	}
}
