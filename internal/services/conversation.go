package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	uuid "github.com/google/uuid"
	sdk "github.com/inference-gateway/sdk"
	domain "github.com/xipchat/cli/internal/domain"
	formatting "github.com/xipchat/cli/internal/formatting"
	storage "github.com/xipchat/cli/internal/infra/storage"
	logger "github.com/xipchat/cli/internal/logger"
	zap "go.uber.org/zap"
)

const titleMaxLength = 60

// SessionConversationRepo holds the live conversation and persists it
// through a ConversationStorage backend
type SessionConversationRepo struct {
	mu        sync.RWMutex
	id        string
	createdAt time.Time
	entries   []domain.ConversationEntry
	stats     domain.SessionTokenStats
	model     string
	store     storage.ConversationStorage
}

// NewSessionConversationRepo starts a fresh conversation backed by store
func NewSessionConversationRepo(store storage.ConversationStorage) *SessionConversationRepo {
	return &SessionConversationRepo{
		id:        uuid.NewString(),
		createdAt: time.Now(),
		store:     store,
	}
}

// ID returns the conversation identifier
func (r *SessionConversationRepo) ID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.id
}

// AddMessage appends an entry to the conversation
func (r *SessionConversationRepo) AddMessage(entry domain.ConversationEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.Time.IsZero() {
		entry.Time = time.Now()
	}
	if entry.Model != "" {
		r.model = entry.Model
	}
	r.entries = append(r.entries, entry)

	return nil
}

// GetMessages returns a snapshot of the conversation entries
func (r *SessionConversationRepo) GetMessages() []domain.ConversationEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]domain.ConversationEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// TokenStats returns accumulated token usage
func (r *SessionConversationRepo) TokenStats() domain.SessionTokenStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stats
}

// AddTokenUsage accumulates usage from a completed request
func (r *SessionConversationRepo) AddTokenUsage(usage *sdk.CompletionUsage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats.Add(usage)
}

// Clear discards the conversation and starts a new one
func (r *SessionConversationRepo) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.id = uuid.NewString()
	r.createdAt = time.Now()
	r.entries = nil
	r.stats = domain.SessionTokenStats{}

	return nil
}

// Save persists the conversation through the storage backend
func (r *SessionConversationRepo) Save(ctx context.Context) error {
	r.mu.RLock()
	id := r.id
	entries := make([]domain.ConversationEntry, len(r.entries))
	copy(entries, r.entries)
	metadata := storage.ConversationMetadata{
		ID:         id,
		Title:      r.titleLocked(),
		CreatedAt:  r.createdAt,
		Model:      r.model,
		TokenStats: r.stats,
	}
	r.mu.RUnlock()

	if len(entries) == 0 {
		return nil
	}

	if err := r.store.SaveConversation(ctx, id, entries, metadata); err != nil {
		return fmt.Errorf("failed to persist conversation %s: %w", id, err)
	}

	logger.FromContext(ctx).Debug("conversation saved",
		zap.String("conversation", id),
		zap.Int("entries", len(entries)))

	return nil
}

// titleLocked derives a display title from the first user message.
// Callers must hold at least a read lock.
func (r *SessionConversationRepo) titleLocked() string {
	for _, entry := range r.entries {
		if entry.Message.Role != sdk.User {
			continue
		}
		text := formatting.ExtractTextFromContent(entry.Message.Content)
		if text != "" {
			return formatting.TruncateText(text, titleMaxLength)
		}
	}
	return "New conversation"
}
