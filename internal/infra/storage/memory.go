package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domain "github.com/xipchat/cli/internal/domain"
)

// MemoryStorage implements ConversationStorage in memory. Conversation
// history features work without persistence; everything is lost on exit.
type MemoryStorage struct {
	conversations map[string]conversationData
	mutex         sync.RWMutex
}

type conversationData struct {
	entries  []domain.ConversationEntry
	metadata ConversationMetadata
}

// NewMemoryStorage creates a new in-memory storage instance
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		conversations: make(map[string]conversationData),
	}
}

// SaveConversation saves a conversation with a unique ID
func (m *MemoryStorage) SaveConversation(ctx context.Context, conversationID string, entries []domain.ConversationEntry, metadata ConversationMetadata) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	metadata.ID = conversationID
	metadata.UpdatedAt = time.Now()
	metadata.MessageCount = len(entries)

	entriesCopy := make([]domain.ConversationEntry, len(entries))
	copy(entriesCopy, entries)

	m.conversations[conversationID] = conversationData{
		entries:  entriesCopy,
		metadata: metadata,
	}

	return nil
}

// LoadConversation loads a conversation by its ID
func (m *MemoryStorage) LoadConversation(ctx context.Context, conversationID string) ([]domain.ConversationEntry, ConversationMetadata, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	data, exists := m.conversations[conversationID]
	if !exists {
		return nil, ConversationMetadata{}, fmt.Errorf("conversation not found: %s", conversationID)
	}

	entriesCopy := make([]domain.ConversationEntry, len(data.entries))
	copy(entriesCopy, data.entries)

	return entriesCopy, data.metadata, nil
}

// ListConversations returns conversation summaries, most recent first
func (m *MemoryStorage) ListConversations(ctx context.Context, limit, offset int) ([]ConversationSummary, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	summaries := make([]ConversationSummary, 0, len(m.conversations))
	for _, data := range m.conversations {
		summaries = append(summaries, summaryFromMetadata(data.metadata))
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})

	if offset >= len(summaries) {
		return []ConversationSummary{}, nil
	}
	summaries = summaries[offset:]

	if limit > 0 && limit < len(summaries) {
		summaries = summaries[:limit]
	}

	return summaries, nil
}

// DeleteConversation removes a conversation by its ID
func (m *MemoryStorage) DeleteConversation(ctx context.Context, conversationID string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.conversations[conversationID]; !exists {
		return fmt.Errorf("conversation not found: %s", conversationID)
	}

	delete(m.conversations, conversationID)
	return nil
}

// Close is a no-op for in-memory storage
func (m *MemoryStorage) Close() error {
	return nil
}

// Health always succeeds for in-memory storage
func (m *MemoryStorage) Health(ctx context.Context) error {
	return nil
}
