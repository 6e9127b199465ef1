package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/go-redis/redis/v8"
	config "github.com/xipchat/cli/config"
	domain "github.com/xipchat/cli/internal/domain"
)

// RedisStorage implements ConversationStorage using Redis. Conversations
// are stored as JSON documents with a sorted-set index on update time.
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(cfg config.RedisConfig) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStorage{client: client}, nil
}

func (s *RedisStorage) conversationKey(conversationID string) string {
	return fmt.Sprintf("xipchat:conversation:%s", conversationID)
}

func (s *RedisStorage) entriesKey(conversationID string) string {
	return fmt.Sprintf("xipchat:conversation:%s:entries", conversationID)
}

func (s *RedisStorage) indexKey() string {
	return "xipchat:conversations:index"
}

// SaveConversation saves a conversation with a unique ID
func (s *RedisStorage) SaveConversation(ctx context.Context, conversationID string, entries []domain.ConversationEntry, metadata ConversationMetadata) error {
	metadata.ID = conversationID
	metadata.UpdatedAt = time.Now()
	metadata.MessageCount = len(entries)
	if metadata.CreatedAt.IsZero() {
		metadata.CreatedAt = metadata.UpdatedAt
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	entriesJSON, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.conversationKey(conversationID), metadataJSON, 0)
	pipe.Set(ctx, s.entriesKey(conversationID), entriesJSON, 0)
	pipe.ZAdd(ctx, s.indexKey(), &redis.Z{
		Score:  float64(metadata.UpdatedAt.UnixNano()),
		Member: conversationID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save conversation %s: %w", conversationID, err)
	}

	return nil
}

// LoadConversation loads a conversation by its ID
func (s *RedisStorage) LoadConversation(ctx context.Context, conversationID string) ([]domain.ConversationEntry, ConversationMetadata, error) {
	metadataJSON, err := s.client.Get(ctx, s.conversationKey(conversationID)).Bytes()
	if err == redis.Nil {
		return nil, ConversationMetadata{}, fmt.Errorf("conversation not found: %s", conversationID)
	}
	if err != nil {
		return nil, ConversationMetadata{}, fmt.Errorf("failed to load conversation %s: %w", conversationID, err)
	}

	var metadata ConversationMetadata
	if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
		return nil, ConversationMetadata{}, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	entriesJSON, err := s.client.Get(ctx, s.entriesKey(conversationID)).Bytes()
	if err != nil && err != redis.Nil {
		return nil, ConversationMetadata{}, fmt.Errorf("failed to load entries for %s: %w", conversationID, err)
	}

	var entries []domain.ConversationEntry
	if len(entriesJSON) > 0 {
		if err := json.Unmarshal(entriesJSON, &entries); err != nil {
			return nil, ConversationMetadata{}, fmt.Errorf("failed to unmarshal entries: %w", err)
		}
	}

	return entries, metadata, nil
}

// ListConversations returns conversation summaries, most recent first
func (s *RedisStorage) ListConversations(ctx context.Context, limit, offset int) ([]ConversationSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	ids, err := s.client.ZRevRange(ctx, s.indexKey(), int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	summaries := make([]ConversationSummary, 0, len(ids))
	for _, id := range ids {
		metadataJSON, err := s.client.Get(ctx, s.conversationKey(id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load conversation %s: %w", id, err)
		}

		var metadata ConversationMetadata
		if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}

		summaries = append(summaries, summaryFromMetadata(metadata))
	}

	return summaries, nil
}

// DeleteConversation removes a conversation by its ID
func (s *RedisStorage) DeleteConversation(ctx context.Context, conversationID string) error {
	removed, err := s.client.ZRem(ctx, s.indexKey(), conversationID).Result()
	if err != nil {
		return fmt.Errorf("failed to delete conversation %s: %w", conversationID, err)
	}
	if removed == 0 {
		return fmt.Errorf("conversation not found: %s", conversationID)
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.conversationKey(conversationID))
	pipe.Del(ctx, s.entriesKey(conversationID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete conversation %s: %w", conversationID, err)
	}

	return nil
}

// Close closes the Redis connection
func (s *RedisStorage) Close() error {
	return s.client.Close()
}

// Health checks if Redis is reachable
func (s *RedisStorage) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
