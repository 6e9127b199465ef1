package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	config "github.com/xipchat/cli/config"
	domain "github.com/xipchat/cli/internal/domain"
)

// PostgresStorage implements ConversationStorage using PostgreSQL
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage creates a new PostgreSQL storage instance
func NewPostgresStorage(cfg config.PostgresConfig) (*PostgresStorage, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	storage := &PostgresStorage{db: db}

	if err := storage.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return storage, nil
}

func (s *PostgresStorage) createTables(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		entries JSONB NOT NULL,
		metadata JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_conversations_updated_at ON conversations(updated_at DESC);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// SaveConversation saves a conversation with a unique ID
func (s *PostgresStorage) SaveConversation(ctx context.Context, conversationID string, entries []domain.ConversationEntry, metadata ConversationMetadata) error {
	metadata.ID = conversationID
	metadata.UpdatedAt = time.Now()
	metadata.MessageCount = len(entries)
	if metadata.CreatedAt.IsZero() {
		metadata.CreatedAt = metadata.UpdatedAt
	}

	entriesJSON, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal entries: %w", err)
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO conversations (id, title, count, entries, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			count = EXCLUDED.count,
			entries = EXCLUDED.entries,
			metadata = EXCLUDED.metadata,
			updated_at = EXCLUDED.updated_at
	`, conversationID, metadata.Title, len(entries), entriesJSON, metadataJSON, metadata.CreatedAt, metadata.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save conversation %s: %w", conversationID, err)
	}

	return nil
}

// LoadConversation loads a conversation by its ID
func (s *PostgresStorage) LoadConversation(ctx context.Context, conversationID string) ([]domain.ConversationEntry, ConversationMetadata, error) {
	var entriesJSON, metadataJSON []byte

	err := s.db.QueryRowContext(ctx,
		`SELECT entries, metadata FROM conversations WHERE id = $1`, conversationID,
	).Scan(&entriesJSON, &metadataJSON)
	if err == sql.ErrNoRows {
		return nil, ConversationMetadata{}, fmt.Errorf("conversation not found: %s", conversationID)
	}
	if err != nil {
		return nil, ConversationMetadata{}, fmt.Errorf("failed to load conversation %s: %w", conversationID, err)
	}

	var entries []domain.ConversationEntry
	if err := json.Unmarshal(entriesJSON, &entries); err != nil {
		return nil, ConversationMetadata{}, fmt.Errorf("failed to unmarshal entries: %w", err)
	}

	var metadata ConversationMetadata
	if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
		return nil, ConversationMetadata{}, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	return entries, metadata, nil
}

// ListConversations returns conversation summaries, most recent first
func (s *PostgresStorage) ListConversations(ctx context.Context, limit, offset int) ([]ConversationSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT metadata FROM conversations ORDER BY updated_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []ConversationSummary
	for rows.Next() {
		var metadataJSON []byte
		if err := rows.Scan(&metadataJSON); err != nil {
			return nil, fmt.Errorf("failed to scan conversation row: %w", err)
		}

		var metadata ConversationMetadata
		if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}

		summaries = append(summaries, summaryFromMetadata(metadata))
	}

	return summaries, rows.Err()
}

// DeleteConversation removes a conversation by its ID
func (s *PostgresStorage) DeleteConversation(ctx context.Context, conversationID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = $1`, conversationID)
	if err != nil {
		return fmt.Errorf("failed to delete conversation %s: %w", conversationID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("conversation not found: %s", conversationID)
	}

	return nil
}

// Close closes the database connection
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

// Health checks if the database is reachable
func (s *PostgresStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
