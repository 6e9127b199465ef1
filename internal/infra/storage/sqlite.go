package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	config "github.com/xipchat/cli/config"
	domain "github.com/xipchat/cli/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStorage implements ConversationStorage using SQLite
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(cfg config.SQLiteConfig) (*SQLiteStorage, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", cfg.Path+"?_journal_mode=WAL&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	storage := &SQLiteStorage{db: db, path: cfg.Path}

	if err := storage.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		entries TEXT NOT NULL,
		metadata TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_conversations_updated_at ON conversations(updated_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveConversation saves a conversation with a unique ID
func (s *SQLiteStorage) SaveConversation(ctx context.Context, conversationID string, entries []domain.ConversationEntry, metadata ConversationMetadata) error {
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
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			count = excluded.count,
			entries = excluded.entries,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`, conversationID, metadata.Title, len(entries), string(entriesJSON), string(metadataJSON), metadata.CreatedAt, metadata.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save conversation %s: %w", conversationID, err)
	}

	return nil
}

// LoadConversation loads a conversation by its ID
func (s *SQLiteStorage) LoadConversation(ctx context.Context, conversationID string) ([]domain.ConversationEntry, ConversationMetadata, error) {
	var entriesJSON, metadataJSON string

	err := s.db.QueryRowContext(ctx,
		`SELECT entries, metadata FROM conversations WHERE id = ?`, conversationID,
	).Scan(&entriesJSON, &metadataJSON)
	if err == sql.ErrNoRows {
		return nil, ConversationMetadata{}, fmt.Errorf("conversation not found: %s", conversationID)
	}
	if err != nil {
		return nil, ConversationMetadata{}, fmt.Errorf("failed to load conversation %s: %w", conversationID, err)
	}

	var entries []domain.ConversationEntry
	if err := json.Unmarshal([]byte(entriesJSON), &entries); err != nil {
		return nil, ConversationMetadata{}, fmt.Errorf("failed to unmarshal entries: %w", err)
	}

	var metadata ConversationMetadata
	if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
		return nil, ConversationMetadata{}, fmt.Errorf("failed to unmarshal metadata: %w", err)
	}

	return entries, metadata, nil
}

// ListConversations returns conversation summaries, most recent first
func (s *SQLiteStorage) ListConversations(ctx context.Context, limit, offset int) ([]ConversationSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT metadata FROM conversations ORDER BY updated_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []ConversationSummary
	for rows.Next() {
		var metadataJSON string
		if err := rows.Scan(&metadataJSON); err != nil {
			return nil, fmt.Errorf("failed to scan conversation row: %w", err)
		}

		var metadata ConversationMetadata
		if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}

		summaries = append(summaries, summaryFromMetadata(metadata))
	}

	return summaries, rows.Err()
}

// DeleteConversation removes a conversation by its ID
func (s *SQLiteStorage) DeleteConversation(ctx context.Context, conversationID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, conversationID)
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
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Health checks if the database is reachable
func (s *SQLiteStorage) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
