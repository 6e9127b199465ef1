package storage

import (
	"fmt"

	config "github.com/xipchat/cli/config"
	logger "github.com/xipchat/cli/internal/logger"
)

// NewConversationStorage creates the conversation storage backend
// selected by the configuration
func NewConversationStorage(cfg config.StorageConfig) (ConversationStorage, error) {
	switch cfg.Type {
	case "", "memory":
		return NewMemoryStorage(), nil
	case "sqlite":
		return NewSQLiteStorage(cfg.SQLite)
	case "postgres":
		return NewPostgresStorage(cfg.Postgres)
	case "redis":
		return NewRedisStorage(cfg.Redis)
	default:
		logger.Warn("unknown storage type", "type", cfg.Type)
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
