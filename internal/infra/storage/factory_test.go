package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config "github.com/xipchat/cli/config"
)

func TestFactoryDefaultsToMemory(t *testing.T) {
	store, err := NewConversationStorage(config.StorageConfig{})
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.IsType(t, &MemoryStorage{}, store)
}

func TestFactoryCreatesSQLite(t *testing.T) {
	store, err := NewConversationStorage(config.StorageConfig{
		Type:   "sqlite",
		SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "conv.db")},
	})
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	assert.IsType(t, &SQLiteStorage{}, store)
	assert.NoError(t, store.Health(context.Background()))
}

func TestFactoryRejectsUnknownType(t *testing.T) {
	_, err := NewConversationStorage(config.StorageConfig{Type: "papertape"})
	assert.ErrorContains(t, err, "unknown storage type")
}

func TestSQLiteStorageRoundTrip(t *testing.T) {
	ctx := context.Background()

	store, err := NewSQLiteStorage(config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "conv.db")})
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	entries := testEntries("hello", "again")
	require.NoError(t, store.SaveConversation(ctx, "conv-1", entries, ConversationMetadata{Title: "sqlite test"}))

	loaded, metadata, err := store.LoadConversation(ctx, "conv-1")
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
	assert.Equal(t, "sqlite test", metadata.Title)

	// Upsert replaces in place.
	require.NoError(t, store.SaveConversation(ctx, "conv-1", testEntries("only"), ConversationMetadata{Title: "replaced"}))

	loaded, metadata, err = store.LoadConversation(ctx, "conv-1")
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
	assert.Equal(t, "replaced", metadata.Title)

	summaries, err := store.ListConversations(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "conv-1", summaries[0].ID)

	require.NoError(t, store.DeleteConversation(ctx, "conv-1"))
	assert.Error(t, store.DeleteConversation(ctx, "conv-1"))
}
