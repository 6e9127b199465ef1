package storage

import (
	"context"
	"testing"
	"time"

	sdk "github.com/inference-gateway/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domain "github.com/xipchat/cli/internal/domain"
)

func testEntries(contents ...string) []domain.ConversationEntry {
	entries := make([]domain.ConversationEntry, 0, len(contents))
	for _, content := range contents {
		entries = append(entries, domain.ConversationEntry{
			Message: sdk.Message{
				Role:    sdk.User,
				Content: sdk.NewMessageContent(content),
			},
			Time: time.Now(),
		})
	}
	return entries
}

func TestMemoryStorageSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	entries := testEntries("hello", "world")
	err := store.SaveConversation(ctx, "conv-1", entries, ConversationMetadata{Title: "greetings"})
	require.NoError(t, err)

	loaded, metadata, err := store.LoadConversation(ctx, "conv-1")
	require.NoError(t, err)

	assert.Len(t, loaded, 2)
	assert.Equal(t, "greetings", metadata.Title)
	assert.Equal(t, 2, metadata.MessageCount)
	assert.Equal(t, "conv-1", metadata.ID)
}

func TestMemoryStorageLoadUnknownConversation(t *testing.T) {
	store := NewMemoryStorage()

	_, _, err := store.LoadConversation(context.Background(), "missing")
	assert.ErrorContains(t, err, "conversation not found")
}

func TestMemoryStorageSaveCopiesEntries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	entries := testEntries("original")
	require.NoError(t, store.SaveConversation(ctx, "conv-1", entries, ConversationMetadata{}))

	entries[0].Model = "mutated"

	loaded, _, err := store.LoadConversation(ctx, "conv-1")
	require.NoError(t, err)
	assert.Empty(t, loaded[0].Model)
}

func TestMemoryStorageListOrdersByRecency(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	require.NoError(t, store.SaveConversation(ctx, "older", testEntries("a"), ConversationMetadata{Title: "older"}))
	time.Sleep(2 * time.Millisecond)
	require.NoError(t, store.SaveConversation(ctx, "newer", testEntries("b"), ConversationMetadata{Title: "newer"}))

	summaries, err := store.ListConversations(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "newer", summaries[0].ID)
	assert.Equal(t, "older", summaries[1].ID)
}

func TestMemoryStorageListPagination(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.SaveConversation(ctx, id, testEntries(id), ConversationMetadata{}))
		time.Sleep(time.Millisecond)
	}

	page, err := store.ListConversations(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := store.ListConversations(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	empty, err := store.ListConversations(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStorageDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStorage()

	require.NoError(t, store.SaveConversation(ctx, "conv-1", testEntries("x"), ConversationMetadata{}))
	require.NoError(t, store.DeleteConversation(ctx, "conv-1"))

	assert.Error(t, store.DeleteConversation(ctx, "conv-1"))
	_, _, err := store.LoadConversation(ctx, "conv-1")
	assert.Error(t, err)
}
