package services

import (
	"context"
	"testing"

	sdk "github.com/inference-gateway/sdk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domain "github.com/xipchat/cli/internal/domain"
	storage "github.com/xipchat/cli/internal/infra/storage"
	logger "github.com/xipchat/cli/internal/logger"
)

func TestRepoAddAndGetMessages(t *testing.T) {
	repo := NewSessionConversationRepo(storage.NewMemoryStorage())

	require.NoError(t, repo.AddMessage(domain.ConversationEntry{
		Message: userMessage("hello there"),
		Model:   "openai/gpt-4o",
	}))

	messages := repo.GetMessages()
	require.Len(t, messages, 1)
	assert.False(t, messages[0].Time.IsZero())

	// Snapshot, not a view.
	messages[0].Model = "mutated"
	assert.Equal(t, "openai/gpt-4o", repo.GetMessages()[0].Model)
}

func TestRepoClearStartsNewConversation(t *testing.T) {
	repo := NewSessionConversationRepo(storage.NewMemoryStorage())

	oldID := repo.ID()
	require.NoError(t, repo.AddMessage(domain.ConversationEntry{Message: userMessage("hi")}))
	repo.AddTokenUsage(&sdk.CompletionUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})

	require.NoError(t, repo.Clear())

	assert.NotEqual(t, oldID, repo.ID())
	assert.Empty(t, repo.GetMessages())
	assert.Equal(t, domain.SessionTokenStats{}, repo.TokenStats())
}

func TestRepoTokenStatsAccumulate(t *testing.T) {
	repo := NewSessionConversationRepo(storage.NewMemoryStorage())

	repo.AddTokenUsage(&sdk.CompletionUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15})
	repo.AddTokenUsage(&sdk.CompletionUsage{PromptTokens: 2, CompletionTokens: 3, TotalTokens: 5})
	repo.AddTokenUsage(nil)

	stats := repo.TokenStats()
	assert.Equal(t, int64(12), stats.PromptTokens)
	assert.Equal(t, int64(8), stats.CompletionTokens)
	assert.Equal(t, int64(20), stats.TotalTokens)
}

func TestRepoSavePersistsWithDerivedTitle(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	repo := NewSessionConversationRepo(store)

	require.NoError(t, repo.AddMessage(domain.ConversationEntry{Message: userMessage("what is the weather on mars like today, in detail, with sources?")}))
	require.NoError(t, repo.Save(ctx))

	_, metadata, err := store.LoadConversation(ctx, repo.ID())
	require.NoError(t, err)
	assert.Contains(t, metadata.Title, "what is the weather on mars")
	assert.LessOrEqual(t, len(metadata.Title), 60)
}

func TestRepoSaveLogsThroughContext(t *testing.T) {
	ctx, logs := logger.TestContext()
	repo := NewSessionConversationRepo(storage.NewMemoryStorage())

	require.NoError(t, repo.AddMessage(domain.ConversationEntry{Message: userMessage("hi")}))
	require.NoError(t, repo.Save(ctx))

	entries := logs.FilterMessage("conversation saved").All()
	require.Len(t, entries, 1)
	assert.Equal(t, repo.ID(), entries[0].ContextMap()["conversation"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["entries"])
}

func TestRepoSaveEmptyConversationIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStorage()
	repo := NewSessionConversationRepo(store)

	require.NoError(t, repo.Save(ctx))

	summaries, err := store.ListConversations(ctx, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}
