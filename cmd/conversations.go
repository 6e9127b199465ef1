package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/xipchat/cli/internal/formatting"
	"github.com/xipchat/cli/internal/infra/storage"
)

const storageOpTimeout = 30 * time.Second

var conversationsCmd = &cobra.Command{
	Use:   "conversations",
	Short: "Manage saved conversation history",
	Long: `View and manage conversations saved to the configured storage
backend (memory, SQLite, PostgreSQL, or Redis).`,
}

var conversationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved conversations",
	Long:  `Display saved conversations with title, message count and timestamps, most recent first.`,
	RunE:  listConversations,
}

var conversationsShowCmd = &cobra.Command{
	Use:   "show <conversation-id>",
	Short: "Show a saved conversation",
	Long:  `Print the full message history of a saved conversation.`,
	Args:  cobra.ExactArgs(1),
	RunE:  showConversation,
}

var conversationsDeleteCmd = &cobra.Command{
	Use:   "delete <conversation-id>",
	Short: "Delete a saved conversation",
	Args:  cobra.ExactArgs(1),
	RunE:  deleteConversation,
}

func init() {
	conversationsListCmd.Flags().IntP("limit", "l", 50, "maximum number of conversations to display")
	conversationsListCmd.Flags().Int("offset", 0, "number of conversations to skip")
	conversationsListCmd.Flags().StringP("format", "f", "text", "output format (text, json)")

	conversationsCmd.AddCommand(conversationsListCmd)
	conversationsCmd.AddCommand(conversationsShowCmd)
	conversationsCmd.AddCommand(conversationsDeleteCmd)
	rootCmd.AddCommand(conversationsCmd)
}

func withStorage(fn func(ctx context.Context, store storage.ConversationStorage) error) error {
	store, err := storage.NewConversationStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize conversation storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), storageOpTimeout)
	defer cancel()

	return fn(ctx, store)
}

func listConversations(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")
	format, _ := cmd.Flags().GetString("format")

	return withStorage(func(ctx context.Context, store storage.ConversationStorage) error {
		summaries, err := store.ListConversations(ctx, limit, offset)
		if err != nil {
			return fmt.Errorf("failed to list conversations: %w", err)
		}

		if format == "json" {
			data, err := json.MarshalIndent(summaries, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if len(summaries) == 0 {
			fmt.Println("No saved conversations.")
			return nil
		}

		for _, summary := range summaries {
			fmt.Printf("%s  %s\n", summary.ID, summary.UpdatedAt.Format("2006-01-02 15:04"))
			fmt.Printf("    %s (%d messages", summary.Title, summary.MessageCount)
			if summary.Model != "" {
				fmt.Printf(", %s", summary.Model)
			}
			fmt.Println(")")
		}

		return nil
	})
}

func showConversation(cmd *cobra.Command, args []string) error {
	return withStorage(func(ctx context.Context, store storage.ConversationStorage) error {
		entries, metadata, err := store.LoadConversation(ctx, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s — %s\n\n", metadata.Title, metadata.ID)
		for _, entry := range entries {
			text := formatting.ExtractTextFromContent(entry.Message.Content)
			fmt.Printf("[%s] %s\n", entry.Message.Role, text)
		}
		fmt.Printf("\n%d messages, %d tokens\n", metadata.MessageCount, metadata.TokenStats.TotalTokens)

		return nil
	})
}

func deleteConversation(cmd *cobra.Command, args []string) error {
	return withStorage(func(ctx context.Context, store storage.ConversationStorage) error {
		if err := store.DeleteConversation(ctx, args[0]); err != nil {
			return err
		}

		fmt.Printf("Deleted conversation %s\n", args[0])
		return nil
	})
}
