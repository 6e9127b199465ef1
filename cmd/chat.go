package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/xipchat/cli/internal/infra/storage"
	"github.com/xipchat/cli/internal/logger"
	"github.com/xipchat/cli/internal/services"
	"github.com/xipchat/cli/internal/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with the configured model.
Messages support attached screen captures; press the capture shortcut
before sending to include a screenshot with your next message.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		model, _ := cmd.Flags().GetString("model")
		if model != "" {
			cfg.Chat.DefaultModel = model
		}

		if cfg.Chat.DefaultModel == "" {
			return fmt.Errorf("no model configured: set chat.default_model or pass --model provider/model")
		}

		return runChatSession()
	},
}

func init() {
	chatCmd.Flags().StringP("model", "m", "", "model to chat with, in provider/model form")
	rootCmd.AddCommand(chatCmd)
}

func runChatSession() error {
	store, err := storage.NewConversationStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize conversation storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close conversation storage", "error", err)
		}
	}()

	repo := services.NewSessionConversationRepo(store)
	chat := services.NewGatewayChatService(cfg.Gateway, cfg.Chat.SystemPrompt)
	capturer := services.NewScreenCaptureService(cfg.Capture)
	clip := services.NewClipboardService()

	model := ui.NewChatModel(cfg, chat, repo, capturer, clip)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running chat interface: %w", err)
	}

	fmt.Println("Chat session ended.")
	return nil
}
