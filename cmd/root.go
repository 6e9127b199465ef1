package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xipchat/cli/config"
	"github.com/xipchat/cli/internal/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "xipchat",
	Short: "Chat with AI models from your terminal",
	Long: `An interactive terminal chat client for the Inference Gateway.
Supports multi-modal conversations with screen capture attachments,
configurable keyboard shortcuts and persistent conversation history.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Welcome to xipchat!")
		fmt.Println("Use 'xipchat chat' to start a session or --help to see available commands.")
	},
}

func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	logger.Init(verbose)

	explicit, _ := rootCmd.PersistentFlags().GetString("config")
	configPath := config.GetConfigPath(explicit)

	loaded, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	cfg = loaded
}
