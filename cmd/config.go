package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xipchat/cli/config"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Initialize and inspect the xipchat configuration file.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long:  `Write a configuration file with default values, including the default keybindings, so every setting is visible and editable.`,
	RunE:  initConfigFile,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Print the effective configuration after file, environment and default merging.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to render config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("overwrite", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfigFile(cmd *cobra.Command, args []string) error {
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	explicit, _ := rootCmd.PersistentFlags().GetString("config")
	path := config.GetConfigPath(explicit)

	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", path)
	}

	defaults := config.DefaultConfig()
	defaults.Chat.Keybindings.Bindings = config.GetDefaultKeybindings()

	if err := defaults.WriteTo(path); err != nil {
		return err
	}

	fmt.Printf("Wrote default configuration to %s\n", path)
	fmt.Printf("Included %d default keybindings: %v\n", len(defaults.Chat.Keybindings.Bindings), getDefaultKeybindingIDs())
	return nil
}
