package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	viper "github.com/spf13/viper"
	gotenv "github.com/subosito/gotenv"
	yaml "gopkg.in/yaml.v3"
)

// DefaultConfigPath is the default location of the config file relative
// to the user's home directory
const DefaultConfigPath = ".xipchat/config.yaml"

// Config represents the CLI configuration
type Config struct {
	Gateway GatewayConfig `yaml:"gateway" mapstructure:"gateway"`
	Chat    ChatConfig    `yaml:"chat" mapstructure:"chat"`
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
	Capture CaptureConfig `yaml:"capture" mapstructure:"capture"`
}

// GatewayConfig contains inference gateway connection settings
type GatewayConfig struct {
	URL     string `yaml:"url" mapstructure:"url"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	Timeout int    `yaml:"timeout" mapstructure:"timeout"`
}

// ChatConfig contains chat session settings
type ChatConfig struct {
	DefaultModel string            `yaml:"default_model" mapstructure:"default_model"`
	SystemPrompt string            `yaml:"system_prompt" mapstructure:"system_prompt"`
	Keybindings  KeybindingsConfig `yaml:"keybindings" mapstructure:"keybindings"`
}

// KeybindingsConfig contains keyboard shortcut overrides
type KeybindingsConfig struct {
	Enabled  bool                       `yaml:"enabled" mapstructure:"enabled"`
	Bindings map[string]KeyBindingEntry `yaml:"bindings" mapstructure:"bindings"`
}

// StorageConfig selects and configures the conversation storage backend
type StorageConfig struct {
	Type     string         `yaml:"type" mapstructure:"type"`
	SQLite   SQLiteConfig   `yaml:"sqlite" mapstructure:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
	Redis    RedisConfig    `yaml:"redis" mapstructure:"redis"`
}

// SQLiteConfig contains sqlite storage settings
type SQLiteConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PostgresConfig contains postgres storage settings
type PostgresConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Database string `yaml:"database" mapstructure:"database"`
	SSLMode  string `yaml:"ssl_mode" mapstructure:"ssl_mode"`
}

// RedisConfig contains redis storage settings
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

// CaptureConfig contains screen capture settings
type CaptureConfig struct {
	Enabled         bool `yaml:"enabled" mapstructure:"enabled"`
	MaxWidth        int  `yaml:"max_width" mapstructure:"max_width"`
	CopyToClipboard bool `yaml:"copy_to_clipboard" mapstructure:"copy_to_clipboard"`
	DisplayID       int  `yaml:"display_id" mapstructure:"display_id"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Gateway: GatewayConfig{
			URL:     "http://localhost:8080",
			APIKey:  "",
			Timeout: 120,
		},
		Chat: ChatConfig{
			DefaultModel: "",
			SystemPrompt: "You are a helpful assistant.",
			Keybindings: KeybindingsConfig{
				Enabled:  true,
				Bindings: map[string]KeyBindingEntry{},
			},
		},
		Storage: StorageConfig{
			Type: "memory",
			SQLite: SQLiteConfig{
				Path: ".xipchat/conversations.db",
			},
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
			Redis: RedisConfig{
				Addr: "localhost:6379",
			},
		},
		Capture: CaptureConfig{
			Enabled:         true,
			MaxWidth:        1568,
			CopyToClipboard: false,
			DisplayID:       0,
		},
	}
}

// GetConfigPath resolves the config file path, preferring an explicit
// path, then the home directory default
func GetConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultConfigPath
	}
	return filepath.Join(home, DefaultConfigPath)
}

// Load reads configuration from the given path, layering environment
// variables (XIPCHAT_ prefix) and a .env file over the file contents.
// A missing config file yields the defaults.
func Load(path string) (*Config, error) {
	_ = gotenv.Load()

	// Keybinding action IDs contain dots (e.g. "capture.screen"), so
	// viper's default "." delimiter would split them into nested maps
	// and lose user overrides. Use "::" as the key delimiter instead.
	v := viper.NewWithOptions(viper.KeyDelimiter("::"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("XIPCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer("::", "_"))
	v.AutomaticEnv()

	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	mergeDefaultKeybindings(cfg)

	return cfg, nil
}

// WriteTo writes the configuration as YAML to the given path, creating
// parent directories as needed
func (c *Config) WriteTo(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("gateway::url", cfg.Gateway.URL)
	v.SetDefault("gateway::api_key", cfg.Gateway.APIKey)
	v.SetDefault("gateway::timeout", cfg.Gateway.Timeout)
	v.SetDefault("chat::default_model", cfg.Chat.DefaultModel)
	v.SetDefault("chat::system_prompt", cfg.Chat.SystemPrompt)
	v.SetDefault("chat::keybindings::enabled", cfg.Chat.Keybindings.Enabled)
	v.SetDefault("storage::type", cfg.Storage.Type)
	v.SetDefault("storage::sqlite::path", cfg.Storage.SQLite.Path)
	v.SetDefault("storage::postgres::host", cfg.Storage.Postgres.Host)
	v.SetDefault("storage::postgres::port", cfg.Storage.Postgres.Port)
	v.SetDefault("storage::postgres::ssl_mode", cfg.Storage.Postgres.SSLMode)
	v.SetDefault("storage::redis::addr", cfg.Storage.Redis.Addr)
	v.SetDefault("storage::redis::db", cfg.Storage.Redis.DB)
	v.SetDefault("capture::enabled", cfg.Capture.Enabled)
	v.SetDefault("capture::max_width", cfg.Capture.MaxWidth)
	v.SetDefault("capture::copy_to_clipboard", cfg.Capture.CopyToClipboard)
	v.SetDefault("capture::display_id", cfg.Capture.DisplayID)
}

// mergeDefaultKeybindings fills in default bindings for actions absent
// from the config so user overrides never have to be exhaustive
func mergeDefaultKeybindings(cfg *Config) {
	if cfg.Chat.Keybindings.Bindings == nil {
		cfg.Chat.Keybindings.Bindings = map[string]KeyBindingEntry{}
	}

	for id, entry := range GetDefaultKeybindings() {
		if _, ok := cfg.Chat.Keybindings.Bindings[id]; !ok {
			cfg.Chat.Keybindings.Bindings[id] = entry
		}
	}
}
