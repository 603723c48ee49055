package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Telegram
	TelegramBotToken string
	AdminChatIDs     []int64 // chats allowed to /broadcast

	// Monitoring
	MonitorSchedule string // cron spec for the program check in serve mode
	CacheTTLMinutes int    // program cache lifetime for interactive commands

	// Server
	ServerPort string

	// Paths
	DatabaseFile          string // $CONFIG_DIR/kinowatch.db
	LegacySubscribersFile string // $CONFIG_DIR/subscribers.json, pre-database state

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Setup viper FIRST to load .env file
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	// Set defaults
	viper.SetDefault("MONITOR_SCHEDULE", "*/30 * * * *")
	viper.SetDefault("CACHE_TTL_MINUTES", 5)
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "kinowatch")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	adminChatIDs, err := parseChatIDs(viper.GetString("ADMIN_CHAT_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_CHAT_IDS: %w", err)
	}

	config := &Config{
		// Telegram
		TelegramBotToken: viper.GetString("TELEGRAM_BOT_TOKEN"),
		AdminChatIDs:     adminChatIDs,

		// Monitoring
		MonitorSchedule: viper.GetString("MONITOR_SCHEDULE"),
		CacheTTLMinutes: viper.GetInt("CACHE_TTL_MINUTES"),

		// Server
		ServerPort: viper.GetString("SERVER_PORT"),

		// Paths
		DatabaseFile:          filepath.Join(configDir, "kinowatch.db"),
		LegacySubscribersFile: filepath.Join(configDir, "subscribers.json"),

		// Logging
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	// Validate required fields
	if config.TelegramBotToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	return config, nil
}

// IsAdmin reports whether the chat may use admin-only commands.
func (c *Config) IsAdmin(chatID int64) bool {
	for _, id := range c.AdminChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

// parseChatIDs parses a comma-separated list of chat IDs.
func parseChatIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("chat ID %q is not an integer: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
