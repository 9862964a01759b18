package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken    string
	DatabaseURL      string
	AdminTelegramID  int64
	AnnounceChatID   int64         // chat that receives drop live/ended announcements; 0 disables
	SubscribeURL     string        // external subscription endpoint the notify form posts to
	SubscribeTag     string        // fixed tag value submitted with every signup
	LogLevel         string
	Environment      string
	CronSpecDropSync string        // how often the widget set is reconciled against the drops table
	NotifyGuard      time.Duration // hard upper bound on the notify busy indicator
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
	if adminIDStr == "" {
		return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
	}
	cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
	}

	// Announcements are optional; without a chat the bus announcer is not wired.
	if announceIDStr := os.Getenv("ANNOUNCE_CHAT_ID"); announceIDStr != "" {
		cfg.AnnounceChatID, err = strconv.ParseInt(announceIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ANNOUNCE_CHAT_ID: %w", err)
		}
	}

	cfg.SubscribeURL = os.Getenv("SUBSCRIBE_URL")
	if cfg.SubscribeURL == "" {
		return nil, fmt.Errorf("SUBSCRIBE_URL is not set")
	}

	cfg.SubscribeTag = os.Getenv("SUBSCRIBE_TAG")
	if cfg.SubscribeTag == "" {
		cfg.SubscribeTag = "drop-notify"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.CronSpecDropSync = os.Getenv("CRON_SPEC_DROP_SYNC")
	if cfg.CronSpecDropSync == "" {
		cfg.CronSpecDropSync = "@every 1m" // Default: reconcile widgets every minute
	}

	guardSecondsStr := os.Getenv("NOTIFY_GUARD_SECONDS")
	if guardSecondsStr == "" {
		cfg.NotifyGuard = 8 * time.Second // Default safety valve for a stuck busy indicator
	} else {
		guardSeconds, convErr := strconv.Atoi(guardSecondsStr)
		if convErr != nil || guardSeconds <= 0 {
			return nil, fmt.Errorf("invalid NOTIFY_GUARD_SECONDS: %q", guardSecondsStr)
		}
		cfg.NotifyGuard = time.Duration(guardSeconds) * time.Second
	}

	return cfg, nil
}
