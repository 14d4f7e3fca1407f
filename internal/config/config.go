package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Snapshot configuration
	Subreddit           string
	PostLimit           int
	InitialCommentFetch int
	TopCommentsLimit    int
	TimeZone            string
	SnapshotSchedule    string // cron spec with a seconds field

	// Storage configuration
	DatabasePath string

	// Reddit API credentials
	RedditClientID     string
	RedditClientSecret string
	RedditUserAgent    string

	// Keyword sources, checked in order: blob, file, inline list
	KeywordsFile     string
	Keywords         []string
	StorageAccount   string
	StorageContainer string
	KeywordsBlob     string

	// Notification configuration (optional)
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string

	// Location resolved from TimeZone during Load
	Location *time.Location
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		Subreddit:           getEnv("SUBREDDIT", ""),
		PostLimit:           getIntEnv("POST_LIMIT", 100),
		InitialCommentFetch: getIntEnv("INITIAL_COMMENT_FETCH", 50),
		TopCommentsLimit:    getIntEnv("TOP_COMMENTS_LIMIT", 10),
		TimeZone:            getEnv("TIMEZONE", "UTC"),
		// Run at 01:00 local time so yesterday's posts have a full day of engagement
		SnapshotSchedule: getEnv("SNAPSHOT_SCHEDULE", "0 0 1 * * *"),

		DatabasePath: getEnv("DATABASE_PATH", "./data/trends.db"),

		RedditClientID:     getEnv("REDDIT_CLIENT_ID", ""),
		RedditClientSecret: getEnv("REDDIT_CLIENT_SECRET", ""),
		RedditUserAgent:    getEnv("REDDIT_USER_AGENT", "reddit-trend-tracker/1.0"),

		KeywordsFile:     getEnv("KEYWORDS_FILE", ""),
		Keywords:         getSliceEnv("KEYWORDS", nil),
		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "keywords"),
		KeywordsBlob:     getEnv("KEYWORDS_BLOB", ""),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.TimeZone, err)
	}
	cfg.Location = loc

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Subreddit == "" {
		return fmt.Errorf("SUBREDDIT is required")
	}

	if c.RedditClientID == "" || c.RedditClientSecret == "" {
		return fmt.Errorf("REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET are required")
	}

	if c.PostLimit <= 0 {
		return fmt.Errorf("POST_LIMIT must be positive")
	}
	if c.InitialCommentFetch <= 0 {
		return fmt.Errorf("INITIAL_COMMENT_FETCH must be positive")
	}
	if c.TopCommentsLimit <= 0 {
		return fmt.Errorf("TOP_COMMENTS_LIMIT must be positive")
	}

	if len(c.Keywords) == 0 && c.KeywordsFile == "" && c.KeywordsBlob == "" {
		return fmt.Errorf("at least one keyword source must be configured (KEYWORDS, KEYWORDS_FILE or KEYWORDS_BLOB)")
	}

	if c.KeywordsBlob != "" && c.StorageAccount == "" {
		return fmt.Errorf("AZURE_STORAGE_ACCOUNT is required when KEYWORDS_BLOB is set")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
