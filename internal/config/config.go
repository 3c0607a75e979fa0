package config

import (
	"errors"
	"fmt"
	"os"
)

var ErrMissingAPIKey = errors.New("YouTube API key is required")

// Config holds the application configuration
type Config struct {
	YouTubeAPIKey string
	DBPath        string
	Port          string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A missing API key is a hard startup-abort condition, not a per-call concern.
	apiKey := os.Getenv("YOUTUBE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("%w: YOUTUBE_API_KEY environment variable is not set", ErrMissingAPIKey)
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "harvest.db"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		YouTubeAPIKey: apiKey,
		DBPath:        dbPath,
		Port:          port,
	}, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
