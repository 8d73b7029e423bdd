// Package config loads the local configuration file. The file carries
// the three secrets (fixtures API key, bot token, chat ID) and is never
// checked into version control; config.example.yaml documents the shape.
//
// The loaded Config is immutable: main constructs it once and passes it
// to the fixture client and notifier constructors by parameter.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Football FootballConfig `yaml:"football"`
	Telegram TelegramConfig `yaml:"telegram"`
	Digest   DigestConfig   `yaml:"digest"`
	News     NewsConfig     `yaml:"news"`
}

// FootballConfig holds the fixtures API configuration
type FootballConfig struct {
	APIKey      string `yaml:"api_key"`
	TeamID      int    `yaml:"team_id"`
	TeamName    string `yaml:"team_name"`
	Competition string `yaml:"competition"` // standings code, e.g. ELC; empty disables the section
}

// TelegramConfig holds the messaging bot configuration
type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

// DigestConfig holds digest rendering and failure policy settings
type DigestConfig struct {
	Timezone          string `yaml:"timezone"`
	SecondaryTimezone string `yaml:"secondary_timezone"` // optional second kickoff time display
	FailFast          bool   `yaml:"fail_fast"`          // abort without sending on any fetch failure
}

// NewsConfig holds the optional club-news headline section settings
type NewsConfig struct {
	URL      string `yaml:"url"` // empty disables the section
	Selector string `yaml:"selector"`
	Limit    int    `yaml:"limit"`
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	// Apply environment variable overrides for secrets
	if key := os.Getenv("FOOTBALL_API_KEY"); key != "" {
		cfg.Football.APIKey = key
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Telegram.BotToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		cfg.Telegram.ChatID = chatID
	}

	// Set defaults
	if cfg.Digest.Timezone == "" {
		cfg.Digest.Timezone = "Europe/London"
	}
	if cfg.Football.TeamName == "" {
		cfg.Football.TeamName = "Birmingham City"
	}

	// Validate required fields
	if cfg.Football.APIKey == "" {
		return nil, fmt.Errorf("football.api_key is required (or set FOOTBALL_API_KEY env var)")
	}
	if cfg.Football.TeamID <= 0 {
		return nil, fmt.Errorf("football.team_id must be a positive integer")
	}
	if cfg.Telegram.BotToken == "" {
		return nil, fmt.Errorf("telegram.bot_token is required (or set TELEGRAM_BOT_TOKEN env var)")
	}
	if cfg.Telegram.ChatID == "" {
		return nil, fmt.Errorf("telegram.chat_id is required (or set TELEGRAM_CHAT_ID env var)")
	}

	return &cfg, nil
}
