// Package common provides shared configuration, logging, and version
// utilities for trello-mcp.
package common

import (
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for trello-mcp.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Trello  TrelloConfig  `toml:"trello"`
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// TrelloConfig holds Trello REST API credentials and endpoint settings.
// APIKey, Token, and BoardID are required; startup fails without them.
type TrelloConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Token   string `toml:"token"`
	BoardID string `toml:"board_id"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *TrelloConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Format     string   `toml:"format"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "Trello-MCP",
			Port: "4253",
		},
		Trello: TrelloConfig{
			BaseURL: "https://api.trello.com/1",
			Timeout: "30s",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			Outputs:    []string{"console", "file"},
			FilePath:   "logs/trello-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Missing config files are skipped; later files override earlier ones.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if key := os.Getenv("TRELLO_API_KEY"); key != "" {
		config.Trello.APIKey = key
	}

	if token := os.Getenv("TRELLO_TOKEN"); token != "" {
		config.Trello.Token = token
	}

	if board := os.Getenv("TRELLO_BOARD_ID"); board != "" {
		config.Trello.BoardID = board
	}

	if url := os.Getenv("TRELLO_BASE_URL"); url != "" {
		config.Trello.BaseURL = url
	}

	if port := os.Getenv("TRELLO_MCP_PORT"); port != "" {
		config.Server.Port = port
	}

	if level := os.Getenv("TRELLO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// Validate checks that all required Trello values are present. The returned
// error names every missing value so a single failed startup reports the
// full set.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Trello.APIKey) == "" {
		missing = append(missing, "api_key (TRELLO_API_KEY)")
	}
	if strings.TrimSpace(c.Trello.Token) == "" {
		missing = append(missing, "token (TRELLO_TOKEN)")
	}
	if strings.TrimSpace(c.Trello.BoardID) == "" {
		missing = append(missing, "board_id (TRELLO_BOARD_ID)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required Trello configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
