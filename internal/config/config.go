// Package config loads runtime configuration from an optional YAML file
// with environment variable overrides. Secrets normally arrive through the
// environment (or a .env file loaded at CLI startup); the YAML file covers
// the rest.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults applied when neither file nor environment provides a value.
const (
	DefaultDatabasePath = "stylemate.db"
	DefaultModel        = "gemini-1.5-flash"
	DefaultPollTimeout  = 30
)

// Config is the full runtime configuration.
type Config struct {
	// TelegramToken authenticates against the Bot API. Required to serve.
	TelegramToken string `yaml:"telegram_token"`

	// GeminiAPIKey authenticates against the vision service. Required to serve.
	GeminiAPIKey string `yaml:"gemini_api_key"`

	// DatabasePath locates the SQLite database file.
	DatabasePath string `yaml:"database_path"`

	// Model names the generative model used for analysis.
	Model string `yaml:"model"`

	// PollTimeout is the long-poll timeout in seconds.
	PollTimeout int `yaml:"poll_timeout"`
}

// Load builds a Config from defaults, then the YAML file at path (if path
// is non-empty), then environment overrides. Unknown YAML fields are
// rejected so typos fail loudly instead of silently using a default.
func Load(path string) (*Config, error) {
	cfg := &Config{
		DatabasePath: DefaultDatabasePath,
		Model:        DefaultModel,
		PollTimeout:  DefaultPollTimeout,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if cfg.DatabasePath == "" {
		cfg.DatabasePath = DefaultDatabasePath
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = DefaultPollTimeout
	}

	return cfg, nil
}

// applyEnv overlays environment variables onto the config. The environment
// wins over the file so deployments can override without editing it.
func (c *Config) applyEnv() {
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		c.TelegramToken = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv("STYLEMATE_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("STYLEMATE_POLL_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil && timeout > 0 {
			c.PollTimeout = timeout
		}
	}
}

// ValidateForServe checks that the credentials serving requires are set.
// Offline operations (e.g. listing favorites) only need the database path
// and skip this.
func (c *Config) ValidateForServe() error {
	if c.TelegramToken == "" {
		return fmt.Errorf("telegram_token is required (set TELEGRAM_TOKEN or the config file)")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("gemini_api_key is required (set GEMINI_API_KEY or the config file)")
	}
	return nil
}
