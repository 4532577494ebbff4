// Package config loads GreenConnect settings from an optional YAML file and
// environment variables. Environment values win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const appDir = "greenconnect"

type Config struct {
	// Gemini advice provider
	Gemini GeminiConfig `yaml:"gemini"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Load the demo activity log at startup.
	SeedMockData bool `yaml:"seed_mock_data" env:"GREENCONNECT_SEED_MOCK_DATA"`

	// Route opened at startup: "/", "/log" or "/community?topic=...".
	StartRoute string `yaml:"start_route" env:"GREENCONNECT_START_ROUTE"`

	// Directory receiving CSV/JSON exports.
	ExportDir string `yaml:"export_dir" env:"GREENCONNECT_EXPORT_DIR"`
}

type GeminiConfig struct {
	APIKey  string        `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model   string        `yaml:"model" env:"GREENCONNECT_GEMINI_MODEL"`
	Timeout time.Duration `yaml:"timeout" env:"GREENCONNECT_ADVICE_TIMEOUT"`
}

type LoggingConfig struct {
	Enabled bool   `yaml:"enabled" env:"GREENCONNECT_LOG_ENABLED"`
	File    string `yaml:"file" env:"GREENCONNECT_LOG_FILE"`
	Level   string `yaml:"level" env:"GREENCONNECT_LOG_LEVEL"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	dir, err := Dir()
	if err != nil {
		dir = "."
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Gemini: GeminiConfig{
			Model:   "gemini-2.5-flash",
			Timeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Enabled: true,
			File:    filepath.Join(dir, "greenconnect.log"),
			Level:   "info",
		},
		SeedMockData: true,
		StartRoute:   "/",
		ExportDir:    home,
	}
}

// Dir returns ~/.config/greenconnect (or the platform equivalent).
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, appDir), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path (or DefaultPath when empty) over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("advice timeout must be positive, got %s", c.Gemini.Timeout)
	}
	return nil
}

// AdviceEnabled reports whether an API key is configured.
func (c *Config) AdviceEnabled() bool {
	return c.Gemini.APIKey != ""
}
