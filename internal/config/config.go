// Package config loads shopfront configuration from YAML with environment
// variable overrides. Missing files fall back to defaults so the binary runs
// with zero setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all shopfront configuration.
type Config struct {
	// Backend is the storefront API the client talks to.
	Backend BackendConfig `yaml:"backend"`

	// Server configures the API service (`shopfront serve`).
	Server ServerConfig `yaml:"server"`

	// Chat configures the assistant session.
	Chat ChatConfig `yaml:"chat"`

	// Logging configures the zap logger.
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig points the client at the storefront API service.
type BackendConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// ServerConfig configures the API service.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// CatalogFile is an optional JSON product file loaded at boot and
	// hot-reloaded on change. Empty disables the file source.
	CatalogFile string `yaml:"catalog_file"`

	// SearchLimit is the default result cap for /api/search.
	SearchLimit int `yaml:"search_limit"`
}

// ChatConfig configures the assistant session.
type ChatConfig struct {
	// SearchLimit caps products per search issued from the UI.
	SearchLimit int `yaml:"search_limit"`
	Timeout     string `yaml:"timeout"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://127.0.0.1:8000",
			Timeout: "30s",
		},
		Server: ServerConfig{
			Addr:        ":8000",
			SearchLimit: 8,
		},
		Chat: ChatConfig{
			SearchLimit: 8,
			Timeout:     "30s",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "shopfront.log",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies SHOPFRONT_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("SHOPFRONT_BACKEND_URL"); url != "" {
		c.Backend.BaseURL = url
	}
	if addr := os.Getenv("SHOPFRONT_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if file := os.Getenv("SHOPFRONT_CATALOG_FILE"); file != "" {
		c.Server.CatalogFile = file
	}
	if level := os.Getenv("SHOPFRONT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("SHOPFRONT_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
}

// BackendTimeout parses the backend timeout, falling back to 30s.
func (c *Config) BackendTimeout() time.Duration {
	return parseDuration(c.Backend.Timeout, 30*time.Second)
}

// ChatTimeout parses the chat timeout, falling back to 30s.
func (c *Config) ChatTimeout() time.Duration {
	return parseDuration(c.Chat.Timeout, 30*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
