// Package config handles global configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/citevet/config.yml.
// The zero value is not usable; start from Default().
type Config struct {
	// Contact is the email sent to lookup services for polite-pool access.
	Contact string `yaml:"contact,omitempty" json:"contact,omitempty"`

	Primary   SourceConfig `yaml:"primary,omitempty" json:"primary,omitempty"`
	Secondary SourceConfig `yaml:"secondary,omitempty" json:"secondary,omitempty"`

	// WindowSize is the number of concurrent lookups per batch window.
	WindowSize int `yaml:"window_size,omitempty" json:"window_size,omitempty"`

	// CacheTTLMinutes is the in-memory result cache lifetime.
	CacheTTLMinutes int `yaml:"cache_ttl_minutes,omitempty" json:"cache_ttl_minutes,omitempty"`

	// CacheDB is an optional path to a persistent result database.
	CacheDB string `yaml:"cache_db,omitempty" json:"cache_db,omitempty"`
}

// SourceConfig overrides one lookup service's endpoint and timeout.
type SourceConfig struct {
	BaseURL        string `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "citevet"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		WindowSize:      5,
		CacheTTLMinutes: 30,
	}
}

// Path returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/citevet/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// Load reads the global configuration file, layering it over Default()
// and applying environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path := Path()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config: %w", err)
			}
		}
	}

	applyEnv(cfg)

	if cfg.WindowSize <= 0 {
		cfg.WindowSize = Default().WindowSize
	}
	if cfg.CacheTTLMinutes <= 0 {
		cfg.CacheTTLMinutes = Default().CacheTTLMinutes
	}

	return cfg, nil
}

// applyEnv layers CITEVET_* environment variables over the file values.
func applyEnv(cfg *Config) {
	if v := os.Getenv("CITEVET_CONTACT"); v != "" {
		cfg.Contact = v
	}
	if v := os.Getenv("CITEVET_PRIMARY_URL"); v != "" {
		cfg.Primary.BaseURL = v
	}
	if v := os.Getenv("CITEVET_SECONDARY_URL"); v != "" {
		cfg.Secondary.BaseURL = v
	}
	if v := os.Getenv("CITEVET_CACHE_DB"); v != "" {
		cfg.CacheDB = v
	}
	if v := os.Getenv("CITEVET_WINDOW_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WindowSize = n
		}
	}
}

// CacheTTL returns the in-memory cache lifetime as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// Timeout returns the source timeout as a duration, or zero when unset.
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Save writes the configuration to the global config path, creating the
// directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
