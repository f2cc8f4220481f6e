// Package config loads scenariomcp's server/CLI configuration with the
// same priority cascade (defaults < global file < project file < env vars
// < flags) as cmd/gasoline-cmd/config/loader.go. The file format is
// switched from that loader's encoding/json to gopkg.in/yaml.v3: every
// other example repo that ships a config loader (hazyhaar-chrc,
// smilemakc-mbflow, other_examples/streamy) reaches for YAML, so
// JSON-via-stdlib here would be the bare-stdlib outlier.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all resolved configuration values for the server and CLI.
type Config struct {
	LogLevel     string `yaml:"log_level"`
	Headless     bool   `yaml:"headless"`
	MaxRetries   int    `yaml:"max_retries"`
	TimeoutMs    int    `yaml:"timeout_ms"`
	RemoteChrome string `yaml:"remote_chrome"`
	SearchIndex  bool   `yaml:"search_index"` // mirror the index into modernc.org/sqlite
}

// FlagOverrides holds values explicitly set via command-line flags. A nil
// pointer means the flag was not set, so lower-priority values are kept.
type FlagOverrides struct {
	LogLevel     *string
	Headless     *bool
	MaxRetries   *int
	TimeoutMs    *int
	RemoteChrome *string
	SearchIndex  *bool
}

// Defaults returns the base configuration.
func Defaults() Config {
	return Config{
		LogLevel:   "info",
		Headless:   false,
		MaxRetries: 3,
		TimeoutMs:  30000,
	}
}

// Load builds the final configuration by applying the priority cascade:
// defaults < global (~/.config/scenariomcp/config.yaml) < project
// (.scenariomcp.yaml in projectDir) < env vars < flags.
func Load(projectDir string, flags *FlagOverrides) (Config, error) {
	cfg := Defaults()

	if home, err := os.UserHomeDir(); err == nil {
		_ = loadYAMLFile(&cfg, filepath.Join(home, ".config", "scenariomcp", "config.yaml"))
	}

	if err := loadYAMLFile(&cfg, filepath.Join(projectDir, ".scenariomcp.yaml")); err != nil {
		return cfg, fmt.Errorf("project config: %w", err)
	}

	loadEnvVars(&cfg)

	if flags != nil {
		applyFlags(&cfg, flags)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// fileConfig uses pointers to distinguish "not set" from zero values.
type fileConfig struct {
	LogLevel     *string `yaml:"log_level"`
	Headless     *bool   `yaml:"headless"`
	MaxRetries   *int    `yaml:"max_retries"`
	TimeoutMs    *int    `yaml:"timeout_ms"`
	RemoteChrome *string `yaml:"remote_chrome"`
	SearchIndex  *bool   `yaml:"search_index"`
}

func loadYAMLFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.Headless != nil {
		cfg.Headless = *fc.Headless
	}
	if fc.MaxRetries != nil {
		cfg.MaxRetries = *fc.MaxRetries
	}
	if fc.TimeoutMs != nil {
		cfg.TimeoutMs = *fc.TimeoutMs
	}
	if fc.RemoteChrome != nil {
		cfg.RemoteChrome = *fc.RemoteChrome
	}
	if fc.SearchIndex != nil {
		cfg.SearchIndex = *fc.SearchIndex
	}
	return nil
}

func loadEnvVars(cfg *Config) {
	if v := os.Getenv("SCENARIOMCP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SCENARIOMCP_HEADLESS"); v != "" {
		cfg.Headless = v == "1" || v == "true"
	}
	if v := os.Getenv("SCENARIOMCP_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("SCENARIOMCP_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("SCENARIOMCP_REMOTE_CHROME"); v != "" {
		cfg.RemoteChrome = v
	}
	if v := os.Getenv("SCENARIOMCP_SEARCH_INDEX"); v != "" {
		cfg.SearchIndex = v == "1" || v == "true"
	}
}

func applyFlags(cfg *Config, flags *FlagOverrides) {
	if flags.LogLevel != nil {
		cfg.LogLevel = *flags.LogLevel
	}
	if flags.Headless != nil {
		cfg.Headless = *flags.Headless
	}
	if flags.MaxRetries != nil {
		cfg.MaxRetries = *flags.MaxRetries
	}
	if flags.TimeoutMs != nil {
		cfg.TimeoutMs = *flags.TimeoutMs
	}
	if flags.RemoteChrome != nil {
		cfg.RemoteChrome = *flags.RemoteChrome
	}
	if flags.SearchIndex != nil {
		cfg.SearchIndex = *flags.SearchIndex
	}
}

// Validate checks that configuration values are within acceptable ranges.
func (c Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be >= 1, got %d", c.MaxRetries)
	}
	if c.TimeoutMs < 1 {
		return fmt.Errorf("timeout_ms must be >= 1, got %d", c.TimeoutMs)
	}
	return nil
}
