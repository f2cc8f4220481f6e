package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	t.Parallel()
	cfg := Defaults()

	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level 'info', got %q", cfg.LogLevel)
	}
	if cfg.Headless {
		t.Error("expected headless to default to false")
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("expected default max_retries 3, got %d", cfg.MaxRetries)
	}
	if cfg.TimeoutMs != 30000 {
		t.Errorf("expected default timeout_ms 30000, got %d", cfg.TimeoutMs)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	configPath := filepath.Join(dir, ".scenariomcp.yaml")
	content := "log_level: debug\nmax_retries: 5\nheadless: true\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := Defaults()
	if err := loadYAMLFile(&cfg, configPath); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log_level debug, got %q", cfg.LogLevel)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("expected max_retries 5, got %d", cfg.MaxRetries)
	}
	if !cfg.Headless {
		t.Error("expected headless true")
	}
}

func TestLoadMissingProjectConfigIsNotAnError(t *testing.T) {
	t.Parallel()
	cfg := Defaults()
	if err := loadYAMLFile(&cfg, filepath.Join(t.TempDir(), ".scenariomcp.yaml")); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("SCENARIOMCP_LOG_LEVEL", "warn")
	t.Setenv("SCENARIOMCP_MAX_RETRIES", "9")

	cfg := Defaults()
	loadEnvVars(&cfg)

	if cfg.LogLevel != "warn" {
		t.Errorf("expected env log level 'warn', got %q", cfg.LogLevel)
	}
	if cfg.MaxRetries != 9 {
		t.Errorf("expected env max_retries 9, got %d", cfg.MaxRetries)
	}
}

func TestFlagsOverrideEverything(t *testing.T) {
	t.Setenv("SCENARIOMCP_LOG_LEVEL", "warn")

	level := "error"
	cfg := Defaults()
	loadEnvVars(&cfg)
	applyFlags(&cfg, &FlagOverrides{LogLevel: &level})

	if cfg.LogLevel != "error" {
		t.Errorf("expected flag to win with 'error', got %q", cfg.LogLevel)
	}
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	t.Parallel()
	cfg := Defaults()
	cfg.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown log level")
	}
}
