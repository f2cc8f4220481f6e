// Package state centralizes filesystem locations for scenariomcp runtime
// artifacts.
package state

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// StateDirEnv overrides the default runtime state root.
	StateDirEnv = "SCENARIOMCP_STATE_DIR"

	xdgStateHomeEnv = "XDG_STATE_HOME"
	appName         = "scenariomcp"
)

// RootDir returns the runtime state root for scenariomcp.
// Resolution order:
//  1. SCENARIOMCP_STATE_DIR (if set)
//  2. XDG_STATE_HOME/scenariomcp (if XDG_STATE_HOME is set)
//  3. os.UserConfigDir()/scenariomcp (cross-platform fallback)
func RootDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv(StateDirEnv)); override != "" {
		return normalizePath(override)
	}

	if xdg := strings.TrimSpace(os.Getenv(xdgStateHomeEnv)); xdg != "" {
		root, err := normalizePath(xdg)
		if err != nil {
			return "", err
		}
		return filepath.Join(root, appName), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user config directory: %w", err)
	}
	root, err := normalizePath(configDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, appName), nil
}

// LegacyRootDir returns the historical runtime root used by earlier versions.
func LegacyRootDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, "."+appName), nil
}

// LogsDir returns the logs directory under RootDir.
func LogsDir() (string, error) {
	return InRoot("logs")
}

// DefaultLogFile returns the default structured log file path.
func DefaultLogFile() (string, error) {
	return InRoot("logs", appName+".jsonl")
}

// CrashLogFile returns the panic crash log file path.
func CrashLogFile() (string, error) {
	return InRoot("logs", "crash.log")
}

// PIDFile returns the PID file path for the given server port.
func PIDFile(port int) (string, error) {
	return InRoot("run", appName+"-"+strconv.Itoa(port)+".pid")
}

// ScenariosDir returns the scenarios directory: one JSON file per scenario
// plus the index file.
func ScenariosDir() (string, error) {
	return InRoot("scenarios")
}

// LegacyScenariosDir returns the historical recordings directory, kept for
// one-time migration of pre-rename state.
func LegacyScenariosDir() (string, error) {
	root, err := LegacyRootDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "recordings"), nil
}

// SecretsDir returns the directory holding one secrets file per scenario
// that has secret parameters, plus the VCS-exclusion sentinel.
func SecretsDir() (string, error) {
	return InRoot("secrets")
}

// IndexFile returns the path of the non-authoritative scenario index cache.
func IndexFile() (string, error) {
	return InRoot("scenarios", "index.json")
}

// SearchIndexFile returns the path of the optional SQLite search-index mirror.
func SearchIndexFile() (string, error) {
	return InRoot("scenarios", "search.sqlite")
}

// SettingsFile returns the CLI/server settings cache file path.
func SettingsFile() (string, error) {
	return InRoot("settings", "settings.json")
}

// RedactionConfigFile returns the path of an optional custom redaction
// pattern file layered on top of the built-in patterns. Absence is not an
// error: NewRedactionEngine falls back to its built-ins when the file is
// missing.
func RedactionConfigFile() (string, error) {
	return InRoot("settings", "redaction.json")
}

// InRoot returns a path rooted under RootDir with additional path elements.
func InRoot(parts ...string) (string, error) {
	root, err := RootDir()
	if err != nil {
		return "", err
	}
	all := make([]string, 0, len(parts)+1)
	all = append(all, root)
	all = append(all, parts...)
	return filepath.Join(all...), nil
}

func normalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("empty path")
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}
	return filepath.Clean(absPath), nil
}
