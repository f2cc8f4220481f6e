// Package store persists scenarios and their detached secrets to disk and
// keeps a non-authoritative index cache for fast list/search/stats.
//
// Layout, generalised from the recording-storage layer in
// internal/capture/recording.go by renaming "recordings" to "scenarios":
//
//	<scenarios-dir>/<name>.json    one file per scenario
//	<scenarios-dir>/index.json     the aggregate index (rebuilt by Validate)
//	<secrets-dir>/<name>.json      plain key->value, only when non-empty
//	<secrets-dir>/.gitignore       sentinel excluding the directory from VCS
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
)

const secretsGitignoreContent = "*\n"

// Store is the filesystem-backed persistence layer for scenarios. The zero
// value is not usable; construct with NewStore.
type Store struct {
	scenariosDir string
	secretsDir   string
	indexPath    string

	// searchIndex mirrors the index into SQLite for text/tag search at
	// scale. Nil when no search-index mirror was configured; Search then
	// falls back to the in-memory linear scan over the JSON index.
	searchIndex *sqliteIndex
}

// NewStore constructs a Store rooted at the given scenarios and secrets
// directories, with the index cached at indexPath (conventionally
// <scenariosDir>/index.json).
func NewStore(scenariosDir, secretsDir, indexPath string) *Store {
	return &Store{scenariosDir: scenariosDir, secretsDir: secretsDir, indexPath: indexPath}
}

// validateName rejects names that are not a single safe path component,
// mirroring validateRecordingID.
func validateName(name string) error {
	if name == "" {
		return scenarioerr.New(scenarioerr.KindValidation, scenarioerr.CodeInvalidName, "scenario name must not be empty")
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return scenarioerr.New(scenarioerr.KindValidation, scenarioerr.CodeInvalidName, "scenario name contains illegal characters")
	}
	if filepath.Base(name) != name {
		return scenarioerr.New(scenarioerr.KindValidation, scenarioerr.CodeInvalidName, "scenario name must be a single path component")
	}
	return nil
}

func (s *Store) scenarioPath(name string) string {
	return filepath.Join(s.scenariosDir, name+".json")
}

func (s *Store) secretsPath(name string) string {
	return filepath.Join(s.secretsDir, name+".json")
}

// Initialise ensures both directories exist and the secrets-directory
// exclusion sentinel is present.
func (s *Store) Initialise() error {
	if err := os.MkdirAll(s.scenariosDir, 0o755); err != nil {
		return ioError("mkdir_scenarios_failed", err)
	}
	if err := os.MkdirAll(s.secretsDir, 0o755); err != nil {
		return ioError("mkdir_secrets_failed", err)
	}
	sentinel := filepath.Join(s.secretsDir, ".gitignore")
	if _, err := os.Stat(sentinel); os.IsNotExist(err) {
		if err := os.WriteFile(sentinel, []byte(secretsGitignoreContent), 0o644); err != nil {
			return ioError("write_sentinel_failed", err)
		}
	}
	if _, err := os.Stat(s.indexPath); os.IsNotExist(err) {
		if err := s.writeIndex(scenario.ScenarioIndex{}); err != nil {
			return err
		}
	}
	return nil
}

func ioError(code string, err error) *scenarioerr.Error {
	return scenarioerr.Newf(scenarioerr.KindStorage, scenarioerr.CodeIOFailed, "%s: %v", code, err)
}

func (s *Store) readIndex() (scenario.ScenarioIndex, error) {
	data, err := os.ReadFile(s.indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return scenario.ScenarioIndex{}, nil
		}
		return scenario.ScenarioIndex{}, ioError("read_index_failed", err)
	}
	var idx scenario.ScenarioIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return scenario.ScenarioIndex{}, ioError("parse_index_failed", err)
	}
	return idx, nil
}

func (s *Store) writeIndex(idx scenario.ScenarioIndex) error {
	if err := os.MkdirAll(filepath.Dir(s.indexPath), 0o755); err != nil {
		return ioError("mkdir_index_failed", err)
	}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return ioError("marshal_index_failed", err)
	}
	if err := os.WriteFile(s.indexPath, data, 0o644); err != nil {
		return ioError("write_index_failed", err)
	}
	if s.searchIndex != nil {
		_ = s.searchIndex.rebuild(idx)
	}
	return nil
}

func notFound(name string) *scenarioerr.Error {
	return scenarioerr.Newf(scenarioerr.KindReferential, scenarioerr.CodeScenarioNotFound, "no scenario named %q", name)
}
