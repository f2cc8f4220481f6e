package store

import (
	"encoding/json"
	"os"
	"time"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
)

// Save writes a scenario (and, if non-empty, its secrets) to disk and
// updates the index entry. The original created_at is preserved across an
// update; updated_at is always refreshed. secrets may be nil.
func (s *Store) Save(sc scenario.Scenario, secrets *scenario.SecretsRecord) error {
	if err := validateName(sc.Name); err != nil {
		return err
	}
	if len(sc.Actions) == 0 {
		return scenarioerr.New(scenarioerr.KindValidation, scenarioerr.CodeInvalidScenario, "scenario must have at least one action")
	}

	now := time.Now().UTC()
	if existing, err := s.readScenarioFile(sc.Name); err == nil {
		sc.Metadata.CreatedAt = existing.Metadata.CreatedAt
	} else {
		sc.Metadata.CreatedAt = now
	}
	sc.Metadata.UpdatedAt = now

	if err := s.writeScenarioFile(sc); err != nil {
		return err
	}

	if secrets != nil && len(secrets.Values) > 0 {
		rec := secrets.Clone()
		rec.ScenarioName = sc.Name
		if err := s.writeSecretsFile(rec); err != nil {
			return err
		}
	} else {
		_ = os.Remove(s.secretsPath(sc.Name))
	}

	idx, err := s.readIndex()
	if err != nil {
		return err
	}
	idx.Upsert(scenario.EntryFromScenario(sc))
	return s.writeIndex(idx)
}

func (s *Store) writeScenarioFile(sc scenario.Scenario) error {
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return ioError("marshal_scenario_failed", err)
	}
	if err := os.MkdirAll(s.scenariosDir, 0o755); err != nil {
		return ioError("mkdir_scenarios_failed", err)
	}
	if err := os.WriteFile(s.scenarioPath(sc.Name), data, 0o644); err != nil {
		return ioError("write_scenario_failed", err)
	}
	return nil
}

func (s *Store) writeSecretsFile(rec scenario.SecretsRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return ioError("marshal_secrets_failed", err)
	}
	if err := os.MkdirAll(s.secretsDir, 0o755); err != nil {
		return ioError("mkdir_secrets_failed", err)
	}
	if err := os.WriteFile(s.secretsPath(rec.ScenarioName), data, 0o600); err != nil {
		return ioError("write_secrets_failed", err)
	}
	return nil
}

func (s *Store) readScenarioFile(name string) (scenario.Scenario, error) {
	data, err := os.ReadFile(s.scenarioPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return scenario.Scenario{}, notFound(name)
		}
		return scenario.Scenario{}, ioError("read_scenario_failed", err)
	}
	var sc scenario.Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return scenario.Scenario{}, ioError("parse_scenario_failed", err)
	}
	return sc, nil
}

func (s *Store) readSecretsFile(name string) (*scenario.SecretsRecord, error) {
	data, err := os.ReadFile(s.secretsPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ioError("read_secrets_failed", err)
	}
	var rec scenario.SecretsRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, ioError("parse_secrets_failed", err)
	}
	return &rec, nil
}

// Load reads a scenario by name. When includeSecrets is true and a secrets
// file exists for it, the returned SecretsRecord is non-nil.
func (s *Store) Load(name string, includeSecrets bool) (scenario.Scenario, *scenario.SecretsRecord, error) {
	if err := validateName(name); err != nil {
		return scenario.Scenario{}, nil, err
	}
	sc, err := s.readScenarioFile(name)
	if err != nil {
		return scenario.Scenario{}, nil, err
	}
	if !includeSecrets {
		return sc, nil, nil
	}
	secrets, err := s.readSecretsFile(name)
	if err != nil {
		return scenario.Scenario{}, nil, err
	}
	return sc, secrets, nil
}

// Delete removes the scenario file, its secrets file if any, and its index
// entry. Idempotent: deleting a name that does not exist is not an error.
func (s *Store) Delete(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.Remove(s.scenarioPath(name)); err != nil && !os.IsNotExist(err) {
		return ioError("delete_scenario_failed", err)
	}
	if err := os.Remove(s.secretsPath(name)); err != nil && !os.IsNotExist(err) {
		return ioError("delete_secrets_failed", err)
	}
	idx, err := s.readIndex()
	if err != nil {
		return err
	}
	idx.Remove(name)
	return s.writeIndex(idx)
}

// Rename loads old, saves it under new (carrying its secrets, if any), then
// deletes old. Not transactional: a crash between the save and the delete
// leaves both old and new present; Validate is the published repair path.
func (s *Store) Rename(oldName, newName string) error {
	if err := validateName(oldName); err != nil {
		return err
	}
	if err := validateName(newName); err != nil {
		return err
	}
	sc, secrets, err := s.Load(oldName, true)
	if err != nil {
		return err
	}
	sc.Name = newName
	if secrets != nil {
		secrets.ScenarioName = newName
	}
	if err := s.Save(sc, secrets); err != nil {
		return err
	}
	return s.Delete(oldName)
}
