package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

// BrokenDependency names a dependency edge whose target scenario is absent
// from the index.
type BrokenDependency struct {
	Scenario string `json:"scenario"`
	Target   string `json:"target"`
}

// ValidationReport is the reconciliation report produced by Validate: the
// same log-diff "comparison/report" shape applied to index-vs-disk
// consistency instead of recording-vs-replay comparison.
type ValidationReport struct {
	OrphanFiles        []string           `json:"orphan_files"`
	MissingFiles       []string           `json:"missing_files"`
	BrokenDependencies []BrokenDependency `json:"broken_dependencies"`
	IndexRepaired      bool               `json:"index_repaired"`
}

// Validate reports orphan scenario files (present on disk, absent from the
// index), index entries whose backing file is missing, and broken
// dependency targets. It repairs the index in place: orphans are added,
// entries without a backing file are dropped. The scenario files remain the
// authoritative source; the index is only ever a cache.
func (s *Store) Validate() (ValidationReport, error) {
	idx, err := s.readIndex()
	if err != nil {
		return ValidationReport{}, err
	}

	onDisk, err := s.scenarioNamesOnDisk()
	if err != nil {
		return ValidationReport{}, err
	}

	report := ValidationReport{}
	inIndex := make(map[string]bool, len(idx.Entries))
	for _, e := range idx.Entries {
		inIndex[e.Name] = true
	}

	for _, name := range onDisk {
		if !inIndex[name] {
			sc, err := s.readScenarioFile(name)
			if err != nil {
				continue
			}
			idx.Upsert(scenario.EntryFromScenario(sc))
			report.OrphanFiles = append(report.OrphanFiles, name)
			report.IndexRepaired = true
		}
	}

	onDiskSet := make(map[string]bool, len(onDisk))
	for _, name := range onDisk {
		onDiskSet[name] = true
	}
	kept := idx.Entries[:0]
	for _, e := range idx.Entries {
		if !onDiskSet[e.Name] {
			report.MissingFiles = append(report.MissingFiles, e.Name)
			report.IndexRepaired = true
			continue
		}
		kept = append(kept, e)
	}
	idx.Entries = kept

	present := make(map[string]bool, len(idx.Entries))
	for _, e := range idx.Entries {
		present[e.Name] = true
	}
	for _, e := range idx.Entries {
		for _, dep := range e.Dependencies {
			if !present[dep] {
				report.BrokenDependencies = append(report.BrokenDependencies, BrokenDependency{
					Scenario: e.Name,
					Target:   dep,
				})
			}
		}
	}

	if report.IndexRepaired {
		if err := s.writeIndex(idx); err != nil {
			return ValidationReport{}, err
		}
	}

	return report, nil
}

func (s *Store) scenarioNamesOnDisk() ([]string, error) {
	entries, err := os.ReadDir(s.scenariosDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, ioError("readdir_scenarios_failed", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == filepath.Base(s.indexPath) || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".json"))
	}
	return names, nil
}
