// index.go — ScenarioIndex: the non-authoritative summary cache over the
// scenario directory, used to answer list/search without loading every
// scenario file.
package scenario

import "time"

// IndexEntry summarizes one stored scenario, enough to list and search
// without reading its full action chain.
type IndexEntry struct {
	Name         string    `json:"name"`
	Version      int       `json:"version"`
	Description  string    `json:"description,omitempty"`
	Tags         []string  `json:"tags,omitempty"`
	ActionCount  int       `json:"action_count"`
	Dependencies []string  `json:"dependencies,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ScenarioIndex is the on-disk cache over all stored scenarios. It is
// rebuilt by scanning scenario files whenever it's found to be missing,
// stale, or corrupt; the scenario files themselves are the source of truth.
type ScenarioIndex struct {
	Entries []IndexEntry `json:"entries"`
}

// EntryFor returns the index entry for name, if present.
func (idx *ScenarioIndex) EntryFor(name string) (IndexEntry, bool) {
	for _, e := range idx.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return IndexEntry{}, false
}

// Upsert inserts or replaces the entry matching e.Name.
func (idx *ScenarioIndex) Upsert(e IndexEntry) {
	for i, existing := range idx.Entries {
		if existing.Name == e.Name {
			idx.Entries[i] = e
			return
		}
	}
	idx.Entries = append(idx.Entries, e)
}

// Remove deletes the entry for name, reporting whether one was found.
func (idx *ScenarioIndex) Remove(name string) bool {
	for i, e := range idx.Entries {
		if e.Name == name {
			idx.Entries = append(idx.Entries[:i], idx.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// EntryFromScenario builds an IndexEntry by summarizing a loaded scenario.
func EntryFromScenario(s Scenario) IndexEntry {
	deps := make([]string, 0, len(s.Dependencies))
	for _, d := range s.Dependencies {
		deps = append(deps, d.Name)
	}
	return IndexEntry{
		Name:         s.Name,
		Version:      s.Version,
		Description:  s.Metadata.Description,
		Tags:         append([]string(nil), s.Metadata.Tags...),
		ActionCount:  len(s.Actions),
		Dependencies: deps,
		UpdatedAt:    s.Metadata.UpdatedAt,
	}
}
