package store

import (
	"strings"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

// SearchOptions selects the filters applied by Search. A zero-value
// SearchOptions matches nothing; List returns everything unfiltered.
type SearchOptions struct {
	Text      string
	Tags      []string
	DependsOn string
}

func (o SearchOptions) empty() bool {
	return o.Text == "" && len(o.Tags) == 0 && o.DependsOn == ""
}

// List returns every index summary.
func (s *Store) List() ([]scenario.IndexEntry, error) {
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	return idx.Entries, nil
}

// Search returns the union of entries matching any of the supplied
// criteria: tag intersection (every requested tag present), substring of
// name/description (case-insensitive), or presence of a dependency edge
// whose target equals DependsOn. An empty SearchOptions matches nothing.
func (s *Store) Search(opts SearchOptions) ([]scenario.IndexEntry, error) {
	idx, err := s.readIndex()
	if err != nil {
		return nil, err
	}
	if opts.empty() {
		return nil, nil
	}

	var out []scenario.IndexEntry
	for _, e := range idx.Entries {
		if matchesSearch(e, opts) {
			out = append(out, e)
		}
	}
	return out, nil
}

func matchesSearch(e scenario.IndexEntry, opts SearchOptions) bool {
	if len(opts.Tags) > 0 && hasAllTags(e.Tags, opts.Tags) {
		return true
	}
	if opts.Text != "" && matchesText(e, opts.Text) {
		return true
	}
	if opts.DependsOn != "" && containsString(e.Dependencies, opts.DependsOn) {
		return true
	}
	return false
}

func hasAllTags(have, want []string) bool {
	set := make(map[string]bool, len(have))
	for _, t := range have {
		set[strings.ToLower(t)] = true
	}
	for _, t := range want {
		if !set[strings.ToLower(t)] {
			return false
		}
	}
	return true
}

func matchesText(e scenario.IndexEntry, text string) bool {
	needle := strings.ToLower(text)
	return strings.Contains(strings.ToLower(e.Name), needle) ||
		strings.Contains(strings.ToLower(e.Description), needle)
}

func containsString(list []string, target string) bool {
	for _, s := range list {
		if s == target {
			return true
		}
	}
	return false
}

// Stats aggregates totals over the index: scenario count, count with
// secrets, count with dependencies, and the distinct tag universe.
type Stats struct {
	TotalScenarios   int      `json:"total_scenarios"`
	WithSecrets      int      `json:"with_secrets"`
	WithDependencies int      `json:"with_dependencies"`
	Tags             []string `json:"tags"`
}

// Stats computes aggregate counts over the current index and on-disk
// secrets directory.
func (s *Store) Stats() (Stats, error) {
	idx, err := s.readIndex()
	if err != nil {
		return Stats{}, err
	}

	tagSet := make(map[string]bool)
	out := Stats{TotalScenarios: len(idx.Entries)}
	for _, e := range idx.Entries {
		if len(e.Dependencies) > 0 {
			out.WithDependencies++
		}
		for _, t := range e.Tags {
			tagSet[t] = true
		}
		if has, err := s.hasSecrets(e.Name); err == nil && has {
			out.WithSecrets++
		}
	}
	out.Tags = make([]string, 0, len(tagSet))
	for t := range tagSet {
		out.Tags = append(out.Tags, t)
	}
	return out, nil
}

func (s *Store) hasSecrets(name string) (bool, error) {
	rec, err := s.readSecretsFile(name)
	if err != nil {
		return false, err
	}
	return rec != nil && len(rec.Values) > 0, nil
}
