package store

import (
	"testing"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

func TestList_ReturnsAllEntries(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	for _, name := range []string{"a", "b", "c"} {
		if err := s.Save(testScenario(name), nil); err != nil {
			t.Fatalf("Save(%q) error = %v", name, err)
		}
	}
	entries, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(entries))
	}
}

func TestSearch_ByTextMatchesNameOrDescription(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if err := s.Save(testScenario("checkout-flow"), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(testScenario("other"), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	results, err := s.Search(SearchOptions{Text: "checkout"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Name != "checkout-flow" {
		t.Fatalf("Search(text=checkout) = %+v", results)
	}
}

func TestSearch_ByTagsRequiresAllTags(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	sc := testScenario("tagged")
	sc.Metadata.Tags = []string{"smoke", "critical"}
	if err := s.Save(sc, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	results, err := s.Search(SearchOptions{Tags: []string{"smoke", "critical"}})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Search(tags=smoke,critical) = %+v, want 1 match", results)
	}

	results, err = s.Search(SearchOptions{Tags: []string{"smoke", "nonexistent"}})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Search(tags=smoke,nonexistent) = %+v, want no match", results)
	}
}

func TestSearch_ByDependsOn(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if err := s.Save(testScenario("base"), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	dependent := testScenario("dependent")
	dependent.Dependencies = []scenario.DependencyEdge{{Name: "base", ExecuteDependency: true}}
	if err := s.Save(dependent, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	results, err := s.Search(SearchOptions{DependsOn: "base"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Name != "dependent" {
		t.Fatalf("Search(depends_on=base) = %+v", results)
	}
}

func TestSearch_EmptyOptionsMatchesNothing(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if err := s.Save(testScenario("solo"), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	results, err := s.Search(SearchOptions{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("Search(empty) = %+v, want no matches", results)
	}
}

func TestStats_CountsSecretsAndDependencies(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if err := s.Save(testScenario("plain"), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	secretScenario := testScenario("with-secret")
	if err := s.Save(secretScenario, &scenario.SecretsRecord{Values: map[string]string{"password": "hunter2"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	dependent := testScenario("depends-on-plain")
	dependent.Dependencies = []scenario.DependencyEdge{{Name: "plain", ExecuteDependency: true}}
	if err := s.Save(dependent, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalScenarios != 3 {
		t.Errorf("TotalScenarios = %d, want 3", stats.TotalScenarios)
	}
	if stats.WithSecrets != 1 {
		t.Errorf("WithSecrets = %d, want 1", stats.WithSecrets)
	}
	if stats.WithDependencies != 1 {
		t.Errorf("WithDependencies = %d, want 1", stats.WithDependencies)
	}
}
