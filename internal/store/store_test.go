package store

import (
	"path/filepath"
	"testing"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	root := t.TempDir()
	s := NewStore(filepath.Join(root, "scenarios"), filepath.Join(root, "secrets"), filepath.Join(root, "scenarios", "index.json"))
	if err := s.Initialise(); err != nil {
		t.Fatalf("Initialise() error = %v", err)
	}
	return s
}

func testScenario(name string) scenario.Scenario {
	click, _ := scenario.NewAction(scenario.KindClick, &scenario.Selector{Primary: "#submit"}, 1000, scenario.ClickData{})
	return scenario.Scenario{
		Name:    name,
		Version: 1,
		Actions: []scenario.Action{click},
		Metadata: scenario.Metadata{
			Description: "test scenario " + name,
			Tags:        []string{"smoke"},
		},
	}
}

func TestInitialise_CreatesDirsAndSentinel(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	s := NewStore(filepath.Join(root, "scenarios"), filepath.Join(root, "secrets"), filepath.Join(root, "scenarios", "index.json"))
	if err := s.Initialise(); err != nil {
		t.Fatalf("Initialise() error = %v", err)
	}
	if err := s.Initialise(); err != nil {
		t.Fatalf("second Initialise() error = %v, want idempotent", err)
	}
}

func TestSave_RejectsMissingActions(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	sc := testScenario("empty")
	sc.Actions = nil
	if err := s.Save(sc, nil); err == nil {
		t.Fatal("Save() with no actions should fail")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	sc := testScenario("login")
	if err := s.Save(sc, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, secrets, err := s.Load("login", false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Name != "login" || len(loaded.Actions) != 1 {
		t.Fatalf("Load() = %+v", loaded)
	}
	if secrets != nil {
		t.Fatalf("Load(includeSecrets=false) should not return secrets, got %+v", secrets)
	}
	if loaded.Metadata.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set on first save")
	}
}

func TestSave_PreservesCreatedAtOnUpdate(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	sc := testScenario("update-me")
	if err := s.Save(sc, nil); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	first, _, err := s.Load("update-me", false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	sc.Metadata.Description = "updated description"
	if err := s.Save(sc, nil); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	second, _, err := s.Load("update-me", false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !first.Metadata.CreatedAt.Equal(second.Metadata.CreatedAt) {
		t.Errorf("CreatedAt changed across update: %v -> %v", first.Metadata.CreatedAt, second.Metadata.CreatedAt)
	}
	if second.Metadata.Description != "updated description" {
		t.Errorf("Description = %q, want updated", second.Metadata.Description)
	}
}

func TestLoad_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if _, _, err := s.Load("missing", false); err == nil {
		t.Fatal("Load() of missing scenario should error")
	}
}

func TestSave_WritesSecretsOnlyWhenNonEmpty(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	sc := testScenario("with-secrets")

	if err := s.Save(sc, &scenario.SecretsRecord{Values: map[string]string{}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	_, secrets, err := s.Load("with-secrets", true)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if secrets != nil {
		t.Fatalf("empty secrets map should not be persisted, got %+v", secrets)
	}

	if err := s.Save(sc, &scenario.SecretsRecord{Values: map[string]string{"password": "hunter2"}}); err != nil {
		t.Fatalf("Save() with secrets error = %v", err)
	}
	_, secrets, err = s.Load("with-secrets", true)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if secrets == nil || secrets.Values["password"] != "hunter2" {
		t.Fatalf("expected persisted secret, got %+v", secrets)
	}
}

func TestDelete_IsIdempotent(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	sc := testScenario("throwaway")
	if err := s.Save(sc, nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Delete("throwaway"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := s.Delete("throwaway"); err != nil {
		t.Fatalf("second Delete() error = %v, want idempotent", err)
	}
	if _, _, err := s.Load("throwaway", false); err == nil {
		t.Fatal("scenario should be gone after Delete()")
	}
}

func TestRename_MovesScenarioAndSecrets(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	sc := testScenario("old-name")
	if err := s.Save(sc, &scenario.SecretsRecord{Values: map[string]string{"token": "abc"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Rename("old-name", "new-name"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if _, _, err := s.Load("old-name", false); err == nil {
		t.Fatal("old name should no longer load after Rename()")
	}
	loaded, secrets, err := s.Load("new-name", true)
	if err != nil {
		t.Fatalf("Load(new-name) error = %v", err)
	}
	if loaded.Name != "new-name" {
		t.Fatalf("loaded.Name = %q, want new-name", loaded.Name)
	}
	if secrets == nil || secrets.Values["token"] != "abc" {
		t.Fatalf("secrets did not carry over, got %+v", secrets)
	}
}

func TestValidateName_RejectsTraversal(t *testing.T) {
	t.Parallel()
	for _, bad := range []string{"", "../escape", "a/b", "a\\b"} {
		if err := validateName(bad); err == nil {
			t.Errorf("validateName(%q) should fail", bad)
		}
	}
}
