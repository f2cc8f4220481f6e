package store

import (
	"strings"
	"testing"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

func TestExport_JSONRoundTripsThroughImport(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if err := s.Save(testScenario("exportable"), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	text, err := s.Export("exportable", false, FormatJSON)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(text, "exportable") {
		t.Fatalf("Export() output missing scenario name: %s", text)
	}

	if err := s.Delete("exportable"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	imported, err := s.Import(text, false)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if imported.Name != "exportable" {
		t.Fatalf("Import() = %+v", imported)
	}
}

func TestExport_YAMLRoundTripsThroughImport(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if err := s.Save(testScenario("yaml-flow"), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	text, err := s.Export("yaml-flow", false, FormatYAML)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if err := s.Delete("yaml-flow"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	imported, err := s.Import(text, false)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if imported.Name != "yaml-flow" {
		t.Fatalf("Import() = %+v", imported)
	}
}

func TestExport_IncludesSecretsWhenRequested(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if err := s.Save(testScenario("secret-flow"), &scenario.SecretsRecord{Values: map[string]string{"api_key": "xyz"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	text, err := s.Export("secret-flow", true, FormatJSON)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(text, "xyz") {
		t.Fatalf("Export(includeSecrets=true) missing secret value: %s", text)
	}

	textNoSecrets, err := s.Export("secret-flow", false, FormatJSON)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if strings.Contains(textNoSecrets, "xyz") {
		t.Fatalf("Export(includeSecrets=false) leaked secret value: %s", textNoSecrets)
	}
}

func TestImport_RefusesOverwriteByDefault(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if err := s.Save(testScenario("existing"), nil); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	text, err := s.Export("existing", false, FormatJSON)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if _, err := s.Import(text, false); err == nil {
		t.Fatal("Import() without overwrite should refuse an existing scenario")
	}
	if _, err := s.Import(text, true); err != nil {
		t.Fatalf("Import(overwrite=true) error = %v", err)
	}
}

func TestImport_RejectsMalformedDocument(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	if _, err := s.Import("not json and not yaml: [", false); err == nil {
		t.Fatal("Import() of malformed document should fail")
	}
}
