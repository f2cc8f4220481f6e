package executor

import (
	"testing"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

type mapLoader map[string]scenario.Scenario

func (m mapLoader) Load(name string, includeSecrets bool) (scenario.Scenario, *scenario.SecretsRecord, error) {
	sc, ok := m[name]
	if !ok {
		return scenario.Scenario{}, nil, errNotFound(name)
	}
	return sc, nil, nil
}

func errNotFound(name string) error {
	return &notFoundErr{name}
}

type notFoundErr struct{ name string }

func (e *notFoundErr) Error() string { return "scenario not found: " + e.name }

func TestBuildChain_OrdersDependenciesBeforeRoot(t *testing.T) {
	loader := mapLoader{
		"login":    {Name: "login"},
		"add-item": {Name: "add-item", Dependencies: []scenario.DependencyEdge{{Name: "login", ExecuteDependency: true}}},
		"checkout": {Name: "checkout", Dependencies: []scenario.DependencyEdge{{Name: "add-item", ExecuteDependency: true}}},
	}

	chain, edgeOf, err := BuildChain(loader, "checkout")
	if err != nil {
		t.Fatalf("BuildChain: %v", err)
	}
	if len(chain) != 3 {
		t.Fatalf("expected 3 scenarios in chain, got %d", len(chain))
	}
	order := []string{chain[0].Name, chain[1].Name, chain[2].Name}
	want := []string{"login", "add-item", "checkout"}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("chain order = %v, want %v", order, want)
		}
	}
	if _, ok := edgeOf["login"]; !ok {
		t.Fatalf("expected edgeOf to contain login")
	}
	if _, ok := edgeOf["checkout"]; ok {
		t.Fatalf("root should not appear in edgeOf")
	}
}

func TestBuildChain_DetectsCycle(t *testing.T) {
	loader := mapLoader{
		"a": {Name: "a", Dependencies: []scenario.DependencyEdge{{Name: "b", ExecuteDependency: true}}},
		"b": {Name: "b", Dependencies: []scenario.DependencyEdge{{Name: "a", ExecuteDependency: true}}},
	}

	_, _, err := BuildChain(loader, "a")
	if err == nil {
		t.Fatalf("expected cycle error, got nil")
	}
}

func TestValidateChain_MissingRequiredParamFails(t *testing.T) {
	chain := []scenario.Scenario{
		{Name: "login", Parameters: []scenario.Parameter{{Name: "username", Type: scenario.ParamString, Required: true}}},
	}
	_, err := ValidateChain(chain, map[string]any{})
	if err == nil {
		t.Fatalf("expected missing-parameter error")
	}
}

func TestValidateChain_TypeMismatchIsWarningNotError(t *testing.T) {
	chain := []scenario.Scenario{
		{Name: "login", Parameters: []scenario.Parameter{{Name: "retries", Type: scenario.ParamNumber, Required: true}}},
	}
	warnings, err := ValidateChain(chain, map[string]any{"retries": "three"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestValidateChain_OutputsBecomeAvailableToLaterScenarios(t *testing.T) {
	chain := []scenario.Scenario{
		{Name: "login", Outputs: []scenario.Output{{Name: "token"}}},
		{Name: "checkout", Parameters: []scenario.Parameter{{Name: "token", Type: scenario.ParamString, Required: true}}},
	}
	_, err := ValidateChain(chain, map[string]any{})
	if err != nil {
		t.Fatalf("expected token from login's output to satisfy checkout's requirement, got %v", err)
	}
}
