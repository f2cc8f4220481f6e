// graph.go — Dependency graph construction, cycle detection and
// topological ordering. Mirrors the DFS visiting/visited bookkeeping of a
// workflow-graph engine, specialised to scenario-name nodes and
// execute_dependency edges.
package executor

import (
	"fmt"
	"strings"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
)

// ScenarioLoader resolves a scenario by name, the only capability the
// graph builder needs from the store.
type ScenarioLoader interface {
	Load(name string, includeSecrets bool) (scenario.Scenario, *scenario.SecretsRecord, error)
}

// CycleError reports a dependency cycle as the path suffix from the
// revisited node back to itself.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "dependency cycle: " + strings.Join(e.Path, " -> ")
}

// BuildChain resolves the full dependency chain for root via depth-first
// post-order traversal. The returned slice ends with root itself. Per-
// dependency guard evaluation happens at execution time (it needs live
// page state), not here; this pass only establishes order and detects
// cycles. A cycle aborts with a *CycleError wrapped in a referential
// scenarioerr.Error.
//
// The second return value maps each non-root scenario name to the edge it
// was first discovered through (the edge whose execute_dependency/condition
// fields gate whether the run loop executes it or only validates it). A
// scenario reachable via more than one edge keeps the edge of its first
// discovery; root is never a key.
func BuildChain(loader ScenarioLoader, root string) ([]scenario.Scenario, map[string]scenario.DependencyEdge, error) {
	visiting := map[string]bool{}
	visited := map[string]bool{}
	edgeOf := map[string]scenario.DependencyEdge{}
	var chain []scenario.Scenario
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		if visited[name] {
			return nil
		}
		if visiting[name] {
			cyclePath := append(append([]string{}, stack...), name)
			return scenarioerr.Newf(scenarioerr.KindReferential, scenarioerr.CodeDependencyCycle,
				"%s", (&CycleError{Path: cyclePath}).Error())
		}

		sc, _, err := loader.Load(name, false)
		if err != nil {
			return err
		}

		visiting[name] = true
		stack = append(stack, name)
		for _, dep := range sc.Dependencies {
			if _, ok := edgeOf[dep.Name]; !ok {
				edgeOf[dep.Name] = dep
			}
			if err := visit(dep.Name); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		visiting[name] = false
		visited[name] = true
		chain = append(chain, sc)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, nil, err
	}
	return chain, edgeOf, nil
}

// ValidateChain walks the chain in order maintaining the set of parameters
// available so far (seeded from provided), failing if any scenario's
// required parameter is missing. Declared outputs are added symbolically
// after each scenario. A type mismatch between a provided parameter and
// its declared type is returned as a warning, never an error.
func ValidateChain(chain []scenario.Scenario, provided map[string]any) (warnings []string, err error) {
	available := map[string]bool{}
	for name := range provided {
		available[name] = true
	}

	for _, sc := range chain {
		for _, p := range sc.Parameters {
			if p.Required && !available[p.Name] {
				return warnings, scenarioerr.Newf(scenarioerr.KindReferential, scenarioerr.CodeParamRequired,
					"scenario %q requires parameter %q, which is not available", sc.Name, p.Name)
			}
			if v, ok := provided[p.Name]; ok {
				if mismatch := typeMismatch(p.Type, v); mismatch != "" {
					warnings = append(warnings, fmt.Sprintf("parameter %q for scenario %q: %s", p.Name, sc.Name, mismatch))
				}
			}
		}
		for _, out := range sc.Outputs {
			available[out.Name] = true
			available[sc.Name+"."+out.Name] = true
		}
	}
	return warnings, nil
}

func typeMismatch(declared scenario.ParameterType, v any) string {
	switch declared {
	case scenario.ParamString, scenario.ParamSecret:
		if _, ok := v.(string); !ok {
			return fmt.Sprintf("declared type %s but got %T", declared, v)
		}
	case scenario.ParamNumber:
		switch v.(type) {
		case float64, int, int64:
		default:
			return fmt.Sprintf("declared type %s but got %T", declared, v)
		}
	case scenario.ParamBool:
		if _, ok := v.(bool); !ok {
			return fmt.Sprintf("declared type %s but got %T", declared, v)
		}
	}
	return ""
}
