// run.go — Execute: the top-level orchestration tying dependency
// resolution, guard-gated conditional execution, parameter substitution and
// per-action retry/recovery into one scenario run.
package executor

import (
	"context"
	"time"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

// Execute resolves name's full dependency chain, validates parameter
// availability, then runs each scenario in dependency order. A dependency
// whose edge sets execute_dependency=false, or whose guard/skip_if decides
// against it, is validated but not run: its outputs are never bound and it
// is excluded from ExecutedScenarios.
//
// Execution aborts at the first action that exhausts its retry budget;
// Result is still returned (with partial progress) alongside the error.
func (ex *Executor) Execute(ctx context.Context, name string, params map[string]any) (*Result, error) {
	return ex.execute(ctx, name, params, true)
}

// ExecuteOnly runs name's own actions without running any dependency
// scenario, regardless of what each edge's execute_dependency says. The
// full chain is still resolved and validated first, so a dependency whose
// parameters/outputs would not have been satisfiable still surfaces as a
// referential error; this is the execute-scenario tool's
// execute_dependencies=false request, not a validation bypass.
func (ex *Executor) ExecuteOnly(ctx context.Context, name string, params map[string]any) (*Result, error) {
	return ex.execute(ctx, name, params, false)
}

func (ex *Executor) execute(ctx context.Context, name string, params map[string]any, runDeps bool) (*Result, error) {
	start := time.Now()
	result := &Result{Outputs: map[string]any{}}

	chain, edgeOf, err := BuildChain(ex.loader, name)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Duration = time.Since(start)
		return result, err
	}

	warnings, err := ValidateChain(chain, params)
	result.Errors = append(result.Errors, warnings...)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		result.Duration = time.Since(start)
		return result, err
	}

	execCtx := NewContext(params)

	for _, sc := range chain {
		if sc.Name != name {
			if !runDeps {
				result.SkippedScenarios = append(result.SkippedScenarios, sc.Name)
				continue
			}
			edge, hasEdge := edgeOf[sc.Name]
			if hasEdge && !ex.shouldRunDependency(ctx, edge, execCtx) {
				result.SkippedScenarios = append(result.SkippedScenarios, sc.Name)
				continue
			}
		}

		if err := ex.runScenario(ctx, sc, execCtx, result); err != nil {
			result.Errors = append(result.Errors, err.Error())
			result.Duration = time.Since(start)
			return result, err
		}
		result.ExecutedScenarios = append(result.ExecutedScenarios, sc.Name)
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result, nil
}

// shouldRunDependency applies execute_dependency first (a static opt-out
// that never touches the page), then the edge's guard/skip_if.
func (ex *Executor) shouldRunDependency(ctx context.Context, edge scenario.DependencyEdge, execCtx *Context) bool {
	if !edge.ExecuteDependency {
		return false
	}
	guardOK := ex.EvaluateGuard(ctx, edge.Guard, execCtx)
	if edge.SkipIf {
		return !guardOK
	}
	return guardOK
}

// runScenario replays one scenario's action list in order, substituting
// parameters per action and binding any extract outputs back into execCtx.
func (ex *Executor) runScenario(ctx context.Context, sc scenario.Scenario, execCtx *Context, result *Result) error {
	for _, a := range sc.Actions {
		substituted, err := substituteAction(a, execCtx)
		if err != nil {
			return actionError(a, err)
		}

		extracted, err := ex.runAction(ctx, substituted, execCtx)
		if err != nil {
			return err
		}

		if a.Kind == scenario.KindExtract && extracted != nil {
			data, err := substituted.ExtractDataValue()
			if err == nil && data.OutputName != "" {
				execCtx.SetOutput(sc.Name, data.OutputName, extracted)
				result.Outputs[sc.Name+"."+data.OutputName] = extracted
				result.Outputs[data.OutputName] = extracted
			}
		}
	}
	return nil
}
