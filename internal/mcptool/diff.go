// diff.go — diff-scenarios: a scenario-level analogue of
// DiffRecordings/LogDiffResult (internal/capture/log-diff.go), applied to
// two previously-captured executor.Result payloads for the same scenario
// instead of two recordings. Pure comparison, no execution of its own.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scenariomcp/scenariomcp/internal/executor"
	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
)

type diffScenariosRequest struct {
	ScenarioName string          `json:"scenario_name"`
	Before       json.RawMessage `json:"before"`
	After        json.RawMessage `json:"after"`
}

// ScenarioDiffResult mirrors LogDiffResult's status/new/fixed/changed
// shape, adapted from comparing two recordings to comparing two
// execute-scenario results of the same scenario.
type ScenarioDiffResult struct {
	ScenarioName  string        `json:"scenario_name"`
	Status        string        `json:"status"` // "match", "regression", "fixed", "changed"
	Summary       string        `json:"summary"`
	NewErrors     []string      `json:"new_errors,omitempty"`
	FixedErrors   []string      `json:"fixed_errors,omitempty"`
	ChangedValues []ValueChange `json:"changed_values,omitempty"`
}

// ValueChange names one output whose value differs between the two runs.
type ValueChange struct {
	Output string `json:"output"`
	Before string `json:"before"`
	After  string `json:"after"`
}

func registerDiffScenarios(srv *sdkmcp.Server, deps *Deps) {
	tool := &sdkmcp.Tool{
		Name:        "diff-scenarios",
		Description: "Compare two execute-scenario results for the same scenario (e.g. before/after a page change): new errors, fixed errors, and changed extracted-output values.",
		InputSchema: inputSchema(map[string]any{
			"scenario_name": stringProp("Name of the scenario both results belong to (informational only)"),
			"before":        objectProp("The earlier execute-scenario result"),
			"after":         objectProp("The later execute-scenario result"),
		}, []string{"before", "after"}),
	}
	addTool(srv, tool, deps, func(ctx context.Context, args json.RawMessage) (any, error) {
		var req diffScenariosRequest
		if err := decodeArgs(args, &req); err != nil {
			return nil, scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "malformed arguments: %v", err)
		}
		if len(req.Before) == 0 || len(req.After) == 0 {
			return nil, scenarioerr.New(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "before and after are required")
		}

		var before, after executor.Result
		if err := json.Unmarshal(req.Before, &before); err != nil {
			return nil, scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "before: %v", err)
		}
		if err := json.Unmarshal(req.After, &after); err != nil {
			return nil, scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "after: %v", err)
		}

		return diffResults(req.ScenarioName, before, after), nil
	})
}

func diffResults(name string, before, after executor.Result) ScenarioDiffResult {
	result := ScenarioDiffResult{ScenarioName: name}

	result.NewErrors = stringsMinus(after.Errors, before.Errors)
	result.FixedErrors = stringsMinus(before.Errors, after.Errors)
	result.ChangedValues = changedOutputs(before.Outputs, after.Outputs)

	switch {
	case len(result.NewErrors) > 0:
		result.Status = "regression"
		result.Summary = fmt.Sprintf("%d new error(s) since the earlier run", len(result.NewErrors))
	case len(result.FixedErrors) > 0:
		result.Status = "fixed"
		result.Summary = fmt.Sprintf("%d error(s) from the earlier run no longer occur", len(result.FixedErrors))
	case len(result.ChangedValues) > 0:
		result.Status = "changed"
		result.Summary = fmt.Sprintf("%d output value(s) changed", len(result.ChangedValues))
	default:
		result.Status = "match"
		result.Summary = "no differences detected"
	}
	return result
}

// stringsMinus returns entries of a not present in b, preserving a's order.
func stringsMinus(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, s := range b {
		in[s] = true
	}
	var out []string
	for _, s := range a {
		if !in[s] {
			out = append(out, s)
		}
	}
	return out
}

func changedOutputs(before, after map[string]any) []ValueChange {
	names := make(map[string]bool, len(before)+len(after))
	for k := range before {
		names[k] = true
	}
	for k := range after {
		names[k] = true
	}
	sorted := make([]string, 0, len(names))
	for k := range names {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var out []ValueChange
	for _, k := range sorted {
		bv, bok := before[k]
		av, aok := after[k]
		if bok && aok && fmt.Sprint(bv) == fmt.Sprint(av) {
			continue
		}
		out = append(out, ValueChange{Output: k, Before: renderValue(bv, bok), After: renderValue(av, aok)})
	}
	return out
}

func renderValue(v any, present bool) string {
	if !present {
		return "<absent>"
	}
	return fmt.Sprint(v)
}
