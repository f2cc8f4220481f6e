// execute.go — execute-scenario. Resolves and runs a scenario's dependency
// chain against the live page driver. A failed run still sets isError on
// the envelope, but the body always carries the executor.Result
// (executed/skipped scenarios, partial outputs) alongside the structured
// error, so a caller can plan recovery from one response.
package mcptool

import (
	"context"
	"encoding/json"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scenariomcp/scenariomcp/internal/executor"
	"github.com/scenariomcp/scenariomcp/internal/mcp"
	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
)

type executeScenarioRequest struct {
	Name                string         `json:"name"`
	Parameters          map[string]any `json:"parameters"`
	ExecuteDependencies *bool          `json:"execute_dependencies"`
}

// executeScenarioResponse is the body attached on both success and failure;
// on failure Error is populated and the envelope's isError is set.
type executeScenarioResponse struct {
	Success           bool           `json:"success"`
	ExecutedScenarios []string       `json:"executed_scenarios"`
	SkippedScenarios  []string       `json:"skipped_scenarios,omitempty"`
	Outputs           map[string]any `json:"outputs"`
	Errors            []string       `json:"errors,omitempty"`
	DurationMs        int64          `json:"duration_ms"`
	Error             *execErrorInfo `json:"error,omitempty"`
}

type execErrorInfo struct {
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	Retry      string          `json:"retry"`
	Retryable  bool            `json:"retryable"`
	Diagnostic json.RawMessage `json:"diagnostic,omitempty"`
}

func registerExecuteScenario(srv *sdkmcp.Server, deps *Deps) {
	tool := &sdkmcp.Tool{
		Name:        "execute-scenario",
		Description: "Resolve a scenario's dependency chain and replay it against the active page, substituting the given parameters.",
		InputSchema: inputSchema(map[string]any{
			"name":                 stringProp("Scenario name"),
			"parameters":           objectProp("Parameter values keyed by parameter name"),
			"execute_dependencies": boolProp("Run dependency scenarios as well as the requested one (default true). When false, the chain is still validated but dependencies are not replayed."),
		}, []string{"name"}),
	}
	srv.AddTool(tool, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		ctx, cancel := context.WithTimeout(ctx, toolTimeout(tool.Name))
		defer cancel()

		var args executeScenarioRequest
		if err := decodeArgs(req.Params.Arguments, &args); err != nil {
			return errorResult(deps, scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "malformed arguments: %v", err)), nil
		}
		if args.Name == "" {
			return errorResult(deps, scenarioerr.New(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "name is required")), nil
		}

		runDeps := args.ExecuteDependencies == nil || *args.ExecuteDependencies
		var (
			result  *executor.Result
			execErr error
		)
		if runDeps {
			result, execErr = deps.Executor.Execute(ctx, args.Name, args.Parameters)
		} else {
			result, execErr = deps.Executor.ExecuteOnly(ctx, args.Name, args.Parameters)
		}

		resp := executeScenarioResponse{
			Success:           result.Success,
			ExecutedScenarios: result.ExecutedScenarios,
			SkippedScenarios:  result.SkippedScenarios,
			Outputs:           result.Outputs,
			Errors:            result.Errors,
			DurationMs:        result.Duration.Milliseconds(),
		}
		if execErr == nil {
			raw := mcp.JSONResponse("", resp)
			return resultFromEnvelope(deps, raw), nil
		}

		var se *scenarioerr.Error
		if errors.As(execErr, &se) {
			resp.Error = &execErrorInfo{
				Code:       codeForKind(se.Kind),
				Message:    se.Message,
				Retry:      retryHints[se.Kind],
				Retryable:  se.Retryable(),
				Diagnostic: se.Diagnostic,
			}
		} else {
			resp.Error = &execErrorInfo{Code: codeInternal, Message: execErr.Error()}
		}
		raw := mcp.JSONErrorResponse("", resp)
		return resultFromEnvelope(deps, raw), nil
	})
}
