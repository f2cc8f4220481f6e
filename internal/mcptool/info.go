// info.go — get-scenario-info, delete-scenario.
package mcptool

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
)

type scenarioInfoRequest struct {
	Name           string `json:"name"`
	IncludeSecrets bool   `json:"include_secrets"`
}

type scenarioInfoResponse struct {
	scenario.Scenario
	Secrets *scenario.SecretsRecord `json:"secrets,omitempty"`
}

func registerGetScenarioInfo(srv *sdkmcp.Server, deps *Deps) {
	tool := &sdkmcp.Tool{
		Name:        "get-scenario-info",
		Description: "Fetch a stored scenario's full document: actions, parameters, outputs, dependencies and metadata. Optionally includes its detached secret values.",
		InputSchema: inputSchema(map[string]any{
			"name":            stringProp("Scenario name"),
			"include_secrets": boolProp("Include the scenario's secret parameter values (default false)"),
		}, []string{"name"}),
	}
	addTool(srv, tool, deps, func(ctx context.Context, args json.RawMessage) (any, error) {
		var req scenarioInfoRequest
		if err := decodeArgs(args, &req); err != nil {
			return nil, scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "malformed arguments: %v", err)
		}
		if req.Name == "" {
			return nil, scenarioerr.New(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "name is required")
		}
		sc, secrets, err := deps.Store.Load(req.Name, req.IncludeSecrets)
		if err != nil {
			return nil, err
		}
		return scenarioInfoResponse{Scenario: sc, Secrets: secrets}, nil
	})
}

func registerDeleteScenario(srv *sdkmcp.Server, deps *Deps) {
	tool := &sdkmcp.Tool{
		Name:        "delete-scenario",
		Description: "Delete a stored scenario, its secrets file if any, and its index entry.",
		InputSchema: inputSchema(map[string]any{
			"name": stringProp("Scenario name"),
		}, []string{"name"}),
	}
	addTool(srv, tool, deps, func(ctx context.Context, args json.RawMessage) (any, error) {
		var req struct {
			Name string `json:"name"`
		}
		if err := decodeArgs(args, &req); err != nil {
			return nil, scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "malformed arguments: %v", err)
		}
		if req.Name == "" {
			return nil, scenarioerr.New(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "name is required")
		}
		if err := deps.Store.Delete(req.Name); err != nil {
			return nil, err
		}
		return struct {
			Success bool `json:"success"`
		}{true}, nil
	})
}
