// importexport.go — import-scenario, export-scenario.
package mcptool

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
	"github.com/scenariomcp/scenariomcp/internal/store"
)

func registerImportScenario(srv *sdkmcp.Server, deps *Deps) {
	tool := &sdkmcp.Tool{
		Name:        "import-scenario",
		Description: "Import a serialised scenario document (JSON or YAML, as produced by export-scenario) and save it.",
		InputSchema: inputSchema(map[string]any{
			"text":      stringProp("Serialised scenario document"),
			"overwrite": boolProp("Replace an existing scenario with the same name (default false)"),
		}, []string{"text"}),
	}
	addTool(srv, tool, deps, func(ctx context.Context, args json.RawMessage) (any, error) {
		var req struct {
			Text      string `json:"text"`
			Overwrite bool   `json:"overwrite"`
		}
		if err := decodeArgs(args, &req); err != nil {
			return nil, scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "malformed arguments: %v", err)
		}
		if req.Text == "" {
			return nil, scenarioerr.New(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "text is required")
		}
		sc, err := deps.Store.Import(req.Text, req.Overwrite)
		if err != nil {
			return nil, err
		}
		return struct {
			Name    string `json:"name"`
			Success bool   `json:"success"`
		}{Name: sc.Name, Success: true}, nil
	})
}

func registerExportScenario(srv *sdkmcp.Server, deps *Deps) {
	tool := &sdkmcp.Tool{
		Name:        "export-scenario",
		Description: "Serialise a stored scenario (optionally with its secrets) as JSON or YAML, suitable for import-scenario on another store.",
		InputSchema: inputSchema(map[string]any{
			"name":            stringProp("Scenario name"),
			"include_secrets": boolProp("Include the scenario's secret parameter values (default false)"),
			"format":          map[string]any{"type": "string", "enum": []any{"json", "yaml"}, "description": "Output format (default json)"},
		}, []string{"name"}),
	}
	addTool(srv, tool, deps, func(ctx context.Context, args json.RawMessage) (any, error) {
		var req struct {
			Name           string `json:"name"`
			IncludeSecrets bool   `json:"include_secrets"`
			Format         string `json:"format"`
		}
		if err := decodeArgs(args, &req); err != nil {
			return nil, scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "malformed arguments: %v", err)
		}
		if req.Name == "" {
			return nil, scenarioerr.New(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "name is required")
		}
		text, err := deps.Store.Export(req.Name, req.IncludeSecrets, store.Format(req.Format))
		if err != nil {
			return nil, err
		}
		return struct {
			Text string `json:"text"`
		}{Text: text}, nil
	})
}
