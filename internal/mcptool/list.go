// list.go — list-scenarios, search-scenarios, validate-scenarios.
package mcptool

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
	"github.com/scenariomcp/scenariomcp/internal/store"
)

func registerListScenarios(srv *sdkmcp.Server, deps *Deps) {
	tool := &sdkmcp.Tool{
		Name:        "list-scenarios",
		Description: "List every stored scenario's index summary (name, version, description, tags, action count, dependencies).",
		InputSchema: inputSchema(nil, nil),
	}
	addTool(srv, tool, deps, func(ctx context.Context, args json.RawMessage) (any, error) {
		entries, err := deps.Store.List()
		return wrapOr(entries, err)
	})
}

// wrapOr is a thin helper so handlers that only need to return a slice (or
// an error) can do so in one expression without repeating the err != nil
// branch at every call site.
func wrapOr(v any, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func registerSearchScenarios(srv *sdkmcp.Server, deps *Deps) {
	tool := &sdkmcp.Tool{
		Name:        "search-scenarios",
		Description: "Search stored scenarios by free text (name/description substring) and/or tag intersection.",
		InputSchema: inputSchema(map[string]any{
			"text": stringProp("Substring to match against name/description"),
			"tags": stringArrayProp("Every tag must be present on a matching scenario"),
		}, nil),
	}
	addTool(srv, tool, deps, func(ctx context.Context, args json.RawMessage) (any, error) {
		var req struct {
			Text string   `json:"text"`
			Tags []string `json:"tags"`
		}
		if err := decodeArgs(args, &req); err != nil {
			return nil, scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidParam, "malformed arguments: %v", err)
		}
		entries, err := deps.Store.Search(store.SearchOptions{Text: req.Text, Tags: req.Tags})
		return wrapOr(entries, err)
	})
}

func registerValidateScenarios(srv *sdkmcp.Server, deps *Deps) {
	tool := &sdkmcp.Tool{
		Name:        "validate-scenarios",
		Description: "Reconcile the scenario index against disk: reports orphan files, missing files and broken dependency targets, repairing the index in place.",
		InputSchema: inputSchema(nil, nil),
	}
	addTool(srv, tool, deps, func(ctx context.Context, args json.RawMessage) (any, error) {
		report, err := deps.Store.Validate()
		return wrapOr(report, err)
	})
}
