// register.go — Register wires every tool handler onto an mcp.Server.
// The per-tool registration shape (decode args, run an endpoint closure,
// marshal the result) is generalised from the RegisterMCPTool/decode/endpoint
// split in hazyhaar-chrc/kit/transport_mcp.go and hazyhaar-chrc/domkeeper/mcp.go,
// adapted to scenarioerr instead of plain Go errors for the failure path.
package mcptool

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scenariomcp/scenariomcp/internal/mcp"
)

// Register installs every tool the server exposes.
func Register(srv *sdkmcp.Server, deps *Deps) {
	registerEnableRecorder(srv, deps)
	registerExecuteScenario(srv, deps)
	registerListScenarios(srv, deps)
	registerSearchScenarios(srv, deps)
	registerGetScenarioInfo(srv, deps)
	registerDeleteScenario(srv, deps)
	registerImportScenario(srv, deps)
	registerExportScenario(srv, deps)
	registerValidateScenarios(srv, deps)
	registerDiffScenarios(srv, deps)
}

// endpoint runs a decoded request and returns either a JSON-marshalable
// success value or an error (scenarioerr.Error or plain).
type endpoint func(ctx context.Context, args json.RawMessage) (any, error)

// addTool registers one tool, wrapping fn with argument logging-free
// decode/marshal plumbing. fn receives the tool call's raw arguments
// directly since each tool's own decode step differs only by which struct
// it unmarshals into.
func addTool(srv *sdkmcp.Server, tool *sdkmcp.Tool, deps *Deps, fn endpoint) {
	srv.AddTool(tool, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		ctx, cancel := context.WithTimeout(ctx, toolTimeout(tool.Name))
		defer cancel()
		resp, err := fn(ctx, req.Params.Arguments)
		if err != nil {
			return errorResult(deps, err), nil
		}
		raw := mcp.JSONResponse("", resp)
		return resultFromEnvelope(deps, raw), nil
	})
}

// resultFromEnvelope unwraps an internal/mcp MCPToolResult JSON envelope
// into the go-sdk CallToolResult shape the transport actually sends over
// the wire, scrubbing any secret-shaped text the deps' RedactionEngine
// recognises before it reaches the calling client.
func resultFromEnvelope(deps *Deps, raw json.RawMessage) *sdkmcp.CallToolResult {
	if deps != nil && deps.Redactor != nil {
		raw = deps.Redactor.RedactJSON(raw)
	}
	var wrapped mcp.MCPToolResult
	if err := json.Unmarshal(raw, &wrapped); err != nil || len(wrapped.Content) == 0 {
		return &sdkmcp.CallToolResult{
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(raw)}},
			IsError: true,
		}
	}
	content := make([]sdkmcp.Content, 0, len(wrapped.Content))
	for _, block := range wrapped.Content {
		content = append(content, &sdkmcp.TextContent{Text: block.Text})
	}
	return &sdkmcp.CallToolResult{Content: content, IsError: wrapped.IsError}
}

func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}
