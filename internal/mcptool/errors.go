// errors.go — renders a scenarioerr.Error (or any other error) into an MCP
// tool error result, generalising internal/mcp's own StructuredError
// envelope from its original error-code table to scenarioerr's five Kinds.
package mcptool

import (
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scenariomcp/scenariomcp/internal/mcp"
	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
)

// Error codes surfaced to the calling LLM. One per scenarioerr.Kind plus a
// catch-all for errors that never went through scenarioerr.
const (
	codeReferential = "referential_error"
	codeValidation  = "invalid_param"
	codePlayback    = "playback_failed"
	codeEnvironment = "environment_error"
	codeStorage     = "storage_error"
	codeInternal    = "internal_error"
)

// retryHints gives each kind a plain-English instruction, since that is
// the part of StructuredError an LLM actually acts on.
var retryHints = map[scenarioerr.Kind]string{
	scenarioerr.KindReferential: "Check the scenario/dependency name and call again.",
	scenarioerr.KindValidation:  "Fix the reported parameter and call again.",
	scenarioerr.KindPlayback:    "Inspect the diagnostic field, adjust the page state, and retry.",
	scenarioerr.KindEnvironment: "Make sure a recorder/browser session is active, then retry.",
	scenarioerr.KindStorage:     "Transient storage error; retrying after a short delay may succeed.",
}

func codeForKind(k scenarioerr.Kind) string {
	switch k {
	case scenarioerr.KindReferential:
		return codeReferential
	case scenarioerr.KindValidation:
		return codeValidation
	case scenarioerr.KindPlayback:
		return codePlayback
	case scenarioerr.KindEnvironment:
		return codeEnvironment
	case scenarioerr.KindStorage:
		return codeStorage
	default:
		return codeInternal
	}
}

// errorResult turns err into an MCP tool error result carrying the
// internal/mcp StructuredError JSON as the text content.
func errorResult(deps *Deps, err error) *sdkmcp.CallToolResult {
	var se *scenarioerr.Error
	if errors.As(err, &se) {
		opts := []func(*mcp.StructuredError){mcp.WithRetryable(se.Retryable())}
		if len(se.Diagnostic) > 0 {
			opts = append(opts, mcp.WithHint(string(se.Diagnostic)))
		}
		raw := mcp.StructuredErrorResponse(codeForKind(se.Kind), se.Message, retryHints[se.Kind], opts...)
		return resultFromEnvelope(deps, raw)
	}
	raw := mcp.StructuredErrorResponse(codeInternal, err.Error(), "Retry is unlikely to help without changing the request.")
	return resultFromEnvelope(deps, raw)
}
