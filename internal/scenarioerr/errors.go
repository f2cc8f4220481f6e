// Package scenarioerr defines the error taxonomy shared by store, executor
// and the MCP tool layer: a Kind, a snake_case Code, a message, and an
// optional diagnostic payload for playback failures.
package scenarioerr

import (
	"encoding/json"
	"fmt"
)

// Kind classifies an Error into one of the five categories core operations
// can produce.
type Kind string

const (
	KindReferential Kind = "referential"
	KindValidation  Kind = "validation"
	KindPlayback    Kind = "playback"
	KindEnvironment Kind = "environment"
	KindStorage     Kind = "storage"
)

const (
	CodeScenarioNotFound   = "scenario_not_found"
	CodeScenarioExists     = "scenario_exists"
	CodeDependencyNotFound = "dependency_not_found"
	CodeDependencyCycle    = "dependency_cycle"
	CodeParamRequired      = "param_required"
	CodeInvalidScenario    = "invalid_scenario"
	CodeInvalidName        = "invalid_name"
	CodeImportMalformed    = "import_malformed"
	CodeInvalidParam       = "invalid_param"
	CodeActionFailed       = "action_failed"
	CodeGuardFailed        = "guard_failed"
	CodeDriverError        = "driver_error"
	CodeIOFailed           = "io_failed"
)

// Error is the structured error type propagated from the core packages up
// to the MCP tool layer, where it renders as internal/mcp's StructuredError
// JSON shape.
type Error struct {
	Kind       Kind           `json:"kind"`
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Diagnostic json.RawMessage `json:"diagnostic,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an Error with no diagnostic payload.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, code, format string, args ...any) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDiagnostic attaches a marshaled diagnostic payload (used by the
// executor's playback failures to embed the attempt-by-attempt history and
// suggestion list).
func (e *Error) WithDiagnostic(v any) *Error {
	data, err := json.Marshal(v)
	if err != nil {
		return e
	}
	e.Diagnostic = data
	return e
}

// Retryable reports whether the LLM-facing caller should retry this error
// without changing its request. Only transient storage I/O is retryable;
// everything else requires the caller to change input or page state.
func (e *Error) Retryable() bool {
	return e.Kind == KindStorage && e.Code == CodeIOFailed
}
