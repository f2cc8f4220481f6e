// deps.go — Deps: everything the tool handlers need from the rest of the
// module. One Deps is built once in cmd/scenariomcp and shared by every
// registered tool.
package mcptool

import (
	"context"
	"sync"

	"github.com/scenariomcp/scenariomcp/internal/executor"
	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
	"github.com/scenariomcp/scenariomcp/internal/recorder"
	"github.com/scenariomcp/scenariomcp/internal/redaction"
	"github.com/scenariomcp/scenariomcp/internal/store"
)

// Deps wires the storage, execution and recording layers into the tool
// surface. The zero value is not usable; build with NewDeps.
type Deps struct {
	Store    *store.Store
	Executor *executor.Executor
	Driver   pagedriver.Driver
	Redactor *redaction.RedactionEngine

	mu     sync.Mutex
	active *liveRecording
}

// liveRecording tracks the one recorder session enable-recorder may have
// started, so a later call can tell it is already running and a crash or
// re-enable can cancel the old polling loop cleanly.
type liveRecording struct {
	session *recorder.Session
	bridge  *recorder.Bridge
	cancel  context.CancelFunc
}

// NewDeps builds a Deps over an already-initialised store, executor and
// page driver. redactConfigPath may be empty, in which case the redactor
// runs with its built-in patterns only.
func NewDeps(st *store.Store, ex *executor.Executor, driver pagedriver.Driver, redactConfigPath string) *Deps {
	return &Deps{Store: st, Executor: ex, Driver: driver, Redactor: redaction.NewRedactionEngine(redactConfigPath)}
}
