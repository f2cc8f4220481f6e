// recorder.go — enable-recorder. Starts the in-page recorder, wiring its
// widget-triggered stop straight into the optimiser and the store so a
// recording saved from the page survives without another round trip
// through the calling LLM. The in-page script and host process share no
// memory, so Bridge.OnSaved is the only handoff channel.
package mcptool

import (
	"context"
	"encoding/json"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/scenariomcp/scenariomcp/internal/optimiser"
	"github.com/scenariomcp/scenariomcp/internal/recorder"
	"github.com/scenariomcp/scenariomcp/internal/scenario"
	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
)

func registerEnableRecorder(srv *sdkmcp.Server, deps *Deps) {
	tool := &sdkmcp.Tool{
		Name:        "enable-recorder",
		Description: "Inject the in-page recorder widget into the active page and start capturing actions. Saving from the widget persists the scenario automatically.",
		InputSchema: inputSchema(nil, nil),
	}
	addTool(srv, tool, deps, func(ctx context.Context, args json.RawMessage) (any, error) {
		return deps.enableRecorder(ctx)
	})
}

func (d *Deps) enableRecorder(ctx context.Context) (any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.active != nil {
		return struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}{true, "recorder already enabled"}, nil
	}

	if d.Driver == nil {
		return nil, scenarioerr.New(scenarioerr.KindEnvironment, scenarioerr.CodeDriverError, "no active page driver configured")
	}

	session := recorder.NewSession()
	bridge := recorder.NewBridge(d.Driver, session)
	bridge.OnSaved = func(sc scenario.Scenario, rec scenario.SecretsRecord) {
		sc.Actions = optimiser.Optimise(sc.Actions)
		_ = d.Store.Save(sc, &rec)
	}

	if err := bridge.Inject(ctx); err != nil {
		return nil, scenarioerr.Newf(scenarioerr.KindEnvironment, scenarioerr.CodeDriverError, "enable recorder: %v", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	d.active = &liveRecording{session: session, bridge: bridge, cancel: cancel}

	reinjector := recorder.NewReinjector(bridge)
	go func() {
		_ = reinjector.Run(runCtx)
	}()

	return struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}{true, "recorder enabled"}, nil
}
