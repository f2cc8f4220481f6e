// timeout.go — per-tool call timeouts, generalising the fast/slow timeout
// classification in internal/bridge/timeout.go (ToolCallTimeout) from that
// package's tool names (analyze, interact, observe) to this server's own.
// execute-scenario and enable-recorder round-trip to a real browser tab and
// get the slow budget; every other tool only touches the local store.
package mcptool

import "time"

const (
	fastToolTimeout = 10 * time.Second
	slowToolTimeout = 2 * time.Minute
)

// toolTimeout returns the context deadline budget for a tool call by name.
func toolTimeout(name string) time.Duration {
	switch name {
	case "execute-scenario", "enable-recorder":
		return slowToolTimeout
	default:
		return fastToolTimeout
	}
}
