// reinject.go — Reinjector: watches for page navigation and reinstalls the
// recorder script so a navigation-driven reload never interrupts an
// in-progress recording. The in-page script's own idempotence guard
// (InjectScript's `alive` check) means a redundant reinject is a no-op.
package recorder

import (
	"context"
	"time"
)

// Reinjector polls page liveness on an interval and reinjects whenever the
// recorder instance is missing (a real navigation or reload clears window
// state, so IsAliveScript flips back to false).
type Reinjector struct {
	bridge   *Bridge
	interval time.Duration
}

// NewReinjector returns a Reinjector with a sensible default poll interval.
func NewReinjector(bridge *Bridge) *Reinjector {
	return &Reinjector{bridge: bridge, interval: 500 * time.Millisecond}
}

// Run blocks, polling for liveness and event drains until ctx is done.
func (r *Reinjector) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	if err := r.bridge.Inject(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			alive, err := r.bridge.Alive(ctx)
			if err != nil {
				continue // transient eval failure (e.g. mid-navigation); retry next tick
			}
			if !alive {
				if err := r.bridge.Inject(ctx); err != nil {
					continue
				}
			}
			if _, err := r.bridge.Poll(ctx); err != nil {
				continue
			}
		}
	}
}
