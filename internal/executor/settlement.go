// settlement.go — Post-click settlement: after a click whose requires_wait
// flag is set, wait for the page's own asynchrony to quiet down before the
// next action runs. Each sub-wait degrades gracefully on its own cap
// rather than failing the action; the overall wait still honours a hard
// minimum and the action's total timeout.
package executor

import (
	"context"
	"strconv"
	"time"
)

// settle blocks for at least the configured minimum, then polls the three
// settlement conditions (animation-free, network-idle, mutation-quiet) in
// sequence, each capped independently, until totalTimeout elapses or all
// three hold. totalTimeout <= 0 uses the configured default caps summed.
func (ex *Executor) settle(ctx context.Context) {
	ex.settleWithTimeout(ctx, 0)
}

func (ex *Executor) settleWithTimeout(ctx context.Context, totalTimeout time.Duration) {
	waitFixed(ctx, ex.cfg.SettlementMinWait)

	deadline := ex.cfg.AnimationCap + ex.cfg.NetworkIdleCap + ex.cfg.MutationQuietCap
	if totalTimeout > 0 && totalTimeout < deadline {
		deadline = totalTimeout
	}
	settleCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	ex.waitAnimationsSettled(settleCtx)
	ex.waitNetworkIdle(settleCtx)
	ex.waitMutationsQuiet(settleCtx)
}

func (ex *Executor) waitAnimationsSettled(ctx context.Context) {
	ex.pollUntilTrue(ctx, ex.cfg.AnimationCap, animationsSettledScript)
}

func (ex *Executor) waitNetworkIdle(ctx context.Context) {
	script := networkIdleScript(ex.cfg.NetworkIdleWindow)
	ex.pollUntilTrue(ctx, ex.cfg.NetworkIdleCap, script)
}

func (ex *Executor) waitMutationsQuiet(ctx context.Context) {
	script := mutationQuietScript(ex.cfg.MutationQuietWindow)
	ex.pollUntilTrue(ctx, ex.cfg.MutationQuietCap, script)
}

// pollUntilTrue evaluates script repeatedly (short backoff) until it
// returns true or cap elapses. Exceeding the cap is not an error: the
// executor proceeds regardless, per the soft-event contract.
func (ex *Executor) pollUntilTrue(ctx context.Context, cap time.Duration, script string) {
	deadline := time.Now().Add(cap)
	const pollInterval = 100 * time.Millisecond
	for {
		raw, err := ex.driver.Eval(ctx, script)
		if err == nil {
			var ok bool
			if jsonUnmarshalBool(raw, &ok) && ok {
				return
			}
		}
		if time.Now().After(deadline) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(pollInterval):
		}
	}
}

// animationsSettledScript reports whether no element currently has a
// running CSS animation or transition of non-trivial duration.
const animationsSettledScript = `(() => {
  const els = document.getAnimations ? document.getAnimations() : [];
  return els.every(a => a.playState !== 'running');
})()`

func networkIdleScript(window time.Duration) string {
	ms := window.Milliseconds()
	return `(() => {
  const nav = performance.getEntriesByType('resource');
  const now = performance.now();
  const recent = nav.filter(e => (now - (e.responseEnd || e.startTime)) < ` + msLiteral(ms) + `);
  return recent.length === 0;
})()`
}

func mutationQuietScript(window time.Duration) string {
	ms := window.Milliseconds()
	return `(() => {
  if (!window.__scenarioLastMutationAt) {
    window.__scenarioLastMutationAt = 0;
    const observer = new MutationObserver(() => { window.__scenarioLastMutationAt = Date.now(); });
    observer.observe(document.documentElement, { childList: true, subtree: true, attributes: true });
  }
  return (Date.now() - window.__scenarioLastMutationAt) >= ` + msLiteral(ms) + `;
})()`
}

func msLiteral(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	return strconv.FormatInt(ms, 10)
}
