// retry.go — Attempt budget, fallback-selector promotion and smart-find
// recovery wrapped around a single action dispatch.
package executor

import (
	"context"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
	"github.com/scenariomcp/scenariomcp/internal/selector"
)

// runAction dispatches a (not yet substituted) action up to the configured
// retry budget, promoting fallback selectors and falling back to the smart
// finder between attempts. It mutates a's Selector in place as recovery
// promotes candidates; callers pass a clone, never the stored scenario's
// own action.
func (ex *Executor) runAction(ctx context.Context, a scenario.Action, execCtx *Context) (any, error) {
	maxAttempts := ex.cfg.MaxRetries
	var attempts []AttemptRecord

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		extracted, err := ex.dispatch(ctx, a, execCtx)
		if err == nil {
			return extracted, nil
		}

		sel := ""
		if a.Selector != nil {
			sel = a.Selector.Primary
		}
		attempts = append(attempts, AttemptRecord{Attempt: attempt, Selector: sel, Error: err.Error()})

		if attempt == maxAttempts {
			break
		}

		ex.recover(ctx, &a)
		waitFixed(ctx, ex.cfg.RetryDelay)
	}

	return nil, ex.buildFailure(ctx, a, attempts)
}

// recover mutates a's selector in place, trying a fallback promotion first
// and the smart finder second. Either, neither, or both may apply across
// the lifetime of a single action's retries.
func (ex *Executor) recover(ctx context.Context, a *scenario.Action) {
	if a.Selector == nil {
		return
	}

	if len(a.Selector.Fallbacks) > 0 {
		if unique, err := selector.FirstUnique(ctx, ex.driver, a.Selector.Fallbacks); err == nil && unique != "" {
			promoteTo(a.Selector, unique)
			return
		}
		a.Selector.PromoteFallback()
		return
	}

	text := a.Selector.ElementInfo.Text
	if text == "" {
		return
	}

	candidates, err := findFunc(ctx, ex.driver, text, 3)
	if err != nil || len(candidates) == 0 {
		return
	}

	selectors := make([]string, len(candidates))
	for i, c := range candidates {
		selectors[i] = c.Selector
	}
	picked, err := selector.FirstUnique(ctx, ex.driver, selectors)
	if err != nil || picked == "" {
		picked = selectors[0]
		selectors = selectors[1:]
	} else {
		for i, s := range selectors {
			if s == picked {
				selectors = append(selectors[:i], selectors[i+1:]...)
				break
			}
		}
	}

	a.Selector.Primary = picked
	a.Selector.Fallbacks = selectors
}

// promoteTo makes selected the primary selector and drops it from fallbacks,
// keeping the remaining fallback order intact.
func promoteTo(s *scenario.Selector, selected string) {
	s.Primary = selected
	out := make([]string, 0, len(s.Fallbacks))
	for _, f := range s.Fallbacks {
		if f != selected {
			out = append(out, f)
		}
	}
	s.Fallbacks = out
}

func (ex *Executor) buildFailure(ctx context.Context, a scenario.Action, attempts []AttemptRecord) error {
	sel := ""
	if a.Selector != nil {
		sel = a.Selector.Primary
	}
	pc := ex.capturePageContext(ctx, sel)
	diag := Diagnostic{
		Attempts:    attempts,
		PageContext: pc,
		Suggestions: buildSuggestions(pc),
	}

	return scenarioerr.Newf(scenarioerr.KindPlayback, scenarioerr.CodeActionFailed,
		"%s action failed after %d attempt(s): %s", a.Kind, len(attempts), formatAttempts(attempts)).
		WithDiagnostic(diag)
}
