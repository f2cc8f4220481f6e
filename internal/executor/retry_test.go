package executor

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/scenariomcp/scenariomcp/internal/finder"
	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
	"github.com/scenariomcp/scenariomcp/internal/scenario"
	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
	"github.com/scenariomcp/scenariomcp/internal/selector"
)

func TestRunAction_PromotesFallbackAfterFailure(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	d.MissingSelectors["#old"] = true

	ex := newTestExecutor(d)
	ex.cfg.RetryDelay = time.Millisecond

	a, _ := scenario.NewAction(scenario.KindClick, &scenario.Selector{
		Primary:   "#old",
		Fallbacks: []string{"#new"},
	}, 0, scenario.ClickData{})

	_, err := ex.runAction(context.Background(), a, NewContext(nil))
	if err != nil {
		t.Fatalf("expected fallback promotion to recover, got %v", err)
	}

	foundOld, foundNew := false, false
	for _, c := range d.Calls {
		if c == "click:#old" {
			foundOld = true
		}
		if c == "click:#new" {
			foundNew = true
		}
	}
	if !foundOld || !foundNew {
		t.Fatalf("expected both #old and #new clicks, got %v", d.Calls)
	}
}

func TestRunAction_SkipsAmbiguousFallbackForUniqueOne(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	d.MissingSelectors["#old"] = true
	// "#ambiguous" resolves to more than one node live; "#unique" resolves
	// to exactly one. Recovery should skip the ambiguous candidate even
	// though it is listed first.
	d.EvalResults[selector.VerifyUniqueScript("#ambiguous")] = json.RawMessage(`false`)
	d.EvalResults[selector.VerifyUniqueScript("#unique")] = json.RawMessage(`true`)

	ex := newTestExecutor(d)
	ex.cfg.RetryDelay = time.Millisecond

	a, _ := scenario.NewAction(scenario.KindClick, &scenario.Selector{
		Primary:   "#old",
		Fallbacks: []string{"#ambiguous", "#unique"},
	}, 0, scenario.ClickData{})

	_, err := ex.runAction(context.Background(), a, NewContext(nil))
	if err != nil {
		t.Fatalf("expected recovery via the verified-unique fallback, got %v", err)
	}

	foundAmbiguous, foundUnique := false, false
	for _, c := range d.Calls {
		if c == "click:#ambiguous" {
			foundAmbiguous = true
		}
		if c == "click:#unique" {
			foundUnique = true
		}
	}
	if foundAmbiguous {
		t.Fatalf("did not expect a click on the ambiguous selector, got %v", d.Calls)
	}
	if !foundUnique {
		t.Fatalf("expected a click on the verified-unique selector, got %v", d.Calls)
	}
}

func TestRunAction_SmartFindRecoversWhenNoFallback(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	d.MissingSelectors["#stale"] = true

	ex := newTestExecutor(d)
	ex.cfg.RetryDelay = time.Millisecond

	origFind := findFunc
	defer func() { findFunc = origFind }()
	findFunc = func(ctx context.Context, drv pagedriver.Driver, description string, maxResults int) ([]finder.Candidate, error) {
		return []finder.Candidate{{Selector: "#recovered"}}, nil
	}

	a, _ := scenario.NewAction(scenario.KindClick, &scenario.Selector{
		Primary:     "#stale",
		ElementInfo: scenario.ElementInfo{Text: "Submit"},
	}, 0, scenario.ClickData{})

	_, err := ex.runAction(context.Background(), a, NewContext(nil))
	if err != nil {
		t.Fatalf("expected smart-find recovery, got %v", err)
	}

	found := false
	for _, c := range d.Calls {
		if c == "click:#recovered" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected click on recovered selector, got %v", d.Calls)
	}
}

func TestRunAction_ExhaustsRetriesAndBuildsDiagnostic(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	d.MissingSelectors["#gone"] = true
	d.CurrentURL = "https://example.com"

	ex := newTestExecutor(d)
	ex.cfg.RetryDelay = time.Millisecond
	ex.cfg.MaxRetries = 2

	a, _ := scenario.NewAction(scenario.KindClick, &scenario.Selector{Primary: "#gone"}, 0, scenario.ClickData{})

	_, err := ex.runAction(context.Background(), a, NewContext(nil))
	if err == nil {
		t.Fatalf("expected failure after exhausting retries")
	}
	scErr, ok := err.(*scenarioerr.Error)
	if !ok {
		t.Fatalf("expected *scenarioerr.Error, got %T", err)
	}
	if scErr.Kind != scenarioerr.KindPlayback {
		t.Fatalf("expected playback kind, got %v", scErr.Kind)
	}
	if len(scErr.Diagnostic) == 0 {
		t.Fatalf("expected diagnostic payload attached")
	}
	var diag Diagnostic
	if err := json.Unmarshal(scErr.Diagnostic, &diag); err != nil {
		t.Fatalf("decode diagnostic: %v", err)
	}
	if len(diag.Attempts) != 2 {
		t.Fatalf("expected 2 attempts recorded, got %d", len(diag.Attempts))
	}
	if len(diag.Suggestions) == 0 {
		t.Fatalf("expected at least one suggestion")
	}
}
