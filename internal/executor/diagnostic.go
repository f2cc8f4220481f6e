// diagnostic.go — Structured page-context capture on final retry
// exhaustion: the design's primary contract for a calling agent that wants
// to plan its own recovery rather than just see "action failed".
package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// AttemptRecord is one entry in an action's attempt-by-attempt history.
type AttemptRecord struct {
	Attempt  int    `json:"attempt"`
	Selector string `json:"selector"`
	Error    string `json:"error"`
}

// PageContext is the structured snapshot captured once retries are
// exhausted: enough for a caller to diagnose *why* the selector failed
// without re-running the scenario.
type PageContext struct {
	URL              string  `json:"url"`
	Title            string  `json:"title"`
	SelectorResolves bool    `json:"selector_resolves"`
	Visible          bool    `json:"visible,omitempty"`
	Width            float64 `json:"width,omitempty"`
	Height           float64 `json:"height,omitempty"`
	Display          string  `json:"display,omitempty"`
	Visibility       string  `json:"visibility,omitempty"`
	Opacity          string  `json:"opacity,omitempty"`
	PointerEvents    string  `json:"pointer_events,omitempty"`
	Disabled         bool    `json:"disabled,omitempty"`
	ReadOnly         bool    `json:"read_only,omitempty"`
	BoundingBox      []float64 `json:"bounding_box,omitempty"` // x, y, width, height
	DocumentReady    string  `json:"document_ready"`
	HasOverlay       bool    `json:"has_overlay"`
	ActiveElementTag string  `json:"active_element_tag,omitempty"`
}

// Diagnostic is the full structured failure payload attached to a
// playback error.
type Diagnostic struct {
	Attempts    []AttemptRecord `json:"attempts"`
	PageContext PageContext     `json:"page_context"`
	Suggestions []string        `json:"suggestions"`
}

func (ex *Executor) capturePageContext(ctx context.Context, selector string) PageContext {
	url, _ := ex.driver.URL(ctx)
	title, _ := ex.driver.Title(ctx)
	pc := PageContext{URL: url, Title: title}

	raw, err := ex.driver.Eval(ctx, pageContextScript(selector))
	if err != nil {
		pc.DocumentReady = "unknown"
		return pc
	}

	var probe struct {
		Resolves      bool      `json:"resolves"`
		Visible       bool      `json:"visible"`
		Width         float64   `json:"width"`
		Height        float64   `json:"height"`
		Display       string    `json:"display"`
		Visibility    string    `json:"visibility"`
		Opacity       string    `json:"opacity"`
		PointerEvents string    `json:"pointer_events"`
		Disabled      bool      `json:"disabled"`
		ReadOnly      bool      `json:"read_only"`
		BoundingBox   []float64 `json:"bounding_box"`
		DocumentReady string    `json:"document_ready"`
		HasOverlay    bool      `json:"has_overlay"`
		ActiveTag     string    `json:"active_tag"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		pc.DocumentReady = "unknown"
		return pc
	}

	pc.SelectorResolves = probe.Resolves
	pc.Visible = probe.Visible
	pc.Width = probe.Width
	pc.Height = probe.Height
	pc.Display = probe.Display
	pc.Visibility = probe.Visibility
	pc.Opacity = probe.Opacity
	pc.PointerEvents = probe.PointerEvents
	pc.Disabled = probe.Disabled
	pc.ReadOnly = probe.ReadOnly
	pc.BoundingBox = probe.BoundingBox
	pc.DocumentReady = probe.DocumentReady
	pc.HasOverlay = probe.HasOverlay
	pc.ActiveElementTag = probe.ActiveTag
	return pc
}

func pageContextScript(selector string) string {
	return `(() => {
  const el = document.querySelector(` + jsonQuote(selector) + `);
  const active = document.activeElement;
  const out = {
    resolves: !!el,
    document_ready: document.readyState,
    has_overlay: !!document.querySelector('[class*="modal"], [class*="overlay"], [role="dialog"]'),
    active_tag: active ? active.tagName.toLowerCase() : '',
  };
  if (el) {
    const r = el.getBoundingClientRect();
    const style = getComputedStyle(el);
    out.visible = r.width > 0 && r.height > 0 && style.visibility !== 'hidden' && style.display !== 'none';
    out.width = r.width;
    out.height = r.height;
    out.display = style.display;
    out.visibility = style.visibility;
    out.opacity = style.opacity;
    out.pointer_events = style.pointerEvents;
    out.disabled = !!el.disabled;
    out.read_only = !!el.readOnly;
    out.bounding_box = [r.x, r.y, r.width, r.height];
  }
  return out;
})()`
}

// buildSuggestions derives a prioritised, human-readable suggestion list
// from the captured page context, mirroring the design's fixed vocabulary
// of diagnoses.
func buildSuggestions(pc PageContext) []string {
	var out []string
	switch {
	case !pc.SelectorResolves:
		out = append(out, "element might be dynamically added, or the selector no longer matches any node")
	case !pc.Visible:
		out = append(out, "wait for element to become visible")
	case pc.Disabled:
		out = append(out, "element is disabled")
	case pc.ReadOnly:
		out = append(out, "element is read-only")
	case pc.PointerEvents == "none":
		out = append(out, "overlay may be intercepting pointer events")
	}
	if pc.HasOverlay {
		out = append(out, "overlay may be intercepting pointer events")
	}
	if pc.DocumentReady != "complete" {
		out = append(out, "page may still be loading")
	}
	return dedupe(out)
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func formatAttempts(attempts []AttemptRecord) string {
	parts := make([]string, len(attempts))
	for i, a := range attempts {
		parts[i] = fmt.Sprintf("attempt %d (selector %q): %s", a.Attempt, a.Selector, a.Error)
	}
	return strings.Join(parts, "; ")
}
