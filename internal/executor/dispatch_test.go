package executor

import (
	"context"
	"testing"

	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

func TestDispatchClick_NoSettlementWithoutRequiresWait(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	ex := newTestExecutor(d)
	a, _ := scenario.NewAction(scenario.KindClick, &scenario.Selector{Primary: "#btn"}, 0, scenario.ClickData{})
	if _, err := ex.dispatch(context.Background(), a, NewContext(nil)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(d.Calls) != 1 || d.Calls[0] != "click:#btn" {
		t.Fatalf("unexpected calls: %v", d.Calls)
	}
}

func TestDispatchType_RejectsNonEditableTarget(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	ex := newTestExecutor(d)
	a, _ := scenario.NewAction(scenario.KindType, &scenario.Selector{Primary: "#label"}, 0, scenario.TypeData{Text: "hi"})
	if _, err := ex.dispatch(context.Background(), a, NewContext(nil)); err == nil {
		t.Fatalf("expected error: isEditable probe returns false by default (unmatched eval -> {})")
	}
}

func TestDispatchType_SucceedsWhenEditable(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	sel := "#email"
	script := `(() => {
  const el = document.querySelector(` + jsonQuote(sel) + `);
  if (!el) return false;
  const tag = el.tagName.toLowerCase();
  return tag === 'input' || tag === 'textarea' || el.isContentEditable === true;
})()`
	d.EvalResults[script] = []byte("true")
	ex := newTestExecutor(d)
	a, _ := scenario.NewAction(scenario.KindType, &scenario.Selector{Primary: sel}, 0, scenario.TypeData{Text: "me@example.com"})
	if _, err := ex.dispatch(context.Background(), a, NewContext(nil)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
}

func TestDispatchWait_DurationMode(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	ex := newTestExecutor(d)
	a, _ := scenario.NewAction(scenario.KindWait, nil, 0, scenario.WaitData{Mode: scenario.WaitModeDuration, Ms: 1})
	if _, err := ex.dispatch(context.Background(), a, NewContext(nil)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
}

func TestDispatchExtract_ReturnsTextContent(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	sel := "#price"
	script := `(() => {
  const el = document.querySelector(` + jsonQuote(sel) + `);
  if (!el) return null;
  return el.textContent ? el.textContent.trim() : '';
})()`
	d.EvalResults[script] = []byte(`"$9.99"`)
	ex := newTestExecutor(d)
	a, _ := scenario.NewAction(scenario.KindExtract, &scenario.Selector{Primary: sel}, 0, scenario.ExtractData{OutputName: "price"})
	value, err := ex.dispatch(context.Background(), a, NewContext(nil))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if value != "$9.99" {
		t.Fatalf("got %v", value)
	}
}

func TestDispatchNavigate_CallsDriver(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	ex := newTestExecutor(d)
	a, _ := scenario.NewAction(scenario.KindNavigate, nil, 0, scenario.NavigateData{URL: "https://example.com"})
	if _, err := ex.dispatch(context.Background(), a, NewContext(nil)); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if d.CurrentURL != "https://example.com" {
		t.Fatalf("got url %q", d.CurrentURL)
	}
}

func TestDispatchClick_MissingSelectorFails(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	d.MissingSelectors["#gone"] = true
	ex := newTestExecutor(d)
	a, _ := scenario.NewAction(scenario.KindClick, &scenario.Selector{Primary: "#gone"}, 0, scenario.ClickData{})
	if _, err := ex.dispatch(context.Background(), a, NewContext(nil)); err == nil {
		t.Fatalf("expected error for missing selector")
	}
}
