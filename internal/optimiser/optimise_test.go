package optimiser

import (
	"testing"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

func click(sel string, ts int64) scenario.Action {
	return scenario.Action{Kind: scenario.KindClick, Selector: &scenario.Selector{Primary: sel}, TimestampMs: ts}
}

func typeAction(sel, text string, ts int64) scenario.Action {
	a, _ := scenario.NewAction(scenario.KindType, &scenario.Selector{Primary: sel}, ts, scenario.TypeData{Text: text})
	return a
}

func waitAction(ms int64, ts int64) scenario.Action {
	a, _ := scenario.NewAction(scenario.KindWait, nil, ts, scenario.WaitData{Mode: scenario.WaitModeDuration, Ms: ms})
	return a
}

func scrollAction(x, y int, ts int64) scenario.Action {
	a, _ := scenario.NewAction(scenario.KindScroll, nil, ts, scenario.ScrollData{X: x, Y: y})
	return a
}

func hoverAction(sel string, ts int64) scenario.Action {
	return scenario.Action{Kind: scenario.KindHover, Selector: &scenario.Selector{Primary: sel}, TimestampMs: ts}
}

// ============================================
// pass 1: widget strip
// ============================================

func TestOptimise_StripsWidgetActions(t *testing.T) {
	t.Parallel()
	in := []scenario.Action{click("#__scenario_recorder_widget button", 1), click("#real", 2)}
	out := Optimise(in)
	if len(out) != 1 || out[0].Selector.Primary != "#real" {
		t.Fatalf("got %+v", out)
	}
}

// ============================================
// pass 2: coalesce types
// ============================================

func TestOptimise_CoalescesSequentialTypes(t *testing.T) {
	t.Parallel()
	in := []scenario.Action{typeAction("#q", "h", 1), typeAction("#q", "he", 2), typeAction("#q", "hello", 3)}
	out := Optimise(in)
	if len(out) != 1 {
		t.Fatalf("got %d actions, want 1", len(out))
	}
	d, _ := out[0].TypeDataValue()
	if d.Text != "hello" {
		t.Errorf("got %q, want hello (last value kept)", d.Text)
	}
}

// ============================================
// pass 3: custom select detection
// ============================================

func TestOptimise_DetectsCustomSelectPattern(t *testing.T) {
	t.Parallel()
	container := scenario.Action{Kind: scenario.KindClick, TimestampMs: 1, Selector: &scenario.Selector{Primary: ".dropdown", ElementInfo: scenario.ElementInfo{Classes: []string{"dropdown"}}}}
	option := scenario.Action{Kind: scenario.KindClick, TimestampMs: 2, Selector: &scenario.Selector{Primary: ".option-1", ElementInfo: scenario.ElementInfo{Classes: []string{"option"}}}}
	in := []scenario.Action{container, option}

	out := Optimise(in)
	if len(out) != 1 || out[0].Kind != scenario.KindSelect {
		t.Fatalf("got %+v, want a single select action", out)
	}
	d, err := out[0].SelectDataValue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Mode != scenario.SelectModeCustom || len(d.Steps) != 3 {
		t.Errorf("got %+v", d)
	}
}

// ============================================
// pass 4: duplicate clicks
// ============================================

func TestOptimise_RemovesDuplicateClicksWithin500ms(t *testing.T) {
	t.Parallel()
	in := []scenario.Action{click("#btn", 1000), click("#btn", 1200)}
	out := Optimise(in)
	if len(out) != 1 || out[0].TimestampMs != 1200 {
		t.Fatalf("got %+v, want only the later click kept", out)
	}
}

func TestOptimise_KeepsClicksFartherApart(t *testing.T) {
	t.Parallel()
	in := []scenario.Action{click("#btn", 1000), click("#btn", 3000)}
	out := Optimise(in)
	if len(out) != 2 {
		t.Fatalf("got %d, want 2 (clicks too far apart to merge)", len(out))
	}
}

// ============================================
// pass 5: merge waits
// ============================================

func TestOptimise_MergesSequentialWaits(t *testing.T) {
	t.Parallel()
	in := []scenario.Action{waitAction(100, 1), waitAction(200, 2), waitAction(50, 3)}
	out := Optimise(in)
	if len(out) != 1 {
		t.Fatalf("got %d, want 1", len(out))
	}
	d, _ := out[0].WaitDataValue()
	if d.Ms != 350 {
		t.Errorf("got %d, want 350", d.Ms)
	}
}

// ============================================
// pass 6: redundant scrolls
// ============================================

func TestOptimise_RemovesRedundantScrolls(t *testing.T) {
	t.Parallel()
	in := []scenario.Action{scrollAction(0, 100, 1), scrollAction(0, 500, 2)}
	out := Optimise(in)
	if len(out) != 1 {
		t.Fatalf("got %d, want 1", len(out))
	}
	d, _ := out[0].ScrollDataValue()
	if d.Y != 500 {
		t.Errorf("got %d, want 500 (final position kept)", d.Y)
	}
}

// ============================================
// pass 7: redundant hovers
// ============================================

func TestOptimise_DropsHoverFollowedByClickOnSameSelector(t *testing.T) {
	t.Parallel()
	in := []scenario.Action{hoverAction("#btn", 1), click("#btn", 2)}
	out := Optimise(in)
	if len(out) != 1 || out[0].Kind != scenario.KindClick {
		t.Fatalf("got %+v", out)
	}
}

func TestOptimise_DropsDuplicateConsecutiveHovers(t *testing.T) {
	t.Parallel()
	in := []scenario.Action{hoverAction("#a", 1), hoverAction("#a", 2), click("#b", 3)}
	out := Optimise(in)
	count := 0
	for _, a := range out {
		if a.Kind == scenario.KindHover {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d hovers, want 1", count)
	}
}

// ============================================
// Idempotence
// ============================================

func TestOptimise_IsIdempotent(t *testing.T) {
	t.Parallel()
	in := []scenario.Action{
		click("#a", 1000), click("#a", 1100),
		typeAction("#q", "h", 2000), typeAction("#q", "hi", 2100),
		waitAction(100, 2200), waitAction(200, 2300),
		scrollAction(0, 10, 2400), scrollAction(0, 20, 2500),
		hoverAction("#b", 2600), click("#b", 2700),
	}
	once := Optimise(in)
	twice := Optimise(once)
	if len(once) != len(twice) {
		t.Fatalf("not idempotent: once=%d twice=%d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Kind != twice[i].Kind {
			t.Errorf("action %d kind differs: %v vs %v", i, once[i].Kind, twice[i].Kind)
		}
	}
}
