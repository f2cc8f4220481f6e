package recorder

import (
	"context"
	"testing"

	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

// ============================================
// Poll / apply
// ============================================

func TestBridge_PollAppliesClickEvent(t *testing.T) {
	t.Parallel()
	d := pagedriver.NewFakeDriver()
	d.CurrentURL = "https://example.com"
	s := NewSession()
	_ = s.Start("https://example.com")

	queue := `[{"kind":"click","timestamp_ms":1,"selector":{"primary":"#btn","element_info":{"tag":"button"}}}]`
	d.EvalResults[DrainScript] = mustJSON(queue)

	b := NewBridge(d, s)
	n, err := b.Poll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d events, want 1", n)
	}

	sc, _, _ := s.StopAndSave("flow", "")
	if len(sc.Actions) != 1 || sc.Actions[0].Kind != scenario.KindClick {
		t.Errorf("got %+v", sc.Actions)
	}
}

func TestBridge_PollAppliesSecretInput(t *testing.T) {
	t.Parallel()
	d := pagedriver.NewFakeDriver()
	s := NewSession()
	_ = s.Start("https://example.com")

	queue := `[{"kind":"input","timestamp_ms":1,"selector":{"primary":"#pw"},"text":"hunter2","is_secret":true,"param_name":"password"}]`
	d.EvalResults[DrainScript] = mustJSON(queue)

	b := NewBridge(d, s)
	if _, err := b.Poll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sc, rec, _ := s.StopAndSave("login", "")
	data, err := sc.Actions[0].TypeDataValue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Text != "{{password}}" {
		t.Errorf("got %q, want placeholder", data.Text)
	}
	if rec.Values["password"] != "hunter2" {
		t.Errorf("secret value not captured: %+v", rec)
	}
}

func TestBridge_PollClassifiesSecretFromFormContext(t *testing.T) {
	t.Parallel()
	d := pagedriver.NewFakeDriver()
	s := NewSession()
	_ = s.Start("https://example.com")

	queue := `[{"kind":"input","timestamp_ms":1,"selector":{"primary":"#pw"},"text":"hunter2",` +
		`"form_context":{"form_id":"login-form","form_action":"","form_classes":[],` +
		`"form_aria_label":"","form_title":"","has_password_field":true,` +
		`"input_type":"password","input_name":"pw","input_id":"pw","input_placeholder":"",` +
		`"input_aria_label":"","input_autocomplete":"","max_length":0}}]`
	d.EvalResults[DrainScript] = mustJSON(queue)

	b := NewBridge(d, s)
	if _, err := b.Poll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sc, rec, _ := s.StopAndSave("login", "")
	data, err := sc.Actions[0].TypeDataValue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Text != "{{password}}" {
		t.Errorf("got %q, want placeholder derived from classified kind", data.Text)
	}
	if rec.Values["password"] != "hunter2" {
		t.Errorf("secret value not captured: %+v", rec)
	}
}

func TestBridge_PollLeavesNonAuthFormInputPlain(t *testing.T) {
	t.Parallel()
	d := pagedriver.NewFakeDriver()
	s := NewSession()
	_ = s.Start("https://example.com")

	queue := `[{"kind":"input","timestamp_ms":1,"selector":{"primary":"#q"},"text":"search terms",` +
		`"form_context":{"form_id":"search-form","form_action":"","form_classes":[],` +
		`"form_aria_label":"","form_title":"","has_password_field":false,` +
		`"input_type":"text","input_name":"q","input_id":"q","input_placeholder":"",` +
		`"input_aria_label":"","input_autocomplete":"","max_length":0}}]`
	d.EvalResults[DrainScript] = mustJSON(queue)

	b := NewBridge(d, s)
	if _, err := b.Poll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sc, _, _ := s.StopAndSave("search", "")
	data, err := sc.Actions[0].TypeDataValue()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Text != "search terms" {
		t.Errorf("got %q, want plain text for a non-authentication form", data.Text)
	}
}

func TestBridge_AliveDecodesBoolean(t *testing.T) {
	t.Parallel()
	d := pagedriver.NewFakeDriver()
	d.EvalResults[IsAliveScript] = []byte("true")
	s := NewSession()
	b := NewBridge(d, s)

	alive, err := b.Alive(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !alive {
		t.Error("expected alive=true")
	}
}
