// bridge.go — Bridge: the host-side half of the recorder's page/Go channel.
// It injects the script, polls the in-page event queue, and turns each
// RawEvent into a scenario.Action (running the secret classifier on input
// events) appended to a Session.
package recorder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
	"github.com/scenariomcp/scenariomcp/internal/scenario"
	"github.com/scenariomcp/scenariomcp/internal/secret"
)

// Bridge connects one Session to one live page.
type Bridge struct {
	driver  pagedriver.Driver
	session *Session

	// OnSaved, if set, is invoked with the finished scenario and its
	// secrets record whenever a widget_stop event drives the session to
	// StateSaved. This is the only channel through which a stop triggered
	// from the in-page widget (rather than a direct StopAndSave call from
	// the host) reaches the host's optimise-then-persist step, matching
	// Design Notes §9: the in-page script and host share no memory, so the
	// completed scenario must be handed across explicitly.
	OnSaved func(scenario.Scenario, scenario.SecretsRecord)
}

// NewBridge returns a Bridge wiring driver to session.
func NewBridge(driver pagedriver.Driver, session *Session) *Bridge {
	return &Bridge{driver: driver, session: session}
}

// Inject installs the recorder script if not already present.
func (b *Bridge) Inject(ctx context.Context) error {
	_, err := b.driver.Eval(ctx, InjectScript)
	if err != nil {
		return fmt.Errorf("recorder: inject: %w", err)
	}
	return nil
}

// Alive reports whether a recorder instance is already running on the page.
func (b *Bridge) Alive(ctx context.Context) (bool, error) {
	raw, err := b.driver.Eval(ctx, IsAliveScript)
	if err != nil {
		return false, fmt.Errorf("recorder: alive check: %w", err)
	}
	var alive bool
	if err := json.Unmarshal(raw, &alive); err != nil {
		return false, fmt.Errorf("recorder: alive check: decode: %w", err)
	}
	return alive, nil
}

// Poll drains the page's event queue and applies every event to the
// session, returning the count applied.
func (b *Bridge) Poll(ctx context.Context) (int, error) {
	raw, err := b.driver.Eval(ctx, DrainScript)
	if err != nil {
		return 0, fmt.Errorf("recorder: poll: %w", err)
	}
	var encoded string
	// DrainScript returns a JSON-encoded string (JSON.stringify of an array);
	// Eval already returns the page's JSON value, so decode once to unwrap it.
	if err := json.Unmarshal(raw, &encoded); err == nil {
		raw = json.RawMessage(encoded)
	}
	events, err := decodeEvents(raw)
	if err != nil {
		return 0, fmt.Errorf("recorder: poll: decode events: %w", err)
	}
	for _, ev := range events {
		if err := b.apply(ev); err != nil {
			return 0, err
		}
	}
	return len(events), nil
}

func (b *Bridge) apply(ev RawEvent) error {
	switch ev.Kind {
	case RawWidgetStart:
		if b.session.State() == StateIdle || b.session.State() == StateCancelled || b.session.State() == StateSaved {
			url, _ := b.lastKnownURL()
			return b.session.Start(url)
		}
		return b.session.Resume()
	case RawWidgetPause:
		return b.session.Pause()
	case RawWidgetStop:
		url, _ := b.lastKnownURL()
		sc, rec, err := b.session.StopAndSave(ev.ScenarioName, url)
		if err != nil {
			return err
		}
		if b.OnSaved != nil {
			b.OnSaved(sc, rec)
		}
		return nil
	case RawClick:
		return b.session.AddAction(scenario.Action{Kind: scenario.KindClick, Selector: ev.Selector, TimestampMs: ev.TimestampMs, Data: mustJSON(scenario.ClickData{Text: ev.Text})})
	case RawInput:
		return b.applyInput(ev)
	case RawChange:
		return b.applyChange(ev)
	case RawScroll:
		return b.session.AddAction(scenario.Action{Kind: scenario.KindScroll, TimestampMs: ev.TimestampMs, Data: mustJSON(scenario.ScrollData{X: ev.X, Y: ev.Y})})
	case RawMouseOver:
		if err := b.session.AddAction(scenario.Action{Kind: scenario.KindHover, Selector: ev.Selector, TimestampMs: ev.TimestampMs}); err != nil {
			return err
		}
		b.session.AddHoverCandidate(ev.Selector.Primary)
		return nil
	case RawKeydown:
		mods := make([]scenario.Modifier, 0, len(ev.Modifiers))
		for _, m := range ev.Modifiers {
			mods = append(mods, scenario.Modifier(m))
		}
		return b.session.AddAction(scenario.Action{Kind: scenario.KindKeypress, TimestampMs: ev.TimestampMs, Data: mustJSON(scenario.KeypressData{Key: ev.Key, Modifiers: mods})})
	case RawDrag:
		return b.session.AddAction(scenario.Action{Kind: scenario.KindDrag, TimestampMs: ev.TimestampMs, Data: mustJSON(scenario.DragData{
			Source: scenario.DragEndpoint{Selector: ev.Selector},
			Target: scenario.DragEndpoint{Selector: ev.DragTarget},
		})})
	default:
		return nil
	}
}

func (b *Bridge) applyInput(ev RawEvent) error {
	text := ev.Text
	isSecret := ev.IsSecret
	paramName := ev.ParamName
	if ev.FormContext != nil {
		result := secret.Classify(secret.FormContext{
			FormID:            ev.FormContext.FormID,
			FormAction:        ev.FormContext.FormAction,
			FormClasses:       ev.FormContext.FormClasses,
			FormAriaLabel:     ev.FormContext.FormAriaLabel,
			FormTitle:         ev.FormContext.FormTitle,
			HasPasswordField:  ev.FormContext.HasPasswordField,
			InputType:         ev.FormContext.InputType,
			InputName:         ev.FormContext.InputName,
			InputID:           ev.FormContext.InputID,
			InputPlaceholder:  ev.FormContext.InputPlaceholder,
			InputAriaLabel:    ev.FormContext.InputAriaLabel,
			InputAutocomplete: ev.FormContext.InputAutocomplete,
			MaxLength:         ev.FormContext.MaxLength,
		})
		if result.IsSecret {
			isSecret = true
			paramName = result.ParameterName
		}
	}
	if isSecret && paramName != "" {
		b.session.PutSecret(paramName, text)
		text = "{{" + paramName + "}}"
	}
	return b.session.AddAction(scenario.Action{
		Kind:        scenario.KindType,
		Selector:    ev.Selector,
		TimestampMs: ev.TimestampMs,
		Data: mustJSON(scenario.TypeData{
			Text:       text,
			IsSecret:   isSecret,
			ParamName:  paramName,
			ClearFirst: ev.ClearFirst,
		}),
	})
}

func (b *Bridge) applyChange(ev RawEvent) error {
	if ev.SelectMode == "upload" {
		return b.session.AddAction(scenario.Action{
			Kind: scenario.KindUpload, Selector: ev.Selector, TimestampMs: ev.TimestampMs,
			Data: mustJSON(scenario.UploadData{FilePath: ev.FilePath}),
		})
	}
	return b.session.AddAction(scenario.Action{
		Kind: scenario.KindSelect, Selector: ev.Selector, TimestampMs: ev.TimestampMs,
		Data: mustJSON(scenario.SelectData{Mode: scenario.SelectModeNative, Value: ev.Text}),
	})
}

func (b *Bridge) lastKnownURL() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return b.driver.URL(ctx)
}

func mustJSON(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		// payload types are all plain structs of strings/ints/slices; a
		// marshal failure here would be a programming error, not runtime data.
		panic(fmt.Sprintf("recorder: marshal payload: %v", err))
	}
	return raw
}
