// events.go — RawEvent: the wire shape the in-page recorder script emits,
// decoded by Bridge and turned into scenario.Action values by Session's
// caller (the host event loop in inject.go).
package recorder

import (
	"encoding/json"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

// RawEventKind mirrors the DOM event types the recorder listens for, plus
// the two widget-lifecycle pseudo-events used for Start/Pause/Resume/Stop.
type RawEventKind string

const (
	RawClick       RawEventKind = "click"
	RawInput       RawEventKind = "input"
	RawChange      RawEventKind = "change"
	RawScroll      RawEventKind = "scroll"
	RawMouseOver   RawEventKind = "mouseover"
	RawKeydown     RawEventKind = "keydown"
	RawDrag        RawEventKind = "drag"
	RawWidgetStart RawEventKind = "widget_start"
	RawWidgetPause RawEventKind = "widget_pause"
	RawWidgetStop  RawEventKind = "widget_stop"
)

// RawEvent is one event drained from the page's event queue.
type RawEvent struct {
	Kind        RawEventKind     `json:"kind"`
	TimestampMs int64            `json:"timestamp_ms"`
	Selector    *scenario.Selector `json:"selector,omitempty"`
	Text        string           `json:"text,omitempty"`
	IsSecret    bool             `json:"is_secret,omitempty"`
	ParamName   string           `json:"param_name,omitempty"`
	ClearFirst  bool             `json:"clear_first,omitempty"`
	X           int              `json:"x,omitempty"`
	Y           int              `json:"y,omitempty"`
	Key         string           `json:"key,omitempty"`
	Modifiers   []string         `json:"modifiers,omitempty"`
	SelectMode  string           `json:"select_mode,omitempty"`
	FilePath    string           `json:"file_path,omitempty"`
	ScenarioName string          `json:"scenario_name,omitempty"`
	DragTarget  *scenario.Selector `json:"drag_target,omitempty"`
	FormContext *wireFormContext `json:"form_context,omitempty"`
}

// wireFormContext is the JSON shape the in-page script emits for an input
// event's enclosing form, decoded into secret.FormContext for classification.
type wireFormContext struct {
	FormID           string   `json:"form_id"`
	FormAction       string   `json:"form_action"`
	FormClasses      []string `json:"form_classes"`
	FormAriaLabel    string   `json:"form_aria_label"`
	FormTitle        string   `json:"form_title"`
	HasPasswordField bool     `json:"has_password_field"`
	InputType        string   `json:"input_type"`
	InputName        string   `json:"input_name"`
	InputID          string   `json:"input_id"`
	InputPlaceholder string   `json:"input_placeholder"`
	InputAriaLabel   string   `json:"input_aria_label"`
	InputAutocomplete string  `json:"input_autocomplete"`
	MaxLength        int      `json:"max_length"`
}

// decodeEvents unmarshals the JSON array returned by the drain script.
func decodeEvents(raw json.RawMessage) ([]RawEvent, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var events []RawEvent
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, err
	}
	return events, nil
}
