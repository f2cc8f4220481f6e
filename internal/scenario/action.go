// action.go — Action: a single replayable step in a scenario's chain.
// Actions form a closed set of variants; we use a tagged-struct representation
// (Kind + typed Data payload) rather than an interface hierarchy, so the
// optimiser passes stay pattern-matchable (a switch on Kind) and json
// round-tripping (invariant: unknown fields preserved on load) stays trivial.
package scenario

import (
	"encoding/json"
	"fmt"
)

// Kind enumerates the closed set of action variants a recorded step can be.
type Kind string

const (
	KindClick    Kind = "click"
	KindType     Kind = "type"
	KindSelect   Kind = "select"
	KindScroll   Kind = "scroll"
	KindHover    Kind = "hover"
	KindKeypress Kind = "keypress"
	KindWait     Kind = "wait"
	KindUpload   Kind = "upload"
	KindDrag     Kind = "drag"
	KindNavigate Kind = "navigate"
	KindExtract  Kind = "extract"
)

// Action is one replayable step. Data holds the kind-specific payload as raw
// JSON so unknown/extra fields survive a save/load round trip unchanged.
// Use the typed accessors (ClickDataValue, TypeDataValue, ...) to decode.
type Action struct {
	Kind        Kind            `json:"type"`
	Selector    *Selector       `json:"selector,omitempty"`
	TimestampMs int64           `json:"timestamp"`
	Data        json.RawMessage `json:"data,omitempty"`
}

// ClickData is the payload for KindClick. TimeoutMs bounds post-click
// settlement when RequiresWait is set; zero means the executor's default.
type ClickData struct {
	Text         string `json:"text,omitempty"`
	Href         string `json:"href,omitempty"`
	RequiresWait bool   `json:"requires_wait,omitempty"`
	TimeoutMs    int64  `json:"timeout_ms,omitempty"`
}

// TypeData is the payload for KindType.
type TypeData struct {
	Text       string `json:"text"` // may contain {{param}} placeholders
	IsSecret   bool   `json:"is_secret,omitempty"`
	ParamName  string `json:"param_name,omitempty"`
	ClearFirst bool   `json:"clear_first,omitempty"`
}

// SelectMode distinguishes a native <select> from a custom click-sequence
// dropdown widget.
type SelectMode string

const (
	SelectModeNative SelectMode = "native"
	SelectModeCustom SelectMode = "custom"
)

// SelectStep is one click/wait step of a custom-select click-sequence
// (non-native dropdown widgets don't fire a single "select" event, so
// replay has to step through the same clicks the user made).
type SelectStep struct {
	Action   Kind      `json:"action"` // "click" or "wait"
	Selector *Selector `json:"selector,omitempty"`
	Ms       int64     `json:"ms,omitempty"`
}

// SelectData is the payload for KindSelect.
type SelectData struct {
	Mode  SelectMode   `json:"mode"`
	Value string       `json:"value,omitempty"` // mode=native
	Steps []SelectStep `json:"steps,omitempty"` // mode=custom
}

// ScrollData is the payload for KindScroll.
type ScrollData struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Modifier is a keyboard modifier held during a keypress action.
type Modifier string

const (
	ModControl Modifier = "Control"
	ModShift   Modifier = "Shift"
	ModAlt     Modifier = "Alt"
	ModMeta    Modifier = "Meta"
)

// KeypressData is the payload for KindKeypress.
type KeypressData struct {
	Key       string     `json:"key"` // Enter, Escape, Tab, Arrow*
	Modifiers []Modifier `json:"modifiers,omitempty"`
}

// WaitMode distinguishes a fixed-duration wait from a wait-for-selector.
type WaitMode string

const (
	WaitModeDuration WaitMode = "duration"
	WaitModeSelector WaitMode = "selector"
)

// WaitData is the payload for KindWait.
type WaitData struct {
	Mode      WaitMode  `json:"mode"`
	Ms        int64     `json:"ms,omitempty"`        // mode=duration
	Selector  *Selector `json:"selector,omitempty"`   // mode=selector
	TimeoutMs int64     `json:"timeout_ms,omitempty"` // mode=selector
}

// UploadData is the payload for KindUpload.
type UploadData struct {
	FilePath string `json:"file_path"` // may contain {{param}}
}

// DragEndpoint is either a selector or raw coordinates for a drag source/target.
type DragEndpoint struct {
	Selector *Selector `json:"selector,omitempty"`
	X        *int      `json:"x,omitempty"`
	Y        *int      `json:"y,omitempty"`
}

// DragData is the payload for KindDrag.
type DragData struct {
	Source DragEndpoint `json:"source"`
	Target DragEndpoint `json:"target"`
}

// NavigateData is the payload for KindNavigate.
type NavigateData struct {
	URL           string `json:"url"`
	WaitCondition string `json:"wait_condition,omitempty"`
}

// ExtractData is the payload for KindExtract. The recorder never emits this
// kind itself; extract steps are hand-authored or imported.
type ExtractData struct {
	Attribute string `json:"attribute,omitempty"` // empty -> text content
	Multiple  bool   `json:"multiple,omitempty"`
	OutputName string `json:"output_name"`
}

func (a Action) decode(v any) error {
	if len(a.Data) == 0 {
		return fmt.Errorf("action %s has no data payload", a.Kind)
	}
	return json.Unmarshal(a.Data, v)
}

// ClickData decodes the action's payload as click data.
func (a Action) ClickDataValue() (ClickData, error) {
	var d ClickData
	err := a.decode(&d)
	return d, err
}

// TypeDataValue decodes the action's payload as type data.
func (a Action) TypeDataValue() (TypeData, error) {
	var d TypeData
	err := a.decode(&d)
	return d, err
}

// SelectDataValue decodes the action's payload as select data.
func (a Action) SelectDataValue() (SelectData, error) {
	var d SelectData
	err := a.decode(&d)
	return d, err
}

// ScrollDataValue decodes the action's payload as scroll data.
func (a Action) ScrollDataValue() (ScrollData, error) {
	var d ScrollData
	err := a.decode(&d)
	return d, err
}

// KeypressDataValue decodes the action's payload as keypress data.
func (a Action) KeypressDataValue() (KeypressData, error) {
	var d KeypressData
	err := a.decode(&d)
	return d, err
}

// WaitDataValue decodes the action's payload as wait data.
func (a Action) WaitDataValue() (WaitData, error) {
	var d WaitData
	err := a.decode(&d)
	return d, err
}

// UploadDataValue decodes the action's payload as upload data.
func (a Action) UploadDataValue() (UploadData, error) {
	var d UploadData
	err := a.decode(&d)
	return d, err
}

// DragDataValue decodes the action's payload as drag data.
func (a Action) DragDataValue() (DragData, error) {
	var d DragData
	err := a.decode(&d)
	return d, err
}

// NavigateDataValue decodes the action's payload as navigate data.
func (a Action) NavigateDataValue() (NavigateData, error) {
	var d NavigateData
	err := a.decode(&d)
	return d, err
}

// ExtractDataValue decodes the action's payload as extract data.
func (a Action) ExtractDataValue() (ExtractData, error) {
	var d ExtractData
	err := a.decode(&d)
	return d, err
}

// NewAction builds an Action of the given kind from a typed payload,
// marshalling it into the raw Data field.
func NewAction(kind Kind, sel *Selector, tsMs int64, payload any) (Action, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Action{}, fmt.Errorf("marshal %s payload: %w", kind, err)
	}
	return Action{Kind: kind, Selector: sel, TimestampMs: tsMs, Data: raw}, nil
}

// Clone returns a deep copy of the action, used by the executor before
// parameter substitution so the stored chain is never mutated.
func (a Action) Clone() Action {
	out := a
	if a.Selector != nil {
		sel := a.Selector.Clone()
		out.Selector = &sel
	}
	if a.Data != nil {
		out.Data = append(json.RawMessage(nil), a.Data...)
	}
	return out
}
