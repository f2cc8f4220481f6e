// session.go — Session: the host-side recording state machine. One Session
// is live per recorder invocation; Bridge feeds it decoded page events and
// Session turns them into buffered scenario.Action values plus a secrets
// buffer, following the same in-memory bookkeeping shape as a recording
// manager that tracks one active recording at a time.
package recorder

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

// State is one of the recorder's lifecycle states.
type State string

const (
	StateIdle      State = "idle"
	StateRecording State = "recording"
	StatePaused    State = "paused"
	StateSaved     State = "saved"
	StateCancelled State = "cancelled"
)

// hoverCandidate is a hover action waiting to be confirmed (kept, if a
// later click lands nearby) or dropped (if save happens first).
type hoverCandidate struct {
	index int // position of the hover action in Session.actions
}

// Session is the in-memory recording state for one scenario capture.
type Session struct {
	mu sync.Mutex

	state State

	name     string
	entryURL string
	exitURL  string

	actions []scenario.Action
	secrets map[string]string

	hoverCandidates map[string]hoverCandidate // keyed by selector primary

	widgetX, widgetY int
	widgetCollapsed  bool

	startedAt time.Time
}

// NewSession returns a Session in StateIdle.
func NewSession() *Session {
	return &Session{
		state:           StateIdle,
		secrets:         map[string]string{},
		hoverCandidates: map[string]hoverCandidate{},
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start transitions idle -> recording, recording the entry URL. Returns an
// error if a recording is already in progress.
func (s *Session) Start(entryURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording || s.state == StatePaused {
		return fmt.Errorf("recorder: recording already in progress")
	}

	s.state = StateRecording
	s.entryURL = entryURL
	s.actions = nil
	s.secrets = map[string]string{}
	s.hoverCandidates = map[string]hoverCandidate{}
	s.startedAt = time.Now()
	return nil
}

// Pause transitions recording -> paused.
func (s *Session) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return fmt.Errorf("recorder: cannot pause from state %s", s.state)
	}
	s.state = StatePaused
	return nil
}

// Resume transitions paused -> recording.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StatePaused {
		return fmt.Errorf("recorder: cannot resume from state %s", s.state)
	}
	s.state = StateRecording
	return nil
}

// Cancel discards the buffer and transitions to StateCancelled.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateCancelled
}

// AddAction appends an action to the buffer. Returns an error unless
// recording is in progress (paused sessions still buffer nothing new,
// matching the no-active-recording behaviour of a stopped manager).
func (s *Session) AddAction(a scenario.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateRecording {
		return fmt.Errorf("recorder: no active recording")
	}
	if a.TimestampMs == 0 {
		a.TimestampMs = time.Now().UnixMilli()
	}
	s.actions = append(s.actions, a)
	return nil
}

// AddHoverCandidate records a newly-observed hover as a deletion candidate:
// it is dropped at save time unless a later click purposefully targets the
// same (or a nearby ancestor) element.
func (s *Session) AddHoverCandidate(selectorPrimary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hoverCandidates[selectorPrimary] = hoverCandidate{index: len(s.actions) - 1}
}

// ConfirmHover removes a hover from the deletion-candidate set, e.g.
// because a click subsequently landed on the same element or an ancestor.
func (s *Session) ConfirmHover(selectorPrimary string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hoverCandidates, selectorPrimary)
}

// PutSecret stores a literal secret value keyed by parameter name, for
// later export into a scenario.SecretsRecord.
func (s *Session) PutSecret(paramName, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[paramName] = value
}

// SetWidgetPosition records the widget's on-screen position and collapsed
// state, persisted across reinjection.
func (s *Session) SetWidgetPosition(x, y int, collapsed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widgetX, s.widgetY, s.widgetCollapsed = x, y, collapsed
}

// StopAndSave transitions to StateSaved, drops unconfirmed hover
// candidates, and returns the finished scenario and its secrets record.
// Requires a non-empty name.
func (s *Session) StopAndSave(name, exitURL string) (scenario.Scenario, scenario.SecretsRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording && s.state != StatePaused {
		return scenario.Scenario{}, scenario.SecretsRecord{}, fmt.Errorf("recorder: nothing to stop")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return scenario.Scenario{}, scenario.SecretsRecord{}, fmt.Errorf("recorder: scenario name required")
	}

	s.exitURL = exitURL
	s.dropUnconfirmedHoversLocked()
	s.state = StateSaved

	sc := scenario.Scenario{
		Name:    name,
		Version: 1,
		Actions: append([]scenario.Action(nil), s.actions...),
		Metadata: scenario.Metadata{
			CreatedAt: s.startedAt,
			UpdatedAt: time.Now(),
			StartURL:  s.entryURL,
		},
	}
	rec := scenario.SecretsRecord{ScenarioName: name, Values: map[string]string{}}
	for k, v := range s.secrets {
		rec.Values[k] = v
	}
	return sc, rec, nil
}

// dropUnconfirmedHoversLocked removes any hover action still in the
// deletion-candidate set, highest index first so indices stay valid.
func (s *Session) dropUnconfirmedHoversLocked() {
	if len(s.hoverCandidates) == 0 {
		return
	}
	drop := make(map[int]bool, len(s.hoverCandidates))
	for _, hc := range s.hoverCandidates {
		drop[hc.index] = true
	}
	kept := s.actions[:0]
	for i, a := range s.actions {
		if drop[i] {
			continue
		}
		kept = append(kept, a)
	}
	s.actions = kept
	s.hoverCandidates = map[string]hoverCandidate{}
}
