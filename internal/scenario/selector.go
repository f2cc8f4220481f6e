// selector.go — Selector record: the synthesised identifier for one DOM node.
// Selectors are values computed once from a live DOM and replayed against a
// possibly-different DOM; a Record carries no back-reference to any node.
package scenario

// ElementInfo is a snapshot of a DOM node's stable descriptors, captured at
// synthesis time so the executor's recovery path (internal/executor) can
// reason about a node without touching the live DOM again.
type ElementInfo struct {
	Tag         string `json:"tag"`
	ID          string `json:"id,omitempty"`
	Classes     []string `json:"classes,omitempty"`
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	Role        string `json:"role,omitempty"`
	AriaLabel   string `json:"aria_label,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	DataTestID  string `json:"data_testid,omitempty"`
	DataTest    string `json:"data_test,omitempty"`
	NthOfType   int    `json:"nth_of_type,omitempty"`
	NthChild    int    `json:"nth_child,omitempty"`
	Text        string `json:"text,omitempty"` // short excerpt, used by smart-find recovery
}

// Selector bundles a primary selector with ordered fallbacks and the
// element descriptors used for replay-time recovery.
//
// Invariant: at synthesis time primary matches exactly one node in the
// document, and every entry of Fallbacks matched at least one candidate
// node when generated.
type Selector struct {
	Primary     string      `json:"primary"`
	Fallbacks   []string    `json:"fallbacks,omitempty"`
	ElementInfo ElementInfo `json:"element_info"`
}

// PromoteFallback moves the first fallback into Primary and removes it from
// the fallback list, mutating s in place. Used by executor retry: once a
// primary selector fails to resolve, the next fallback becomes primary and
// is dropped from the list so it isn't retried twice. Reports false if
// there was no fallback to promote.
func (s *Selector) PromoteFallback() bool {
	if len(s.Fallbacks) == 0 {
		return false
	}
	s.Primary = s.Fallbacks[0]
	s.Fallbacks = s.Fallbacks[1:]
	return true
}

// Clone returns a deep copy so parameter substitution (internal/executor)
// never mutates the scenario's stored selector.
func (s Selector) Clone() Selector {
	out := s
	if s.Fallbacks != nil {
		out.Fallbacks = append([]string(nil), s.Fallbacks...)
	}
	if s.ElementInfo.Classes != nil {
		out.ElementInfo.Classes = append([]string(nil), s.ElementInfo.Classes...)
	}
	return out
}
