// form.go — FormContext: a Go-side snapshot of the enclosing form and
// target input, used to run the classification gate without a live DOM.
// The recorder's embedded script builds this snapshot in-page (script.go)
// and hands it to the host for the parts of classify that don't need to
// touch the DOM again.
package secret

import "strings"

// FormContext describes the form enclosing a candidate input, and the
// input itself, as captured at event time.
type FormContext struct {
	FormID        string
	FormAction    string
	FormClasses   []string
	FormAriaLabel string
	FormTitle     string
	HasPasswordField bool

	InputType        string
	InputName        string
	InputID          string
	InputPlaceholder string
	InputAriaLabel   string
	InputAutocomplete string
	MaxLength        int
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// probe concatenates every text source the gate or kind detector reads.
func (f FormContext) formProbe() string {
	return strings.Join([]string{f.FormID, f.FormAction, strings.Join(f.FormClasses, " "), f.FormAriaLabel, f.FormTitle}, " ")
}

func (f FormContext) inputProbe() string {
	return strings.Join([]string{f.InputName, f.InputID, f.InputPlaceholder, f.InputAriaLabel, f.InputAutocomplete}, " ")
}

// IsAuthenticationForm implements the gate: a form counts as an
// authentication form when its own identifying text carries an auth
// keyword, or it contains at least one password-type input.
func (f FormContext) IsAuthenticationForm() bool {
	if f.HasPasswordField {
		return true
	}
	return containsAny(f.formProbe(), authKeywords)
}
