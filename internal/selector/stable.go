// stable.go — Pure predicates behind the selector synthesiser's priority
// order. Kept in Go (rather than only inside the embedded script) so the
// class-stability rule has one place it's unit tested without a browser.
package selector

import "regexp"

// unstableClassNames are class tokens that toggle with transient UI state
// and make poor selector anchors even though they're short and common.
var unstableClassNames = map[string]bool{
	"active":  true,
	"visible": true,
	"hidden":  true,
	"open":    true,
	"closed":  true,
}

var digitRun4 = regexp.MustCompile(`\d{4,}`)

// IsStableClass reports whether a CSS class token is a reasonable selector
// anchor: at least two characters, no run of four or more digits (a common
// sign of a generated/hashed class name), and not one of the known
// transient-state toggle classes.
func IsStableClass(class string) bool {
	if len(class) < 2 {
		return false
	}
	if digitRun4.MatchString(class) {
		return false
	}
	return !unstableClassNames[class]
}

// StableClasses filters classes down to the ones IsStableClass accepts,
// preserving order.
func StableClasses(classes []string) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if IsStableClass(c) {
			out = append(out, c)
		}
	}
	return out
}
