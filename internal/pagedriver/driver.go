// driver.go — Driver: the narrow surface the rest of the module needs from
// a live browser page. Everything that touches a real DOM goes through
// this interface so recorder/executor/selector logic can be tested against
// a fake.
package pagedriver

import (
	"context"
	"encoding/json"
	"time"
)

// Driver is the page-level automation surface used by the recorder,
// the executor and the selector's replay-time verification step.
type Driver interface {
	// Navigate loads url and waits for the configured load condition.
	Navigate(ctx context.Context, url string) error

	// Eval runs js in the page's main frame and returns its JSON-encoded
	// result. js must be a self-invoking expression, e.g. "(() => {...})()".
	Eval(ctx context.Context, js string) (json.RawMessage, error)

	// Click dispatches a real mouse click at the element matched by selector.
	Click(ctx context.Context, selector string) error

	// Type focuses the element matched by selector and enters text key by key.
	Type(ctx context.Context, selector, text string) error

	// PressKey sends a single key event (optionally held with modifiers) to
	// whatever currently has focus.
	PressKey(ctx context.Context, key string, modifiers []string) error

	// Scroll scrolls the page (or, when selector is non-empty, the matched
	// element) to the given offsets.
	Scroll(ctx context.Context, selector string, x, y int) error

	// Hover moves the mouse over the element matched by selector.
	Hover(ctx context.Context, selector string) error

	// UploadFile sets the given local file path on a file input.
	UploadFile(ctx context.Context, selector, path string) error

	// Drag performs a drag from one point/element to another.
	Drag(ctx context.Context, from, to Point) error

	// WaitSelector blocks until selector matches at least one node, or
	// timeout elapses.
	WaitSelector(ctx context.Context, selector string, timeout time.Duration) error

	// URL returns the current page URL.
	URL(ctx context.Context) (string, error)

	// Title returns the current document title.
	Title(ctx context.Context) (string, error)

	// Cookie reports whether a cookie with the given name is present.
	Cookie(ctx context.Context, name string) (bool, error)

	// Close releases any resources held for this page.
	Close() error
}

// Point is a viewport coordinate, or a selector to resolve to one at
// dispatch time. Exactly one of Selector or (X, Y) should be set by callers.
type Point struct {
	Selector string
	X, Y     int
}
