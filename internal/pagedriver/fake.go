// fake.go — FakeDriver: an in-memory Driver double for exercising the
// executor, recorder and selector verification logic without a real
// browser. Not intended for production use.
package pagedriver

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// FakeDriver is a scriptable Driver double. Tests configure EvalResults and
// MissingSelectors up front, then assert against the Calls log afterward.
type FakeDriver struct {
	mu sync.Mutex

	CurrentURL   string
	CurrentTitle string
	Cookies      map[string]bool

	// EvalResults maps a js snippet to the raw JSON it should return from
	// Eval. Unmatched snippets return an empty JSON object.
	EvalResults map[string]json.RawMessage

	// MissingSelectors marks selectors that should fail to resolve, for
	// exercising retry/fallback/smart-find recovery paths.
	MissingSelectors map[string]bool

	// Calls records every method invocation in order, for assertions.
	Calls []string
}

// NewFakeDriver returns a FakeDriver with empty maps ready to configure.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{
		Cookies:          map[string]bool{},
		EvalResults:      map[string]json.RawMessage{},
		MissingSelectors: map[string]bool{},
	}
}

func (f *FakeDriver) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

func (f *FakeDriver) checkSelector(selector string) error {
	if f.MissingSelectors[selector] {
		return fmt.Errorf("pagedriver: fake: selector %q not found", selector)
	}
	return nil
}

func (f *FakeDriver) Navigate(ctx context.Context, url string) error {
	f.record("navigate:" + url)
	f.CurrentURL = url
	return nil
}

func (f *FakeDriver) Eval(ctx context.Context, js string) (json.RawMessage, error) {
	f.record("eval:" + js)
	if raw, ok := f.EvalResults[js]; ok {
		return raw, nil
	}
	return json.RawMessage(`{}`), nil
}

func (f *FakeDriver) Click(ctx context.Context, selector string) error {
	f.record("click:" + selector)
	return f.checkSelector(selector)
}

func (f *FakeDriver) Type(ctx context.Context, selector, text string) error {
	f.record("type:" + selector + ":" + text)
	return f.checkSelector(selector)
}

func (f *FakeDriver) PressKey(ctx context.Context, key string, modifiers []string) error {
	f.record("presskey:" + key)
	return nil
}

func (f *FakeDriver) Scroll(ctx context.Context, selector string, x, y int) error {
	f.record("scroll:" + selector)
	if selector != "" {
		return f.checkSelector(selector)
	}
	return nil
}

func (f *FakeDriver) Hover(ctx context.Context, selector string) error {
	f.record("hover:" + selector)
	return f.checkSelector(selector)
}

func (f *FakeDriver) UploadFile(ctx context.Context, selector, path string) error {
	f.record("upload:" + selector + ":" + path)
	return f.checkSelector(selector)
}

func (f *FakeDriver) Drag(ctx context.Context, from, to Point) error {
	f.record(fmt.Sprintf("drag:%v->%v", from, to))
	if from.Selector != "" {
		if err := f.checkSelector(from.Selector); err != nil {
			return err
		}
	}
	if to.Selector != "" {
		return f.checkSelector(to.Selector)
	}
	return nil
}

func (f *FakeDriver) WaitSelector(ctx context.Context, selector string, timeout time.Duration) error {
	f.record("wait:" + selector)
	return f.checkSelector(selector)
}

func (f *FakeDriver) URL(ctx context.Context) (string, error) {
	return f.CurrentURL, nil
}

func (f *FakeDriver) Title(ctx context.Context) (string, error) {
	return f.CurrentTitle, nil
}

func (f *FakeDriver) Cookie(ctx context.Context, name string) (bool, error) {
	return f.Cookies[name], nil
}

func (f *FakeDriver) Close() error {
	f.record("close")
	return nil
}
