// rod.go — RodDriver: Driver backed by a real Chrome instance via go-rod,
// with go-rod/stealth applied to resist bot-detection during recording.
package pagedriver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// RodConfig configures a RodDriver.
type RodConfig struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty launches a local headless Chrome via launcher.
	RemoteURL string
	Headless  bool
}

func (c *RodConfig) defaults() {
	// Headless defaults to false's zero value being "headful"; callers that
	// want headless must say so explicitly, matching the recorder's default
	// of a visible window so a human can interact with it.
}

// RodDriver drives one browser tab over the Chrome DevTools Protocol.
type RodDriver struct {
	browser *rod.Browser
	page    *rod.Page
	lnch    *launcher.Launcher
}

// NewRodDriver launches (or connects to) Chrome and opens a single tab with
// stealth patches applied.
func NewRodDriver(cfg RodConfig) (*RodDriver, error) {
	cfg.defaults()

	var wsURL string
	var lnch *launcher.Launcher
	if cfg.RemoteURL != "" {
		wsURL = cfg.RemoteURL
	} else {
		l := launcher.New().Headless(cfg.Headless).Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("pagedriver: launch: %w", err)
		}
		wsURL = u
		lnch = l
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("pagedriver: connect: %w", err)
	}
	if err := b.IgnoreCertErrors(true); err != nil {
		return nil, fmt.Errorf("pagedriver: ignore cert errors: %w", err)
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("pagedriver: open tab: %w", err)
	}

	return &RodDriver{browser: b, page: page, lnch: lnch}, nil
}

func (d *RodDriver) Navigate(ctx context.Context, url string) error {
	p := d.page.Context(ctx)
	if err := p.Navigate(url); err != nil {
		return fmt.Errorf("pagedriver: navigate %s: %w", url, err)
	}
	return p.WaitLoad()
}

func (d *RodDriver) Eval(ctx context.Context, js string) (json.RawMessage, error) {
	res, err := d.page.Context(ctx).Eval(js)
	if err != nil {
		return nil, fmt.Errorf("pagedriver: eval: %w", err)
	}
	return json.RawMessage(res.Value.JSON().Raw), nil
}

func (d *RodDriver) Click(ctx context.Context, selector string) error {
	el, err := d.page.Context(ctx).Timeout(5 * time.Second).Element(selector)
	if err != nil {
		return fmt.Errorf("pagedriver: click %s: %w", selector, err)
	}
	return el.Click(proto.InputMouseButtonLeft, 1)
}

func (d *RodDriver) Type(ctx context.Context, selector, text string) error {
	el, err := d.page.Context(ctx).Timeout(5 * time.Second).Element(selector)
	if err != nil {
		return fmt.Errorf("pagedriver: type %s: %w", selector, err)
	}
	return el.Input(text)
}

var keyByName = map[string]input.Key{
	"Enter":      input.Enter,
	"Escape":     input.Escape,
	"Tab":        input.Tab,
	"ArrowUp":    input.ArrowUp,
	"ArrowDown":  input.ArrowDown,
	"ArrowLeft":  input.ArrowLeft,
	"ArrowRight": input.ArrowRight,
	"Backspace":  input.Backspace,
	"Delete":     input.Delete,
	"Space":      input.Space,
}

func (d *RodDriver) PressKey(ctx context.Context, key string, modifiers []string) error {
	k, ok := keyByName[key]
	if !ok {
		return fmt.Errorf("pagedriver: unsupported key %q", key)
	}
	kb := d.page.Context(ctx).Keyboard
	for _, m := range modifiers {
		switch m {
		case "Control":
			kb.MustDown(input.ControlLeft)
			defer kb.MustUp(input.ControlLeft)
		case "Shift":
			kb.MustDown(input.ShiftLeft)
			defer kb.MustUp(input.ShiftLeft)
		case "Alt":
			kb.MustDown(input.AltLeft)
			defer kb.MustUp(input.AltLeft)
		case "Meta":
			kb.MustDown(input.MetaLeft)
			defer kb.MustUp(input.MetaLeft)
		}
	}
	return kb.Type(k)
}

func (d *RodDriver) Scroll(ctx context.Context, selector string, x, y int) error {
	p := d.page.Context(ctx)
	if selector != "" {
		el, err := p.Element(selector)
		if err != nil {
			return fmt.Errorf("pagedriver: scroll %s: %w", selector, err)
		}
		return el.ScrollTo(proto.Point{X: float64(x), Y: float64(y)})
	}
	return p.Mouse.Scroll(float64(x), float64(y), 1)
}

func (d *RodDriver) Hover(ctx context.Context, selector string) error {
	el, err := d.page.Context(ctx).Timeout(5 * time.Second).Element(selector)
	if err != nil {
		return fmt.Errorf("pagedriver: hover %s: %w", selector, err)
	}
	return el.Hover()
}

func (d *RodDriver) UploadFile(ctx context.Context, selector, path string) error {
	el, err := d.page.Context(ctx).Timeout(5 * time.Second).Element(selector)
	if err != nil {
		return fmt.Errorf("pagedriver: upload %s: %w", selector, err)
	}
	return el.SetFiles([]string{path})
}

func (d *RodDriver) Drag(ctx context.Context, from, to Point) error {
	p := d.page.Context(ctx)
	start, err := d.resolvePoint(p, from)
	if err != nil {
		return fmt.Errorf("pagedriver: drag source: %w", err)
	}
	end, err := d.resolvePoint(p, to)
	if err != nil {
		return fmt.Errorf("pagedriver: drag target: %w", err)
	}
	m := p.Mouse
	if err := m.MoveTo(start); err != nil {
		return err
	}
	if err := m.Down(proto.InputMouseButtonLeft, 1); err != nil {
		return err
	}
	defer m.Up(proto.InputMouseButtonLeft, 1)
	return m.MoveTo(end)
}

func (d *RodDriver) resolvePoint(p *rod.Page, pt Point) (proto.Point, error) {
	if pt.Selector != "" {
		el, err := p.Element(pt.Selector)
		if err != nil {
			return proto.Point{}, err
		}
		shape, err := el.Shape()
		if err != nil {
			return proto.Point{}, err
		}
		box := shape.Box()
		return proto.Point{X: box.X + box.Width/2, Y: box.Y + box.Height/2}, nil
	}
	return proto.Point{X: float64(pt.X), Y: float64(pt.Y)}, nil
}

func (d *RodDriver) WaitSelector(ctx context.Context, selector string, timeout time.Duration) error {
	_, err := d.page.Context(ctx).Timeout(timeout).Element(selector)
	if err != nil {
		return fmt.Errorf("pagedriver: wait for %s: %w", selector, err)
	}
	return nil
}

func (d *RodDriver) URL(ctx context.Context) (string, error) {
	info, err := d.page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("pagedriver: url: %w", err)
	}
	return info.URL, nil
}

func (d *RodDriver) Title(ctx context.Context) (string, error) {
	res, err := d.page.Context(ctx).Eval(`() => document.title`)
	if err != nil {
		return "", fmt.Errorf("pagedriver: title: %w", err)
	}
	return res.Value.Str(), nil
}

func (d *RodDriver) Cookie(ctx context.Context, name string) (bool, error) {
	cookies, err := d.page.Context(ctx).Cookies(nil)
	if err != nil {
		return false, fmt.Errorf("pagedriver: cookies: %w", err)
	}
	for _, c := range cookies {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (d *RodDriver) Close() error {
	if d.page != nil {
		_ = d.page.Close()
	}
	if d.browser != nil {
		_ = d.browser.Close()
	}
	if d.lnch != nil {
		d.lnch.Cleanup()
	}
	return nil
}
