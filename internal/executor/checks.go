// checks.go — Small inline Eval probes used by action pre-flight checks.
// Kept as individual scripts (rather than one monolithic page-inspection
// script) so each check stays independently testable against FakeDriver.
package executor

import (
	"context"

	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
)

func isEditable(ctx context.Context, d pagedriver.Driver, selector string) (bool, error) {
	script := `(() => {
  const el = document.querySelector(` + jsonQuote(selector) + `);
  if (!el) return false;
  const tag = el.tagName.toLowerCase();
  return tag === 'input' || tag === 'textarea' || el.isContentEditable === true;
})()`
	raw, err := d.Eval(ctx, script)
	if err != nil {
		return false, err
	}
	var ok bool
	jsonUnmarshalBool(raw, &ok)
	return ok, nil
}

func isNativeSelect(ctx context.Context, d pagedriver.Driver, selector string) (bool, error) {
	script := `(() => {
  const el = document.querySelector(` + jsonQuote(selector) + `);
  return !!el && el.tagName.toLowerCase() === 'select';
})()`
	raw, err := d.Eval(ctx, script)
	if err != nil {
		return false, err
	}
	var ok bool
	jsonUnmarshalBool(raw, &ok)
	return ok, nil
}

func clearField(ctx context.Context, d pagedriver.Driver, selector string) error {
	script := `(() => {
  const el = document.querySelector(` + jsonQuote(selector) + `);
  if (!el) return false;
  if ('value' in el) { el.value = ''; }
  else if (el.isContentEditable) { el.textContent = ''; }
  el.dispatchEvent(new Event('input', { bubbles: true }));
  return true;
})()`
	_, err := d.Eval(ctx, script)
	return err
}
