// extract.go — KindExtract's driver-side implementation: pulls text or an
// attribute value out of the matched node(s) via Eval, since extraction is
// not a mutating driver primitive and doesn't warrant its own Driver method.
package executor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

func extractValue(ctx context.Context, d pagedriver.Driver, selector string, data scenario.ExtractData) (any, error) {
	pick := "el.textContent ? el.textContent.trim() : ''"
	if data.Attribute != "" {
		pick = "el.getAttribute(" + jsonQuote(data.Attribute) + ")"
	}

	var script string
	if data.Multiple {
		script = `(() => {
  const els = Array.from(document.querySelectorAll(` + jsonQuote(selector) + `));
  return els.map(el => ` + pick + `);
})()`
	} else {
		script = `(() => {
  const el = document.querySelector(` + jsonQuote(selector) + `);
  if (!el) return null;
  return ` + pick + `;
})()`
	}

	raw, err := d.Eval(ctx, script)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	if data.Multiple {
		var values []string
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("extract: decode list result: %w", err)
		}
		return values, nil
	}

	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("extract: decode result: %w", err)
	}
	if value == nil {
		return nil, fmt.Errorf("extract: selector %q matched no node", selector)
	}
	return *value, nil
}
