// verify.go — Replay-time uniqueness check, used by the executor's
// recovery path before it promotes or retries a fallback selector.
package selector

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
)

// VerifyUnique reports whether selector currently resolves to exactly one
// node in the page driven by d.
func VerifyUnique(ctx context.Context, d pagedriver.Driver, selector string) (bool, error) {
	raw, err := d.Eval(ctx, VerifyUniqueScript(selector))
	if err != nil {
		return false, fmt.Errorf("selector: verify unique: %w", err)
	}
	var ok bool
	if err := json.Unmarshal(raw, &ok); err != nil {
		return false, fmt.Errorf("selector: verify unique: decode result: %w", err)
	}
	return ok, nil
}

// FirstUnique returns the first candidate (in order) that currently
// resolves to exactly one node, or "" if none do.
func FirstUnique(ctx context.Context, d pagedriver.Driver, candidates []string) (string, error) {
	for _, c := range candidates {
		ok, err := VerifyUnique(ctx, d, c)
		if err != nil {
			return "", err
		}
		if ok {
			return c, nil
		}
	}
	return "", nil
}
