// Package finder implements the smart element finder the executor's
// recovery path calls when a selector fails and the action's recorded
// element_info.text is available. It is deliberately narrow: given a free-
// text description, return the best-matching visible interactive elements
// on the current page, ranked.
package finder

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
)

// Find queries d for the current page's interactive elements and returns
// up to maxResults candidates ranked against description, highest score
// first. maxResults <= 0 returns every candidate with a positive score.
func Find(ctx context.Context, d pagedriver.Driver, description string, maxResults int) ([]Candidate, error) {
	raw, err := d.Eval(ctx, CollectCandidatesScript)
	if err != nil {
		return nil, fmt.Errorf("finder: collect candidates: %w", err)
	}

	var rawCandidates []rawCandidate
	if err := json.Unmarshal(raw, &rawCandidates); err != nil {
		return nil, fmt.Errorf("finder: decode candidates: %w", err)
	}

	out := make([]Candidate, 0, len(rawCandidates))
	for _, rc := range rawCandidates {
		s, reasons := score(description, rc)
		if s <= 0 {
			continue
		}
		out = append(out, Candidate{
			Selector: rc.Selector,
			Tag:      rc.Tag,
			Text:     rc.Text,
			Score:    s,
			Reasons:  reasons,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if maxResults > 0 && len(out) > maxResults {
		out = out[:maxResults]
	}
	return out, nil
}
