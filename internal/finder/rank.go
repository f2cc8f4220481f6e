// rank.go — Pure scoring logic behind the finder, kept separate from the
// page round-trip so the heuristic is unit tested without a browser.
package finder

import (
	"strconv"
	"strings"
)

// rawCandidate is the JSON shape returned by CollectCandidatesScript.
type rawCandidate struct {
	Selector    string `json:"selector"`
	Tag         string `json:"tag"`
	Text        string `json:"text"`
	AriaLabel   string `json:"aria_label"`
	Placeholder string `json:"placeholder"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	DataTestID  string `json:"data_testid"`
}

// Candidate is one ranked match for a description query.
type Candidate struct {
	Selector string   `json:"selector"`
	Tag      string   `json:"tag"`
	Text     string   `json:"text"`
	Score    float64  `json:"score"`
	Reasons  []string `json:"reasons"`
}

// score weights an exact field match above a substring match above a
// word-overlap match; data-testid and aria-label count as strong signals
// since they're usually authored deliberately for this purpose, unlike
// innerText which can be noisy surrounding markup.
func score(description string, c rawCandidate) (float64, []string) {
	needle := strings.ToLower(strings.TrimSpace(description))
	if needle == "" {
		return 0, nil
	}

	var total float64
	var reasons []string
	fields := []struct {
		name   string
		value  string
		weight float64
	}{
		{"data-testid", c.DataTestID, 5},
		{"aria-label", c.AriaLabel, 4},
		{"text", c.Text, 3},
		{"placeholder", c.Placeholder, 3},
		{"name", c.Name, 2},
		{"id", c.ID, 2},
	}

	for _, f := range fields {
		hay := strings.ToLower(strings.TrimSpace(f.value))
		if hay == "" {
			continue
		}
		switch {
		case hay == needle:
			total += f.weight * 2
			reasons = append(reasons, f.name+" matches exactly")
		case strings.Contains(hay, needle) || strings.Contains(needle, hay):
			total += f.weight
			reasons = append(reasons, f.name+" contains the description")
		default:
			if overlap := wordOverlap(needle, hay); overlap > 0 {
				total += f.weight * 0.3 * float64(overlap)
				reasons = append(reasons, f.name+" shares "+pluralWords(overlap))
			}
		}
	}

	return total, reasons
}

func wordOverlap(a, b string) int {
	bWords := make(map[string]bool)
	for _, w := range strings.Fields(b) {
		bWords[w] = true
	}
	count := 0
	for _, w := range strings.Fields(a) {
		if len(w) < 3 {
			continue
		}
		if bWords[w] {
			count++
		}
	}
	return count
}

func pluralWords(n int) string {
	if n == 1 {
		return "1 word"
	}
	return strconv.Itoa(n) + " words"
}
