// result.go — Result: the aggregate outcome of one Execute call, merging
// every scenario's outputs and recording which dependencies actually ran.
package executor

import "time"

// Result is returned by Execute regardless of success, so a caller can
// inspect partial progress on failure.
type Result struct {
	Success          bool           `json:"success"`
	ExecutedScenarios []string      `json:"executed_scenarios"` // order executed, skipped deps excluded
	SkippedScenarios  []string      `json:"skipped_scenarios,omitempty"`
	Outputs           map[string]any `json:"outputs"`
	Errors            []string       `json:"errors,omitempty"`
	Duration          time.Duration  `json:"duration"`
}
