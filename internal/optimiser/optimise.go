// optimise.go — Optimise: the seven-pass post-recording cleanup that turns
// a raw action buffer into a replayable chain. Pure function, fixed pass
// order, no I/O — every pass only rearranges or drops scenario.Action
// values it is handed.
package optimiser

import (
	"strings"
	"time"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

const widgetSelectorPrefix = "#__scenario_recorder_widget"

// Optimise runs the fixed pass order over raw and returns the cleaned
// chain. raw is never mutated.
func Optimise(raw []scenario.Action) []scenario.Action {
	chain := append([]scenario.Action(nil), raw...)
	chain = stripWidgetActions(chain)
	chain = coalesceSequentialTypes(chain)
	chain = detectCustomSelect(chain)
	chain = removeDuplicateClicks(chain)
	chain = mergeSequentialWaits(chain)
	chain = removeRedundantScrolls(chain)
	chain = removeRedundantHovers(chain)
	return chain
}

func selectorOf(a scenario.Action) string {
	if a.Selector == nil {
		return ""
	}
	return a.Selector.Primary
}

// pass 1
func stripWidgetActions(in []scenario.Action) []scenario.Action {
	out := in[:0]
	for _, a := range in {
		if strings.HasPrefix(selectorOf(a), widgetSelectorPrefix) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// pass 2: collapse a run of "type" actions on the same selector, keeping
// the last (most up to date) one.
func coalesceSequentialTypes(in []scenario.Action) []scenario.Action {
	out := make([]scenario.Action, 0, len(in))
	i := 0
	for i < len(in) {
		a := in[i]
		if a.Kind != scenario.KindType {
			out = append(out, a)
			i++
			continue
		}
		j := i
		for j+1 < len(in) && in[j+1].Kind == scenario.KindType && selectorOf(in[j+1]) == selectorOf(a) {
			j++
		}
		out = append(out, in[j])
		i = j + 1
	}
	return out
}

var containerRoles = []string{"select", "dropdown", "picker", "choice", "menu"}
var optionRoles = []string{"option", "item", "choice", "menu-item"}

func matchesAny(el scenario.ElementInfo, keywords []string) bool {
	probe := strings.ToLower(strings.Join(append([]string{el.ID, el.Role}, el.Classes...), " "))
	for _, k := range keywords {
		if strings.Contains(probe, k) {
			return true
		}
	}
	return false
}

func isContainerish(a scenario.Action) bool {
	return a.Kind == scenario.KindClick && a.Selector != nil && matchesAny(a.Selector.ElementInfo, containerRoles)
}

func isOptionish(a scenario.Action) bool {
	return a.Kind == scenario.KindClick && a.Selector != nil && matchesAny(a.Selector.ElementInfo, optionRoles)
}

// pass 3: click(container) [wait<=1s] click(option) -> select{mode:custom}.
func detectCustomSelect(in []scenario.Action) []scenario.Action {
	out := make([]scenario.Action, 0, len(in))
	i := 0
	for i < len(in) {
		a := in[i]
		if !isContainerish(a) {
			out = append(out, a)
			i++
			continue
		}

		j := i + 1
		var waitMs int64
		hadWait := false
		if j < len(in) && in[j].Kind == scenario.KindWait {
			wd, err := in[j].WaitDataValue()
			if err == nil && wd.Mode == scenario.WaitModeDuration && wd.Ms <= 1000 {
				waitMs = wd.Ms
				hadWait = true
				j++
			}
		}

		if j < len(in) && isOptionish(in[j]) {
			steps := []scenario.SelectStep{{Action: scenario.KindClick, Selector: a.Selector}}
			ms := int64(300)
			if hadWait {
				ms = waitMs
			}
			steps = append(steps, scenario.SelectStep{Action: scenario.KindWait, Ms: ms})
			steps = append(steps, scenario.SelectStep{Action: scenario.KindClick, Selector: in[j].Selector})

			sel, _ := scenario.NewAction(scenario.KindSelect, in[j].Selector, in[j].TimestampMs, scenario.SelectData{
				Mode:  scenario.SelectModeCustom,
				Steps: steps,
			})
			out = append(out, sel)
			i = j + 1
			continue
		}

		out = append(out, a)
		i++
	}
	return out
}

// pass 4: drop an earlier click on the same selector within 500ms of a
// later one, keeping the later click.
func removeDuplicateClicks(in []scenario.Action) []scenario.Action {
	drop := make([]bool, len(in))
	for i, a := range in {
		if a.Kind != scenario.KindClick {
			continue
		}
		for j := i + 1; j < len(in); j++ {
			b := in[j]
			if b.Kind != scenario.KindClick {
				continue
			}
			if selectorOf(b) != selectorOf(a) {
				continue
			}
			if time.Duration(b.TimestampMs-a.TimestampMs)*time.Millisecond <= 500*time.Millisecond {
				drop[i] = true
			}
			break
		}
	}
	return filterOut(in, drop)
}

// pass 5: merge runs of sequential wait actions by summing durations.
func mergeSequentialWaits(in []scenario.Action) []scenario.Action {
	out := make([]scenario.Action, 0, len(in))
	i := 0
	for i < len(in) {
		a := in[i]
		wd, err := waitDataIfDuration(a)
		if err != nil {
			out = append(out, a)
			i++
			continue
		}
		total := wd.Ms
		j := i
		for j+1 < len(in) {
			next, err := waitDataIfDuration(in[j+1])
			if err != nil {
				break
			}
			total += next.Ms
			j++
		}
		merged, _ := scenario.NewAction(scenario.KindWait, nil, a.TimestampMs, scenario.WaitData{Mode: scenario.WaitModeDuration, Ms: total})
		out = append(out, merged)
		i = j + 1
	}
	return out
}

func waitDataIfDuration(a scenario.Action) (scenario.WaitData, error) {
	if a.Kind != scenario.KindWait {
		return scenario.WaitData{}, errNotDurationWait
	}
	wd, err := a.WaitDataValue()
	if err != nil {
		return scenario.WaitData{}, err
	}
	if wd.Mode != scenario.WaitModeDuration {
		return scenario.WaitData{}, errNotDurationWait
	}
	return wd, nil
}

// pass 6: if a scroll is immediately followed (ignoring waits) by another
// scroll, drop the earlier one.
func removeRedundantScrolls(in []scenario.Action) []scenario.Action {
	drop := make([]bool, len(in))
	for i, a := range in {
		if a.Kind != scenario.KindScroll {
			continue
		}
		j := i + 1
		for j < len(in) && in[j].Kind == scenario.KindWait {
			j++
		}
		if j < len(in) && in[j].Kind == scenario.KindScroll {
			drop[i] = true
		}
	}
	return filterOut(in, drop)
}

// pass 7: drop a hover followed by a click on the same selector, and drop a
// hover identical to the immediately-prior hover.
func removeRedundantHovers(in []scenario.Action) []scenario.Action {
	drop := make([]bool, len(in))
	for i, a := range in {
		if a.Kind != scenario.KindHover {
			continue
		}
		if i > 0 && in[i-1].Kind == scenario.KindHover && selectorOf(in[i-1]) == selectorOf(a) {
			drop[i] = true
			continue
		}
		if i+1 < len(in) && in[i+1].Kind == scenario.KindClick && selectorOf(in[i+1]) == selectorOf(a) {
			drop[i] = true
		}
	}
	return filterOut(in, drop)
}

func filterOut(in []scenario.Action, drop []bool) []scenario.Action {
	out := make([]scenario.Action, 0, len(in))
	for i, a := range in {
		if drop[i] {
			continue
		}
		out = append(out, a)
	}
	return out
}
