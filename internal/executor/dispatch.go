// dispatch.go — Per-action dispatch: routes a substituted action to its
// action-specific routine, each of which invokes the page-control driver.
package executor

import (
	"context"
	"fmt"

	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
	"github.com/scenariomcp/scenariomcp/internal/scenario"
	"github.com/scenariomcp/scenariomcp/internal/scenarioerr"
)

// dispatch executes one already-substituted action and returns any extract
// output it produced (nil for every other kind).
func (ex *Executor) dispatch(ctx context.Context, a scenario.Action, execCtx *Context) (extracted any, err error) {
	switch a.Kind {
	case scenario.KindClick:
		return nil, ex.dispatchClick(ctx, a, execCtx)
	case scenario.KindType:
		return nil, ex.dispatchType(ctx, a)
	case scenario.KindSelect:
		return nil, ex.dispatchSelect(ctx, a)
	case scenario.KindScroll:
		return nil, ex.dispatchScroll(ctx, a)
	case scenario.KindHover:
		return nil, ex.dispatchHover(ctx, a)
	case scenario.KindKeypress:
		return nil, ex.dispatchKeypress(ctx, a)
	case scenario.KindWait:
		return nil, ex.dispatchWait(ctx, a)
	case scenario.KindUpload:
		return nil, ex.dispatchUpload(ctx, a)
	case scenario.KindDrag:
		return nil, ex.dispatchDrag(ctx, a)
	case scenario.KindNavigate:
		return nil, ex.dispatchNavigate(ctx, a)
	case scenario.KindExtract:
		return ex.dispatchExtract(ctx, a)
	default:
		return nil, scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidScenario, "unknown action kind %q", a.Kind)
	}
}

func actionError(a scenario.Action, err error) error {
	return scenarioerr.Newf(scenarioerr.KindEnvironment, scenarioerr.CodeActionFailed, "%s action failed: %v", a.Kind, err)
}

func selectorOf(a scenario.Action) (string, error) {
	if a.Selector == nil || a.Selector.Primary == "" {
		return "", scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidScenario, "%s action has no selector", a.Kind)
	}
	return a.Selector.Primary, nil
}

func (ex *Executor) dispatchClick(ctx context.Context, a scenario.Action, execCtx *Context) error {
	sel, err := selectorOf(a)
	if err != nil {
		return err
	}
	if err := ex.driver.Click(ctx, sel); err != nil {
		return actionError(a, err)
	}
	data, _ := a.ClickDataValue()
	if data.RequiresWait {
		ex.settleWithTimeout(ctx, timeMs(data.TimeoutMs))
	}
	return nil
}

func (ex *Executor) dispatchType(ctx context.Context, a scenario.Action) error {
	sel, err := selectorOf(a)
	if err != nil {
		return err
	}
	data, err := a.TypeDataValue()
	if err != nil {
		return actionError(a, err)
	}

	editable, err := isEditable(ctx, ex.driver, sel)
	if err != nil {
		return actionError(a, err)
	}
	if !editable {
		return scenarioerr.Newf(scenarioerr.KindEnvironment, scenarioerr.CodeActionFailed,
			"type target %q is not an input, textarea or contenteditable element", sel)
	}

	if data.ClearFirst {
		if err := clearField(ctx, ex.driver, sel); err != nil {
			return actionError(a, err)
		}
	}
	if err := ex.driver.Type(ctx, sel, data.Text); err != nil {
		return actionError(a, err)
	}
	return nil
}

func (ex *Executor) dispatchSelect(ctx context.Context, a scenario.Action) error {
	sel, err := selectorOf(a)
	if err != nil {
		return err
	}
	data, err := a.SelectDataValue()
	if err != nil {
		return actionError(a, err)
	}

	switch data.Mode {
	case scenario.SelectModeNative:
		isSelect, err := isNativeSelect(ctx, ex.driver, sel)
		if err != nil {
			return actionError(a, err)
		}
		if !isSelect {
			return scenarioerr.Newf(scenarioerr.KindEnvironment, scenarioerr.CodeActionFailed,
				"select target %q is not a native <select>", sel)
		}
		return ex.selectNativeOption(ctx, sel, data.Value, a)
	case scenario.SelectModeCustom:
		for _, step := range data.Steps {
			switch step.Action {
			case scenario.KindClick:
				if step.Selector == nil {
					continue
				}
				if err := ex.driver.Click(ctx, step.Selector.Primary); err != nil {
					return actionError(a, err)
				}
			case scenario.KindWait:
				waitFixed(ctx, timeMs(step.Ms))
			}
		}
		return nil
	default:
		return scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidScenario, "unknown select mode %q", data.Mode)
	}
}

func (ex *Executor) selectNativeOption(ctx context.Context, sel, value string, a scenario.Action) error {
	script := `(() => {
  const el = document.querySelector(` + jsonQuote(sel) + `);
  if (!el) return false;
  el.value = ` + jsonQuote(value) + `;
  el.dispatchEvent(new Event('change', { bubbles: true }));
  return true;
})()`
	if _, err := ex.driver.Eval(ctx, script); err != nil {
		return actionError(a, err)
	}
	return nil
}

func (ex *Executor) dispatchScroll(ctx context.Context, a scenario.Action) error {
	data, err := a.ScrollDataValue()
	if err != nil {
		return actionError(a, err)
	}
	sel := ""
	if a.Selector != nil {
		sel = a.Selector.Primary
	}
	if err := ex.driver.Scroll(ctx, sel, data.X, data.Y); err != nil {
		return actionError(a, err)
	}
	return nil
}

func (ex *Executor) dispatchHover(ctx context.Context, a scenario.Action) error {
	sel, err := selectorOf(a)
	if err != nil {
		return err
	}
	if err := ex.driver.Hover(ctx, sel); err != nil {
		return actionError(a, err)
	}
	return nil
}

func (ex *Executor) dispatchKeypress(ctx context.Context, a scenario.Action) error {
	data, err := a.KeypressDataValue()
	if err != nil {
		return actionError(a, err)
	}
	mods := make([]string, len(data.Modifiers))
	for i, m := range data.Modifiers {
		mods[i] = string(m)
	}
	if err := ex.driver.PressKey(ctx, data.Key, mods); err != nil {
		return actionError(a, err)
	}
	return nil
}

func (ex *Executor) dispatchWait(ctx context.Context, a scenario.Action) error {
	data, err := a.WaitDataValue()
	if err != nil {
		return actionError(a, err)
	}
	switch data.Mode {
	case scenario.WaitModeDuration:
		waitFixed(ctx, timeMs(data.Ms))
		return nil
	case scenario.WaitModeSelector:
		if data.Selector == nil {
			return scenarioerr.New(scenarioerr.KindValidation, scenarioerr.CodeInvalidScenario, "wait action in selector mode has no selector")
		}
		if err := ex.driver.WaitSelector(ctx, data.Selector.Primary, timeMs(data.TimeoutMs)); err != nil {
			return actionError(a, err)
		}
		return nil
	default:
		return scenarioerr.Newf(scenarioerr.KindValidation, scenarioerr.CodeInvalidScenario, "unknown wait mode %q", data.Mode)
	}
}

func (ex *Executor) dispatchUpload(ctx context.Context, a scenario.Action) error {
	sel, err := selectorOf(a)
	if err != nil {
		return err
	}
	data, err := a.UploadDataValue()
	if err != nil {
		return actionError(a, err)
	}
	if err := ex.driver.UploadFile(ctx, sel, data.FilePath); err != nil {
		return actionError(a, err)
	}
	return nil
}

func (ex *Executor) dispatchDrag(ctx context.Context, a scenario.Action) error {
	data, err := a.DragDataValue()
	if err != nil {
		return actionError(a, err)
	}
	from, err := dragPoint(data.Source)
	if err != nil {
		return actionError(a, err)
	}
	to, err := dragPoint(data.Target)
	if err != nil {
		return actionError(a, err)
	}
	if err := ex.driver.Drag(ctx, from, to); err != nil {
		return actionError(a, err)
	}
	return nil
}

func dragPoint(ep scenario.DragEndpoint) (pagedriver.Point, error) {
	if ep.Selector != nil && ep.Selector.Primary != "" {
		return pagedriver.Point{Selector: ep.Selector.Primary}, nil
	}
	if ep.X != nil && ep.Y != nil {
		return pagedriver.Point{X: *ep.X, Y: *ep.Y}, nil
	}
	return pagedriver.Point{}, fmt.Errorf("drag endpoint has neither a selector nor coordinates")
}

func (ex *Executor) dispatchNavigate(ctx context.Context, a scenario.Action) error {
	data, err := a.NavigateDataValue()
	if err != nil {
		return actionError(a, err)
	}
	if err := ex.driver.Navigate(ctx, data.URL); err != nil {
		return actionError(a, err)
	}
	return nil
}

func (ex *Executor) dispatchExtract(ctx context.Context, a scenario.Action) (any, error) {
	sel, err := selectorOf(a)
	if err != nil {
		return nil, err
	}
	data, err := a.ExtractDataValue()
	if err != nil {
		return nil, actionError(a, err)
	}
	value, err := extractValue(ctx, ex.driver, sel, data)
	if err != nil {
		return nil, actionError(a, err)
	}
	return value, nil
}
