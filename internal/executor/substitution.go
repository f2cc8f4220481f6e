// substitution.go — Deep parameter substitution over an action's string
// fields: every {{name}} is replaced by the current value of name, left
// unresolved (and unreported) if name has no binding. Operates on the
// decoded kind-specific payload, not on raw JSON, so it never corrupts the
// envelope's non-string fields.
package executor

import (
	"regexp"

	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// substituteString rewrites every {{name}} occurrence in s using ctx's
// bindings. A placeholder with no binding is left exactly as written.
func substituteString(s string, ctx *Context) string {
	if s == "" {
		return s
	}
	return placeholderPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if v, ok := ctx.StringValue(name); ok {
			return v
		}
		return match
	})
}

// substituteAction returns a clone of a with every placeholder-bearing
// string field in its decoded payload substituted. Only the fields the
// recorder ever fills with a {{param}} placeholder are touched; everything
// else round-trips unchanged through the re-marshal.
func substituteAction(a scenario.Action, ctx *Context) (scenario.Action, error) {
	out := a.Clone()

	switch a.Kind {
	case scenario.KindType:
		data, err := a.TypeDataValue()
		if err != nil {
			return out, err
		}
		data.Text = substituteString(data.Text, ctx)
		return scenario.NewAction(a.Kind, out.Selector, a.TimestampMs, data)
	case scenario.KindUpload:
		data, err := a.UploadDataValue()
		if err != nil {
			return out, err
		}
		data.FilePath = substituteString(data.FilePath, ctx)
		return scenario.NewAction(a.Kind, out.Selector, a.TimestampMs, data)
	case scenario.KindSelect:
		data, err := a.SelectDataValue()
		if err != nil {
			return out, err
		}
		data.Value = substituteString(data.Value, ctx)
		return scenario.NewAction(a.Kind, out.Selector, a.TimestampMs, data)
	case scenario.KindNavigate:
		data, err := a.NavigateDataValue()
		if err != nil {
			return out, err
		}
		data.URL = substituteString(data.URL, ctx)
		return scenario.NewAction(a.Kind, out.Selector, a.TimestampMs, data)
	default:
		return out, nil
	}
}
