package executor

import "encoding/json"

// jsonUnmarshalBool decodes raw into *dst, leaving *dst false on any
// decode error. Returns whether decoding succeeded, so callers can choose
// to fall through to a secondary signal on failure.
func jsonUnmarshalBool(raw json.RawMessage, dst *bool) bool {
	return json.Unmarshal(raw, dst) == nil
}

// jsonQuote renders s as a JSON string literal, for building small inline
// Eval scripts without risking injection through an unescaped selector.
func jsonQuote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		s := string(b)
		if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
			var unquoted string
			if json.Unmarshal(b, &unquoted) == nil {
				return unquoted
			}
		}
		return s
	}
}
