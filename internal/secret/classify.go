// classify.go — Kind detection and parameter naming, gated behind
// FormContext.IsAuthenticationForm.
package secret

// Kind is the detected category of a secret input.
type Kind string

const (
	KindPassword Kind = "password"
	KindEmail    Kind = "email"
	KindPhone    Kind = "phone"
	KindOTP      Kind = "otp"
	KindToken    Kind = "token"
)

// Result is the outcome of classifying one input.
type Result struct {
	IsSecret      bool
	Kind          Kind
	ParameterName string
}

// Classify runs the gate, then kind detection in priority order, then
// derives the parameter name. Inputs outside an authentication form are
// never classified as secret regardless of field type.
func Classify(f FormContext) Result {
	if !f.IsAuthenticationForm() {
		return Result{}
	}

	probe := f.inputProbe()

	switch {
	case f.InputType == "password" || containsAny(probe, passwordKeywords):
		return Result{IsSecret: true, Kind: KindPassword, ParameterName: withModifier(KindPassword, f)}
	case f.InputType == "email" || containsAny(probe, emailKeywords):
		return Result{IsSecret: true, Kind: KindEmail, ParameterName: withModifier(KindEmail, f)}
	case f.InputType == "tel" || containsAny(probe, phoneKeywords):
		return Result{IsSecret: true, Kind: KindPhone, ParameterName: withModifier(KindPhone, f)}
	case isOTPCandidate(f, probe):
		return Result{IsSecret: true, Kind: KindOTP, ParameterName: withModifier(KindOTP, f)}
	case containsAny(probe, tokenKeywords):
		return Result{IsSecret: true, Kind: KindToken, ParameterName: withModifier(KindToken, f)}
	default:
		return Result{}
	}
}

// isOTPCandidate matches a text field referencing a verification keyword
// whose maxlength is in the short numeric-code range.
func isOTPCandidate(f FormContext, probe string) bool {
	if f.InputType != "" && f.InputType != "text" && f.InputType != "number" {
		return false
	}
	if !containsAny(probe, otpKeywords) {
		return false
	}
	return f.MaxLength == 0 || (f.MaxLength >= 4 && f.MaxLength <= 8)
}

// withModifier derives the final parameter name: the kind name, suffixed
// with _confirm/_new/_old when the input's name/id carries that modifier.
func withModifier(kind Kind, f FormContext) string {
	probe := f.InputName + " " + f.InputID
	for _, m := range modifierSuffixes {
		if containsFold(probe, m.keyword) {
			return string(kind) + m.suffix
		}
	}
	return string(kind)
}
