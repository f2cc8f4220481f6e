package secret

import "testing"

// ============================================
// Gate
// ============================================

func TestClassify_OutsideAuthFormNeverSecret(t *testing.T) {
	t.Parallel()
	f := FormContext{InputType: "password"}
	got := Classify(f)
	if got.IsSecret {
		t.Error("password field outside an authentication form should not classify as secret")
	}
}

func TestClassify_PasswordTypeGatesFormAsAuth(t *testing.T) {
	t.Parallel()
	f := FormContext{HasPasswordField: true, InputType: "password"}
	got := Classify(f)
	if !got.IsSecret || got.Kind != KindPassword {
		t.Errorf("got %+v, want secret password", got)
	}
}

func TestClassify_AuthKeywordGatesForm(t *testing.T) {
	t.Parallel()
	f := FormContext{FormID: "login-form", InputType: "email"}
	got := Classify(f)
	if !got.IsSecret || got.Kind != KindEmail {
		t.Errorf("got %+v, want secret email", got)
	}
}

// ============================================
// Kind priority
// ============================================

func TestClassify_PasswordTakesPriorityOverOtherKeywords(t *testing.T) {
	t.Parallel()
	f := FormContext{FormID: "signin", InputType: "password", InputName: "token_password"}
	got := Classify(f)
	if got.Kind != KindPassword {
		t.Errorf("got kind %v, want password", got.Kind)
	}
}

func TestClassify_OTPRequiresShortMaxLength(t *testing.T) {
	t.Parallel()
	f := FormContext{FormID: "verify-account", InputType: "text", InputName: "verification_code", MaxLength: 6}
	got := Classify(f)
	if !got.IsSecret || got.Kind != KindOTP {
		t.Errorf("got %+v, want secret otp", got)
	}

	f.MaxLength = 40
	got = Classify(f)
	if got.IsSecret {
		t.Error("long maxlength verification field should not classify as otp")
	}
}

// ============================================
// Parameter naming
// ============================================

func TestClassify_ModifierSuffix(t *testing.T) {
	t.Parallel()
	f := FormContext{FormID: "register", InputType: "password", InputName: "password_confirm"}
	got := Classify(f)
	if got.ParameterName != "password_confirm" {
		t.Errorf("got %q, want password_confirm", got.ParameterName)
	}
}

func TestClassify_NoModifierUsesBareKindName(t *testing.T) {
	t.Parallel()
	f := FormContext{FormID: "login", InputType: "password", InputName: "pwd"}
	got := Classify(f)
	if got.ParameterName != "password" {
		t.Errorf("got %q, want password", got.ParameterName)
	}
}
