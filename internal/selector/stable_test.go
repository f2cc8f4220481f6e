package selector

import "testing"

// ============================================
// IsStableClass
// ============================================

func TestIsStableClass(t *testing.T) {
	t.Parallel()
	cases := []struct {
		class string
		want  bool
	}{
		{"btn-primary", true},
		{"a", false},             // too short
		{"active", false},        // transient toggle
		{"hidden", false},        // transient toggle
		{"css-1a2b3c4d", false},  // digit run >= 4
		{"item-42", true},        // short digit run is fine
		{"nav-link", true},
	}
	for _, c := range cases {
		if got := IsStableClass(c.class); got != c.want {
			t.Errorf("IsStableClass(%q) = %v, want %v", c.class, got, c.want)
		}
	}
}

func TestStableClasses_FiltersAndPreservesOrder(t *testing.T) {
	t.Parallel()
	got := StableClasses([]string{"active", "btn", "hidden", "primary"})
	want := []string{"btn", "primary"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

// ============================================
// jsStringLiteral
// ============================================

func TestJSStringLiteral_EscapesQuotesAndBackslashes(t *testing.T) {
	t.Parallel()
	got := jsStringLiteral(`a"b\c`)
	want := `"a\"b\\c"`
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
