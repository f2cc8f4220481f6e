package selector

import (
	"context"
	"testing"

	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
)

// ============================================
// VerifyUnique / FirstUnique
// ============================================

func TestVerifyUnique(t *testing.T) {
	t.Parallel()
	d := pagedriver.NewFakeDriver()
	d.EvalResults[VerifyUniqueScript("#ok")] = []byte("true")
	d.EvalResults[VerifyUniqueScript("#dup")] = []byte("false")

	ok, err := VerifyUnique(context.Background(), d, "#ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected #ok to verify unique")
	}

	ok, err = VerifyUnique(context.Background(), d, "#dup")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected #dup to not verify unique")
	}
}

func TestFirstUnique_ReturnsFirstVerifiedCandidate(t *testing.T) {
	t.Parallel()
	d := pagedriver.NewFakeDriver()
	d.EvalResults[VerifyUniqueScript("#missing")] = []byte("false")
	d.EvalResults[VerifyUniqueScript(".stable")] = []byte("true")

	got, err := FirstUnique(context.Background(), d, []string{"#missing", ".stable"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ".stable" {
		t.Errorf("got %q, want .stable", got)
	}
}

func TestFirstUnique_NoneVerify(t *testing.T) {
	t.Parallel()
	d := pagedriver.NewFakeDriver()

	got, err := FirstUnique(context.Background(), d, []string{"#a", "#b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
