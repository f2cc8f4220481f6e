package finder

import "testing"

func TestScore_ExactTextMatchRanksHighest(t *testing.T) {
	t.Parallel()
	exact, _ := score("Submit order", rawCandidate{Text: "Submit order"})
	partial, _ := score("Submit order", rawCandidate{Text: "Submit order now please"})
	if exact <= partial {
		t.Fatalf("exact match score %v should exceed partial match score %v", exact, partial)
	}
}

func TestScore_DataTestIDOutweighsText(t *testing.T) {
	t.Parallel()
	byTestID, _ := score("checkout button", rawCandidate{DataTestID: "checkout button"})
	byText, _ := score("checkout button", rawCandidate{Text: "checkout button"})
	if byTestID <= byText {
		t.Fatalf("data-testid score %v should exceed text score %v", byTestID, byText)
	}
}

func TestScore_NoOverlapIsZero(t *testing.T) {
	t.Parallel()
	s, reasons := score("checkout button", rawCandidate{Text: "unrelated label"})
	if s != 0 {
		t.Fatalf("score = %v, want 0", s)
	}
	if reasons != nil {
		t.Fatalf("reasons = %v, want nil", reasons)
	}
}

func TestScore_EmptyDescriptionIsZero(t *testing.T) {
	t.Parallel()
	s, _ := score("", rawCandidate{Text: "anything"})
	if s != 0 {
		t.Fatalf("score = %v, want 0", s)
	}
}

func TestScore_WordOverlapContributesPartialCredit(t *testing.T) {
	t.Parallel()
	s, reasons := score("confirm shipping address", rawCandidate{Text: "shipping address line"})
	if s <= 0 {
		t.Fatalf("score = %v, want > 0", s)
	}
	if len(reasons) == 0 {
		t.Fatal("expected at least one reason for a partial overlap match")
	}
}
