package executor

import (
	"context"
	"testing"

	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

func newTestExecutor(d *pagedriver.FakeDriver) *Executor {
	return New(d, mapLoader{}, Config{})
}

func TestEvaluateGuard_NilGuardIsTrue(t *testing.T) {
	ex := newTestExecutor(pagedriver.NewFakeDriver())
	if !ex.EvaluateGuard(context.Background(), nil, NewContext(nil)) {
		t.Fatalf("nil guard should evaluate true")
	}
}

func TestEvaluateGuard_IsAuthenticatedViaCookie(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	d.Cookies["session"] = true
	ex := newTestExecutor(d)
	g := &scenario.Guard{Kind: scenario.GuardIsAuthenticated}
	if !ex.EvaluateGuard(context.Background(), g, NewContext(nil)) {
		t.Fatalf("expected isAuthenticated true via cookie")
	}
}

func TestEvaluateGuard_IsAuthenticatedFalseWithoutSignal(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	ex := newTestExecutor(d)
	g := &scenario.Guard{Kind: scenario.GuardIsAuthenticated}
	if ex.EvaluateGuard(context.Background(), g, NewContext(nil)) {
		t.Fatalf("expected isAuthenticated false with no signal")
	}
}

func TestEvaluateGuard_HasData(t *testing.T) {
	ex := newTestExecutor(pagedriver.NewFakeDriver())
	execCtx := NewContext(map[string]any{"token": "abc"})
	g := &scenario.Guard{Kind: scenario.GuardHasData, Key: "token"}
	if !ex.EvaluateGuard(context.Background(), g, execCtx) {
		t.Fatalf("expected hasData true")
	}
	g2 := &scenario.Guard{Kind: scenario.GuardHasData, Key: "missing"}
	if ex.EvaluateGuard(context.Background(), g2, execCtx) {
		t.Fatalf("expected hasData false for missing key")
	}
}

func TestEvaluateGuard_URLMatches(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	d.CurrentURL = "https://example.com/checkout/confirm"
	ex := newTestExecutor(d)
	g := &scenario.Guard{Kind: scenario.GuardURLMatches, Pattern: "checkout"}
	if !ex.EvaluateGuard(context.Background(), g, NewContext(nil)) {
		t.Fatalf("expected urlMatches true for substring pattern")
	}
	g2 := &scenario.Guard{Kind: scenario.GuardURLMatches, Pattern: "^https://example.com/admin"}
	if ex.EvaluateGuard(context.Background(), g2, NewContext(nil)) {
		t.Fatalf("expected urlMatches false for non-matching regex")
	}
}

func TestEvaluateGuard_ElementExists(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	d.EvalResults[existsScript("#banner")] = []byte("true")
	ex := newTestExecutor(d)
	g := &scenario.Guard{Kind: scenario.GuardElementExists, Selector: &scenario.Selector{Primary: "#banner"}}
	if !ex.EvaluateGuard(context.Background(), g, NewContext(nil)) {
		t.Fatalf("expected elementExists true")
	}
}

func TestEvaluateGuard_VariableExists(t *testing.T) {
	ex := newTestExecutor(pagedriver.NewFakeDriver())
	execCtx := NewContext(map[string]any{"cartId": "123"})
	g := &scenario.Guard{Kind: scenario.GuardVariableExists, Key: "cartId"}
	if !ex.EvaluateGuard(context.Background(), g, execCtx) {
		t.Fatalf("expected variableExists true")
	}
}

func TestEvaluateGuard_CustomExpression(t *testing.T) {
	d := pagedriver.NewFakeDriver()
	d.CurrentURL = "https://example.com/cart"
	ex := newTestExecutor(d)
	execCtx := NewContext(nil)
	g := &scenario.Guard{Kind: scenario.GuardCustom, Expr: `url contains "cart"`}
	if !ex.EvaluateGuard(context.Background(), g, execCtx) {
		t.Fatalf("expected custom expression true")
	}
}

func TestEvaluateGuard_CustomExpressionUndefinedVariableIsFalse(t *testing.T) {
	ex := newTestExecutor(pagedriver.NewFakeDriver())
	g := &scenario.Guard{Kind: scenario.GuardCustom, Expr: `notAField == 1`}
	if ex.EvaluateGuard(context.Background(), g, NewContext(nil)) {
		t.Fatalf("expected compile failure on undefined field to yield false")
	}
}
