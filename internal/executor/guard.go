// guard.go — Evaluates the six guard kinds against the current execution
// context. A failed evaluation (unresolvable selector, expression error)
// yields false rather than propagating, mirroring the workflow engine's
// "undefined variable -> condition false" graceful-degradation idiom.
package executor

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
	"github.com/scenariomcp/scenariomcp/internal/scenario"
)

// guardEnv is the closed expression environment exposed to custom(expr)
// guards: current URL, title and the execution's variable map. Exposing
// exactly these three fields (no page/driver access) is the guard's
// security contract.
type guardEnv struct {
	URL       string         `expr:"url"`
	Title     string         `expr:"title"`
	Variables map[string]any `expr:"variables"`
}

// exprCache compiles each distinct custom(expr) guard expression once,
// mirroring the condition-evaluator compiled-program cache idiom.
type exprCache struct {
	mu      sync.Mutex
	program map[string]*vm.Program
}

func newExprCache() *exprCache {
	return &exprCache{program: map[string]*vm.Program{}}
}

func (c *exprCache) compile(src string) (*vm.Program, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.program[src]; ok {
		return p, nil
	}
	p, err := expr.Compile(src, expr.Env(guardEnv{}), expr.AsBool())
	if err != nil {
		return nil, err
	}
	c.program[src] = p
	return p, nil
}

// EvaluateGuard evaluates g against the driver-visible page state and the
// execution context's variables. A nil guard is always true.
func (ex *Executor) EvaluateGuard(ctx context.Context, g *scenario.Guard, execCtx *Context) bool {
	if g == nil {
		return true
	}

	switch g.Kind {
	case scenario.GuardIsAuthenticated:
		return ex.guardIsAuthenticated(ctx, execCtx)
	case scenario.GuardHasData:
		_, ok := execCtx.Variable(g.Key)
		return ok
	case scenario.GuardURLMatches:
		return ex.guardURLMatches(ctx, g.Pattern)
	case scenario.GuardElementExists:
		return ex.guardElementExists(ctx, g.Selector)
	case scenario.GuardVariableExists:
		_, ok := execCtx.Variable(g.Key)
		return ok
	case scenario.GuardCustom:
		return ex.guardCustom(ctx, g.Expr, execCtx)
	default:
		return false
	}
}

// candidateAuthCookieNames are checked individually since the page-control
// driver exposes presence-by-name, not full cookie enumeration.
var candidateAuthCookieNames = []string{
	"auth", "auth_token", "session", "sessionid", "session_id", "token", "access_token", "jwt",
}

func (ex *Executor) guardIsAuthenticated(ctx context.Context, execCtx *Context) bool {
	raw, err := ex.driver.Eval(ctx, isAuthenticatedScript)
	if err == nil {
		var authed bool
		if jsonUnmarshalBool(raw, &authed) && authed {
			return true
		}
	}
	for _, name := range candidateAuthCookieNames {
		if ok, err := ex.driver.Cookie(ctx, name); err == nil && ok {
			return true
		}
	}
	return false
}

func (ex *Executor) guardURLMatches(ctx context.Context, pattern string) bool {
	if pattern == "" {
		return false
	}
	url, err := ex.driver.URL(ctx)
	if err != nil {
		return false
	}
	if strings.Contains(url, pattern) {
		return true
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(url)
}

func (ex *Executor) guardElementExists(ctx context.Context, sel *scenario.Selector) bool {
	if sel == nil || sel.Primary == "" {
		return false
	}
	ok, err := elementExists(ctx, ex.driver, sel.Primary)
	return err == nil && ok
}

func (ex *Executor) guardCustom(ctx context.Context, src string, execCtx *Context) bool {
	if src == "" {
		return false
	}
	program, err := ex.exprCache.compile(src)
	if err != nil {
		return false
	}
	url, _ := ex.driver.URL(ctx)
	title, _ := ex.driver.Title(ctx)
	result, err := expr.Run(program, guardEnv{URL: url, Title: title, Variables: execCtx.Snapshot()})
	if err != nil {
		return false
	}
	ok, _ := result.(bool)
	return ok
}

// isAuthenticatedScript probes for a logout control or an authentication
// storage key as a page-content signal, used before falling back to the
// cookie-name heuristic.
const isAuthenticatedScript = `(() => {
  try {
    if (localStorage.getItem('auth_token') || localStorage.getItem('session') || localStorage.getItem('access_token')) {
      return true;
    }
  } catch (e) {}
  const text = document.body ? document.body.innerText.toLowerCase() : '';
  return text.includes('log out') || text.includes('logout') || text.includes('sign out');
})()`

func elementExists(ctx context.Context, d pagedriver.Driver, selector string) (bool, error) {
	raw, err := d.Eval(ctx, existsScript(selector))
	if err != nil {
		return false, err
	}
	var ok bool
	jsonUnmarshalBool(raw, &ok)
	return ok, nil
}

func existsScript(selector string) string {
	return "(() => { try { return document.querySelectorAll(" + jsonQuote(selector) + ").length > 0; } catch (e) { return false; } })()"
}
