// Package executor implements dependency resolution, conditional
// execution, per-action dispatch with retry/fallback/smart-find recovery,
// and the structured diagnostic contract a failed run hands back to the
// calling agent.
package executor

import (
	"time"

	"github.com/scenariomcp/scenariomcp/internal/finder"
	"github.com/scenariomcp/scenariomcp/internal/pagedriver"
)

// Config tunes the retry/settlement knobs; zero values fall back to the
// defaults below.
type Config struct {
	MaxRetries          int
	RetryDelay          time.Duration
	SettlementMinWait   time.Duration
	AnimationCap        time.Duration
	NetworkIdleCap      time.Duration
	MutationQuietCap    time.Duration
	NetworkIdleWindow   time.Duration
	MutationQuietWindow time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
	if c.SettlementMinWait <= 0 {
		c.SettlementMinWait = 2 * time.Second
	}
	if c.AnimationCap <= 0 {
		c.AnimationCap = 3 * time.Second
	}
	if c.NetworkIdleCap <= 0 {
		c.NetworkIdleCap = 5 * time.Second
	}
	if c.MutationQuietCap <= 0 {
		c.MutationQuietCap = 3 * time.Second
	}
	if c.NetworkIdleWindow <= 0 {
		c.NetworkIdleWindow = 500 * time.Millisecond
	}
	if c.MutationQuietWindow <= 0 {
		c.MutationQuietWindow = 300 * time.Millisecond
	}
	return c
}

// Executor replays scenario chains against a single page-control driver.
// Not safe for concurrent Execute calls against the same Executor: the
// design assumes a single-threaded cooperative scheduler (callers
// serialise their own runs).
type Executor struct {
	driver    pagedriver.Driver
	loader    ScenarioLoader
	cfg       Config
	exprCache *exprCache
}

// New builds an Executor. loader resolves scenario documents (normally
// *store.Store); driver is the live page-control surface (or a
// pagedriver.FakeDriver in tests).
func New(driver pagedriver.Driver, loader ScenarioLoader, cfg Config) *Executor {
	return &Executor{driver: driver, loader: loader, cfg: cfg.withDefaults(), exprCache: newExprCache()}
}

// find is the smart-finder hook, split out so tests can stub it without a
// real page.
var findFunc = finder.Find
