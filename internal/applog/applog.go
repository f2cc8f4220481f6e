// Package applog builds the structured logger used across scenariomcp.
// gasoline-cmd carries no logging library of its own (just ad hoc
// fmt.Fprintf(os.Stderr, ...) calls); the rest of the example corpus
// settles on zerolog for exactly this "small service, structured JSON
// lines, dependency-injected *zerolog.Logger field" shape, so that is
// what scenariomcp adopts instead of keeping a bare Fprintf.
package applog

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New builds a zerolog.Logger writing level-tagged JSON lines to w. level
// is parsed case-insensitively ("debug", "info", "warn", "error"); an
// unrecognised or empty level defaults to info.
func New(level string, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Str("component", "scenariomcp").Logger()
}

// Console wraps New's output with zerolog's human-readable console writer,
// for the CLI's interactive (non-piped) use; the server always logs plain
// JSON lines since its stderr is read by tooling, not a human.
func Console(level string, w io.Writer) zerolog.Logger {
	return New(level, zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"})
}
