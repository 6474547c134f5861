// Package scsslog is the structured-logging facade for the compiler
// (spec.md §7's warn/print/debug/fatal policy): @warn and @print messages
// go to Warn, @debug to Debug, and a compilation-aborting error to Fatal.
//
// Grounded on Conceptual-Machines-magda-api's zerolog usage (the one pack
// repo with a real structured-logging dependency; the teacher itself has no
// logger of its own), wired in here as the ambient-stack logging layer
// SPEC_FULL.md's AMBIENT STACK section calls for.
package scsslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger with the four SCSS diagnostic levels.
type Logger struct {
	zl zerolog.Logger
}

// New creates a Logger writing to w in zerolog's console-friendly format,
// the generalized equivalent of the magda-api repo's logger setup.
func New(w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{zl: zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).With().Timestamp().Logger()}
}

// Silent returns a Logger that discards everything, for library callers
// that don't want compiler diagnostics printed (spec.md §7's "silenceable"
// requirement).
func Silent() *Logger {
	return &Logger{zl: zerolog.New(io.Discard)}
}

// Warn logs an @warn/@print diagnostic.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.zl.Warn().Msg(msg)
}

// Debug logs an @debug diagnostic or internal trace note.
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.zl.Debug().Msg(msg)
}

// Fatal logs a compilation-aborting @error. Unlike zerolog's own Fatal, this
// does not call os.Exit -- the caller (Session.Compile) turns the @error
// into a returned Go error instead, per spec.md §4.G.
func (l *Logger) Fatal(msg string) {
	if l == nil {
		return
	}
	l.zl.Error().Msg(msg)
}
