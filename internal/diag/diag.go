// Package diag provides an explicit diagnostics sink for the planning
// pipeline.
//
// Recoverable planning conditions (a skipped installer, a missing download
// URL) are warnings, not errors: they reduce what ends up in the plan but
// never abort it. Routing them through a Sink instead of a global logger
// keeps the planner a pure function of its inputs and lets tests assert on
// exactly which warnings were produced.
package diag

import (
	"fmt"
	"log/slog"
)

// Sink receives non-fatal diagnostics emitted during planning.
type Sink interface {
	// Warn reports a recoverable condition. Arguments follow the slog
	// key/value convention.
	Warn(msg string, args ...any)
}

// loggerSink forwards diagnostics to a slog.Logger.
type loggerSink struct {
	logger *slog.Logger
}

// Logger returns a Sink that forwards every warning to the given logger.
func Logger(logger *slog.Logger) Sink {
	return &loggerSink{logger: logger}
}

func (s *loggerSink) Warn(msg string, args ...any) {
	s.logger.Warn(msg, args...)
}

// Recorder is a Sink that captures warnings in memory. Intended for tests
// and for callers that want to surface the warning list as part of their
// output. Not safe for concurrent use; planning is single-threaded.
type Recorder struct {
	Warnings []string
}

func (r *Recorder) Warn(msg string, args ...any) {
	if len(args) == 0 {
		r.Warnings = append(r.Warnings, msg)
		return
	}
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s %v", msg, args))
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Warn(string, ...any) {}
