// Package testutil provides test utilities and constructors with pre-injected dependencies.
package testutil

import (
	"context"
	"log/slog"

	"secretariat/internal/logging"
)

// Logger returns a test logger for use in tests.
func Logger() *slog.Logger {
	return logging.NewTestLogger()
}

// Progress records every indicator it shows. Active is true only while an
// action is running.
type Progress struct {
	Titles  []string
	Started int
	Stopped int
	Active  bool
}

// Run implements domain.Progress.
func (p *Progress) Run(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	p.Titles = append(p.Titles, title)
	p.Started++
	p.Active = true
	defer func() {
		p.Active = false
		p.Stopped++
	}()
	return fn(ctx)
}

// Reporter records every line it is asked to print, keyed by level.
type Reporter struct {
	Lines map[string][]string
}

// NewReporter creates an empty recording reporter.
func NewReporter() *Reporter {
	return &Reporter{Lines: map[string][]string{}}
}

func (r *Reporter) record(level, msg string) { r.Lines[level] = append(r.Lines[level], msg) }

func (r *Reporter) Banner(title string) { r.record("banner", title) }
func (r *Reporter) Success(msg string)  { r.record("success", msg) }
func (r *Reporter) Info(msg string)     { r.record("info", msg) }
func (r *Reporter) Log(msg string)      { r.record("log", msg) }
func (r *Reporter) Warn(msg string)     { r.record("warn", msg) }
func (r *Reporter) Error(msg string)    { r.record("error", msg) }
