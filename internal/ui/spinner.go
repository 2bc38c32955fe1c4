package ui

import (
	"context"

	"github.com/charmbracelet/huh/spinner"

	"secretariat/internal/domain"
)

var runSpinner = func(ctx context.Context, title string, action func(context.Context) error) error {
	return spinner.New().
		Title(" " + title).
		Context(ctx).
		ActionWithErr(action).
		Run()
}

// Spinner implements domain.Progress with the huh spinner. Without a
// terminal the action runs bare.
type Spinner struct {
	checker domain.InteractiveChecker
}

// NewSpinner creates a spinner progress indicator.
func NewSpinner(checker domain.InteractiveChecker) *Spinner {
	return &Spinner{checker: checker}
}

// Run shows title while fn runs. Run returns only after fn has returned,
// even when ctx is cancelled and the spinner stops first.
func (s *Spinner) Run(ctx context.Context, title string, fn func(ctx context.Context) error) error {
	if s.checker != nil && !s.checker.IsInteractive() {
		return fn(ctx)
	}

	var actionErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		actionErr = fn(ctx)
	}()

	spinErr := runSpinner(ctx, title, func(spinCtx context.Context) error {
		select {
		case <-done:
			return actionErr
		case <-spinCtx.Done():
			return spinCtx.Err()
		}
	})
	<-done

	if actionErr != nil {
		return actionErr
	}
	return spinErr
}

var _ domain.Progress = (*Spinner)(nil)
