package domain

import "context"

// Question is a single free-text prompt.
type Question struct {
	Title   string
	Default string
	// Required holds the message shown when an empty answer is rejected.
	// Empty means the answer is optional.
	Required string
}

// Prompter handles interactive input. Every method returns a validated
// answer or re-prompts until it gets one.
type Prompter interface {
	Input(ctx context.Context, q Question) (string, error)
	Password(ctx context.Context, q Question) (string, error)
	Select(ctx context.Context, title string, options []string, defaultValue string) (string, error)
	MultiSelect(ctx context.Context, title string, options, defaults []string) ([]string, error)
}

// Progress shows an activity indicator for exactly the lifetime of fn.
type Progress interface {
	Run(ctx context.Context, title string, fn func(ctx context.Context) error) error
}

// InteractiveChecker reports whether a human is attached to the terminal.
type InteractiveChecker interface {
	IsInteractive() bool
}

// Reporter prints user-facing status lines.
type Reporter interface {
	Banner(title string)
	Success(msg string)
	Info(msg string)
	Log(msg string)
	Warn(msg string)
	Error(msg string)
}
