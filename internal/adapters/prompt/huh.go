// Package prompt implements interactive questions with the huh TUI library.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"secretariat/internal/adapters/terminal"
	"secretariat/internal/domain"
)

var runInputPrompt = func(
	ctx context.Context,
	title string,
	mode huh.EchoMode,
	validate func(string) error,
	input *string,
) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			EchoMode(mode).
			Validate(validate).
			Value(input),
	)).RunWithContext(ctx)
}

var runSelectPrompt = func(ctx context.Context, title string, options []huh.Option[string], selected *string) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title(title).
			Options(options...).
			Value(selected),
	)).RunWithContext(ctx)
}

var runMultiSelectPrompt = func(
	ctx context.Context,
	title string,
	options []huh.Option[string],
	selected *[]string,
) error {
	return huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title(title).
			Options(options...).
			Value(selected),
	)).RunWithContext(ctx)
}

// HuhPrompter implements domain.Prompter. Required questions keep the
// prompt open until a non-blank answer is given.
type HuhPrompter struct {
	checker domain.InteractiveChecker
}

// NewHuhPrompter creates a prompter that refuses to run without a terminal.
func NewHuhPrompter(checker domain.InteractiveChecker) *HuhPrompter {
	return &HuhPrompter{checker: checker}
}

func (p *HuhPrompter) Input(ctx context.Context, q domain.Question) (string, error) {
	answer, err := p.ask(ctx, q, huh.EchoModeNormal)
	if err != nil {
		return "", fmt.Errorf("prompt input: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func (p *HuhPrompter) Password(ctx context.Context, q domain.Question) (string, error) {
	answer, err := p.ask(ctx, q, huh.EchoModePassword)
	if err != nil {
		return "", fmt.Errorf("prompt password: %w", err)
	}
	return answer, nil
}

func (p *HuhPrompter) Select(ctx context.Context, title string, options []string, defaultValue string) (string, error) {
	if err := p.ensureInteractive(); err != nil {
		return "", fmt.Errorf("prompt select: %w", err)
	}

	selected := defaultValue
	err := runSelectPrompt(ctx, title, huh.NewOptions(options...), &selected)
	if err != nil {
		return "", fmt.Errorf("prompt select: %w", err)
	}
	return selected, nil
}

func (p *HuhPrompter) MultiSelect(ctx context.Context, title string, options, defaults []string) ([]string, error) {
	if len(options) == 0 {
		return nil, nil
	}
	if err := p.ensureInteractive(); err != nil {
		return nil, fmt.Errorf("prompt multi-select: %w", err)
	}

	preselected := make(map[string]bool, len(defaults))
	for _, d := range defaults {
		preselected[d] = true
	}

	huhOptions := make([]huh.Option[string], len(options))
	selected := make([]string, 0, len(defaults))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt, opt).Selected(preselected[opt])
		if preselected[opt] {
			selected = append(selected, opt)
		}
	}

	if err := runMultiSelectPrompt(ctx, title, huhOptions, &selected); err != nil {
		return nil, fmt.Errorf("prompt multi-select: %w", err)
	}
	return selected, nil
}

func (p *HuhPrompter) ask(ctx context.Context, q domain.Question, mode huh.EchoMode) (string, error) {
	if err := p.ensureInteractive(); err != nil {
		return "", err
	}

	answer := q.Default
	if err := runInputPrompt(ctx, q.Title, mode, required(q.Required), &answer); err != nil {
		return "", err
	}
	return answer, nil
}

func (p *HuhPrompter) ensureInteractive() error {
	if p.checker != nil && !p.checker.IsInteractive() {
		return terminal.ErrNotInteractive
	}
	return nil
}

// required rejects blank answers with message. An empty message accepts anything.
func required(message string) func(string) error {
	return func(s string) error {
		if message != "" && strings.TrimSpace(s) == "" {
			return errors.New(message)
		}
		return nil
	}
}

// IsAborted reports whether the user cancelled a prompt.
func IsAborted(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}

var _ domain.Prompter = (*HuhPrompter)(nil)
