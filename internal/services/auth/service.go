// Package auth resolves a GitHub access token and binds it to a session.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"secretariat/internal/domain"
	"secretariat/internal/errors"
)

const (
	authenticatingTitle = "Authenticating you, please wait..."

	usernamePrompt   = "Enter your GitHub username or e-mail address:"
	usernameRequired = "Please enter your username or e-mail address."
	passwordPrompt   = "Enter your password:"
	passwordRequired = "Please enter your password."
	otpPrompt        = "Enter your two-factor authentication code:"
	otpRequired      = "Please enter your two-factor authentication code."
)

// Resolver returns a stored token or obtains a new one from the provider.
type Resolver struct {
	store     domain.CredentialStore
	exchanger domain.TokenExchanger
	prompter  domain.Prompter
	progress  domain.Progress
	tokenKey  string
	logger    *slog.Logger
}

// NewResolver creates a token resolver. tokenKey names the store entry.
func NewResolver(
	store domain.CredentialStore,
	exchanger domain.TokenExchanger,
	prompter domain.Prompter,
	progress domain.Progress,
	tokenKey string,
	logger *slog.Logger,
) *Resolver {
	return &Resolver{
		store:     store,
		exchanger: exchanger,
		prompter:  prompter,
		progress:  progress,
		tokenKey:  tokenKey,
		logger:    logger,
	}
}

// GetToken returns the stored token, or prompts for credentials, exchanges
// them for a new token and stores it.
func (r *Resolver) GetToken(ctx context.Context) (string, error) {
	token, ok, err := r.store.Get(ctx, r.tokenKey)
	if err != nil {
		return "", fmt.Errorf("failed to read credential store: %w", err)
	}
	if ok {
		r.logger.DebugContext(ctx, "Using stored GitHub token", "key", r.tokenKey)
		return token, nil
	}

	credential, err := r.askCredential(ctx)
	if err != nil {
		return "", err
	}

	result, err := r.exchange(ctx, func(ctx context.Context) (domain.ExchangeResult, error) {
		return r.exchanger.Exchange(ctx, credential)
	})
	if err != nil {
		return "", err
	}

	if result.NeedsSecondFactor() {
		challenge := *result.Challenge
		r.logger.DebugContext(ctx, "Second factor required", "method", challenge.Method)

		code, promptErr := r.prompter.Input(ctx, domain.Question{Title: otpPrompt, Required: otpRequired})
		if promptErr != nil {
			return "", promptErr
		}

		result, err = r.exchange(ctx, func(ctx context.Context) (domain.ExchangeResult, error) {
			return r.exchanger.Resume(ctx, challenge, code)
		})
		if err != nil {
			return "", err
		}
		if result.NeedsSecondFactor() {
			return "", errors.NewCredentialError(credential.Username, "two-factor authentication failed", nil)
		}
	}

	if result.Token == "" {
		return "", errors.NewCredentialError(credential.Username, "token not found in response", nil)
	}

	if err := r.store.Set(ctx, r.tokenKey, result.Token); err != nil {
		return "", fmt.Errorf("failed to store token: %w", err)
	}

	r.logger.InfoContext(ctx, "Stored new GitHub token", "username", credential.Username)
	return result.Token, nil
}

func (r *Resolver) askCredential(ctx context.Context) (domain.Credential, error) {
	username, err := r.prompter.Input(ctx, domain.Question{Title: usernamePrompt, Required: usernameRequired})
	if err != nil {
		return domain.Credential{}, err
	}

	password, err := r.prompter.Password(ctx, domain.Question{Title: passwordPrompt, Required: passwordRequired})
	if err != nil {
		return domain.Credential{}, err
	}

	return domain.Credential{Username: username, Password: password}, nil
}

// exchange runs one network phase under the progress indicator.
func (r *Resolver) exchange(
	ctx context.Context,
	phase func(ctx context.Context) (domain.ExchangeResult, error),
) (domain.ExchangeResult, error) {
	var result domain.ExchangeResult
	err := r.progress.Run(ctx, authenticatingTitle, func(ctx context.Context) error {
		var phaseErr error
		result, phaseErr = phase(ctx)
		return phaseErr
	})
	return result, err
}
