package domain

import "context"

// Credential is a username/password pair used for a single token exchange.
// It is never persisted.
type Credential struct {
	Username string
	Password string
}

// SecondFactorChallenge is returned by the first exchange phase when the
// provider wants a one-time code before issuing a token.
type SecondFactorChallenge struct {
	Credential Credential
	// Method is the delivery channel reported by the provider (app, sms).
	Method string
}

// ExchangeResult is the outcome of one exchange phase. Exactly one of Token
// and Challenge is set.
type ExchangeResult struct {
	Token     string
	Challenge *SecondFactorChallenge
}

// NeedsSecondFactor reports whether the exchange is suspended on a one-time code.
func (r ExchangeResult) NeedsSecondFactor() bool {
	return r.Challenge != nil
}

// TokenExchanger trades basic credentials for a long-lived access token.
type TokenExchanger interface {
	Exchange(ctx context.Context, credential Credential) (ExchangeResult, error)
	Resume(ctx context.Context, challenge SecondFactorChallenge, code string) (ExchangeResult, error)
}

// CredentialStore persists tokens keyed by application identity.
type CredentialStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
