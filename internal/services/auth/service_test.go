package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"secretariat/internal/domain"
	apperrors "secretariat/internal/errors"
	"secretariat/internal/mocks"
	"secretariat/internal/testutil"
)

const testKey = "github.token"

type resolverFixture struct {
	store     *mocks.MockCredentialStore
	exchanger *mocks.MockTokenExchanger
	prompter  *mocks.MockPrompter
	progress  *testutil.Progress
	resolver  *Resolver
}

func newResolverFixture(t *testing.T) *resolverFixture {
	f := &resolverFixture{
		store:     mocks.NewMockCredentialStore(t),
		exchanger: mocks.NewMockTokenExchanger(t),
		prompter:  mocks.NewMockPrompter(t),
		progress:  &testutil.Progress{},
	}
	f.resolver = NewResolver(f.store, f.exchanger, f.prompter, f.progress, testKey, testutil.Logger())
	return f
}

func (f *resolverFixture) expectCredentialPrompts() {
	f.prompter.On("Input", mock.Anything, domain.Question{Title: usernamePrompt, Required: usernameRequired}).
		Return("octocat", nil).Once()
	f.prompter.On("Password", mock.Anything, domain.Question{Title: passwordPrompt, Required: passwordRequired}).
		Return("hunter2", nil).Once()
}

var credential = domain.Credential{Username: "octocat", Password: "hunter2"}

func TestGetToken_StoredTokenSkipsPromptsAndExchange(t *testing.T) {
	f := newResolverFixture(t)
	f.store.On("Get", mock.Anything, testKey).Return("ghp_stored", true, nil)

	token, err := f.resolver.GetToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ghp_stored", token)
	f.prompter.AssertNotCalled(t, "Input", mock.Anything, mock.Anything)
	f.exchanger.AssertNotCalled(t, "Exchange", mock.Anything, mock.Anything)
	assert.Zero(t, f.progress.Started)
}

func TestGetToken_ExchangesAndPersists(t *testing.T) {
	f := newResolverFixture(t)
	f.store.On("Get", mock.Anything, testKey).Return("", false, nil).Once()
	f.expectCredentialPrompts()
	f.exchanger.On("Exchange", mock.Anything, credential).
		Run(func(mock.Arguments) { assert.True(t, f.progress.Active) }).
		Return(domain.ExchangeResult{Token: "ghp_new"}, nil).Once()
	f.store.On("Set", mock.Anything, testKey, "ghp_new").Return(nil).Once()

	token, err := f.resolver.GetToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ghp_new", token)
	assert.Equal(t, []string{authenticatingTitle}, f.progress.Titles)
	assert.Equal(t, f.progress.Started, f.progress.Stopped)
}

func TestGetToken_SecondCallUsesStore(t *testing.T) {
	f := newResolverFixture(t)
	f.store.On("Get", mock.Anything, testKey).Return("", false, nil).Once()
	f.expectCredentialPrompts()
	f.exchanger.On("Exchange", mock.Anything, credential).
		Return(domain.ExchangeResult{Token: "ghp_new"}, nil).Once()
	f.store.On("Set", mock.Anything, testKey, "ghp_new").Return(nil).Once()
	f.store.On("Get", mock.Anything, testKey).Return("ghp_new", true, nil).Once()

	first, err := f.resolver.GetToken(context.Background())
	require.NoError(t, err)

	second, err := f.resolver.GetToken(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	f.exchanger.AssertNumberOfCalls(t, "Exchange", 1)
	f.prompter.AssertNumberOfCalls(t, "Password", 1)
}

func TestGetToken_SecondFactor(t *testing.T) {
	f := newResolverFixture(t)
	challenge := domain.SecondFactorChallenge{Credential: credential, Method: "app"}

	f.store.On("Get", mock.Anything, testKey).Return("", false, nil)
	f.expectCredentialPrompts()
	f.exchanger.On("Exchange", mock.Anything, credential).
		Return(domain.ExchangeResult{Challenge: &challenge}, nil).Once()
	f.prompter.On("Input", mock.Anything, domain.Question{Title: otpPrompt, Required: otpRequired}).
		Run(func(mock.Arguments) {
			assert.False(t, f.progress.Active, "indicator must be stopped while asking for the code")
		}).
		Return("123456", nil).Once()
	f.exchanger.On("Resume", mock.Anything, challenge, "123456").
		Run(func(mock.Arguments) { assert.True(t, f.progress.Active) }).
		Return(domain.ExchangeResult{Token: "ghp_2fa"}, nil).Once()
	f.store.On("Set", mock.Anything, testKey, "ghp_2fa").Return(nil)

	token, err := f.resolver.GetToken(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ghp_2fa", token)
	assert.Equal(t, 2, f.progress.Started)
	assert.Equal(t, 2, f.progress.Stopped)
	assert.False(t, f.progress.Active)
}

func TestGetToken_InvalidCredentials(t *testing.T) {
	f := newResolverFixture(t)
	f.store.On("Get", mock.Anything, testKey).Return("", false, nil)
	f.expectCredentialPrompts()
	f.exchanger.On("Exchange", mock.Anything, credential).
		Return(domain.ExchangeResult{}, apperrors.NewCredentialError("octocat", "invalid username or password", nil))

	_, err := f.resolver.GetToken(context.Background())

	require.Error(t, err)
	assert.Equal(t, apperrors.KindCredential, apperrors.KindOf(err))
	f.store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	assert.False(t, f.progress.Active)
	assert.Equal(t, 1, f.progress.Stopped)
}

func TestGetToken_FailedSecondFactor(t *testing.T) {
	f := newResolverFixture(t)
	challenge := domain.SecondFactorChallenge{Credential: credential, Method: "sms"}

	f.store.On("Get", mock.Anything, testKey).Return("", false, nil)
	f.expectCredentialPrompts()
	f.exchanger.On("Exchange", mock.Anything, credential).
		Return(domain.ExchangeResult{Challenge: &challenge}, nil)
	f.prompter.On("Input", mock.Anything, domain.Question{Title: otpPrompt, Required: otpRequired}).
		Return("000000", nil)
	f.exchanger.On("Resume", mock.Anything, challenge, "000000").
		Return(domain.ExchangeResult{}, apperrors.NewCredentialError("octocat", "two-factor authentication failed", nil))

	_, err := f.resolver.GetToken(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsCredential(err))
	f.store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetToken_EmptyTokenIsCredentialError(t *testing.T) {
	f := newResolverFixture(t)
	f.store.On("Get", mock.Anything, testKey).Return("", false, nil)
	f.expectCredentialPrompts()
	f.exchanger.On("Exchange", mock.Anything, credential).Return(domain.ExchangeResult{}, nil)

	_, err := f.resolver.GetToken(context.Background())

	require.Error(t, err)
	assert.Equal(t, "token not found in response", err.Error())
}

func TestGetToken_StoreErrors(t *testing.T) {
	t.Run("read", func(t *testing.T) {
		f := newResolverFixture(t)
		f.store.On("Get", mock.Anything, testKey).Return("", false, errors.New("corrupt"))

		_, err := f.resolver.GetToken(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read credential store")
		f.prompter.AssertNotCalled(t, "Input", mock.Anything, mock.Anything)
	})

	t.Run("write", func(t *testing.T) {
		f := newResolverFixture(t)
		f.store.On("Get", mock.Anything, testKey).Return("", false, nil)
		f.expectCredentialPrompts()
		f.exchanger.On("Exchange", mock.Anything, credential).Return(domain.ExchangeResult{Token: "ghp_new"}, nil)
		f.store.On("Set", mock.Anything, testKey, "ghp_new").Return(errors.New("read-only"))

		_, err := f.resolver.GetToken(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to store token")
	})
}

func TestGetToken_PromptAbortStopsBeforeExchange(t *testing.T) {
	f := newResolverFixture(t)
	f.store.On("Get", mock.Anything, testKey).Return("", false, nil)
	f.prompter.On("Input", mock.Anything, mock.Anything).Return("", errors.New("user aborted"))

	_, err := f.resolver.GetToken(context.Background())

	require.Error(t, err)
	f.exchanger.AssertNotCalled(t, "Exchange", mock.Anything, mock.Anything)
	assert.Zero(t, f.progress.Started)
}
