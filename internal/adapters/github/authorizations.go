package github

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"secretariat/internal/domain"
	"secretariat/internal/errors"
)

const (
	authorizationsPath = "authorizations"
	otpHeader          = "X-GitHub-OTP"
	otpRequired        = "required"
)

// AuthorizationConfig describes the token requested from GitHub.
type AuthorizationConfig struct {
	APIURL string
	Scopes []string
	Note   string
}

// authorizationRequest is the JSON body of POST /authorizations.
type authorizationRequest struct {
	Scopes      []string `json:"scopes"`
	Note        string   `json:"note"`
	Fingerprint string   `json:"fingerprint"`
}

// authorizationResponse holds the fields we read back.
type authorizationResponse struct {
	ID    int64  `json:"id"`
	Token string `json:"token"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Exchanger trades a username and password for a personal access token using
// the GitHub authorizations API.
type Exchanger struct {
	http        domain.HTTPAdapter
	cfg         AuthorizationConfig
	logger      *slog.Logger
	fingerprint func() string
}

// NewExchanger creates a token exchanger.
func NewExchanger(httpAdapter domain.HTTPAdapter, cfg AuthorizationConfig, logger *slog.Logger) *Exchanger {
	return &Exchanger{
		http:        httpAdapter,
		cfg:         cfg,
		logger:      logger,
		fingerprint: uuid.NewString,
	}
}

// Exchange runs the first phase. A 401 that asks for a one-time password
// yields a challenge instead of an error.
func (e *Exchanger) Exchange(ctx context.Context, credential domain.Credential) (domain.ExchangeResult, error) {
	e.logger.DebugContext(ctx, "Requesting GitHub authorization", "username", credential.Username)
	return e.post(ctx, credential, nil)
}

// Resume repeats the request with the one-time code from the user.
func (e *Exchanger) Resume(
	ctx context.Context,
	challenge domain.SecondFactorChallenge,
	code string,
) (domain.ExchangeResult, error) {
	e.logger.DebugContext(ctx, "Resuming GitHub authorization with second factor",
		"username", challenge.Credential.Username,
		"method", challenge.Method)
	return e.post(ctx, challenge.Credential, map[string]string{otpHeader: code})
}

func (e *Exchanger) post(
	ctx context.Context,
	credential domain.Credential,
	headers map[string]string,
) (domain.ExchangeResult, error) {
	url := e.authorizationsURL()
	payload := authorizationRequest{
		Scopes:      e.cfg.Scopes,
		Note:        e.cfg.Note,
		Fingerprint: e.fingerprint(),
	}

	resp, err := e.http.PostWithBasicAuth(ctx, url, domain.BasicAuth{
		Username: credential.Username,
		Password: credential.Password,
		Headers:  headers,
	}, payload)
	if err != nil {
		return domain.ExchangeResult{}, errors.NewRemoteRepositoryError("create authorization", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ExchangeResult{}, errors.NewRemoteRepositoryError("read authorization response", err)
	}

	resuming := headers != nil

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		var authResp authorizationResponse
		if unmarshalErr := json.Unmarshal(body, &authResp); unmarshalErr != nil {
			return domain.ExchangeResult{}, errors.NewRemoteRepositoryError("decode authorization response", unmarshalErr)
		}
		if authResp.Token == "" {
			return domain.ExchangeResult{}, errors.NewCredentialError(credential.Username, "token not found in response", nil)
		}
		e.logger.DebugContext(ctx, "GitHub authorization created", "id", authResp.ID)
		return domain.ExchangeResult{Token: authResp.Token}, nil

	case http.StatusUnauthorized:
		httpErr := errors.NewHTTPError(resp.StatusCode, http.MethodPost, url, errorMessage(body))
		if resuming {
			return domain.ExchangeResult{}, errors.NewCredentialError(
				credential.Username, "two-factor authentication failed", httpErr)
		}
		if method, ok := otpMethod(resp.Header.Get(otpHeader)); ok {
			e.logger.DebugContext(ctx, "GitHub requested a second factor", "method", method)
			return domain.ExchangeResult{
				Challenge: &domain.SecondFactorChallenge{Credential: credential, Method: method},
			}, nil
		}
		return domain.ExchangeResult{}, errors.NewCredentialError(
			credential.Username, "invalid username or password", httpErr)

	case http.StatusUnprocessableEntity:
		httpErr := errors.NewHTTPError(resp.StatusCode, http.MethodPost, url, errorMessage(body))
		return domain.ExchangeResult{}, errors.NewRemoteConflictError("authorization", e.cfg.Note, httpErr)

	default:
		httpErr := errors.NewHTTPError(resp.StatusCode, http.MethodPost, url, errorMessage(body))
		return domain.ExchangeResult{}, errors.NewRemoteRepositoryError("create authorization", httpErr)
	}
}

func (e *Exchanger) authorizationsURL() string {
	return strings.TrimRight(e.cfg.APIURL, "/") + "/" + authorizationsPath
}

// otpMethod parses "required; app" into "app".
func otpMethod(header string) (string, bool) {
	parts := strings.SplitN(header, ";", 2)
	if strings.TrimSpace(parts[0]) != otpRequired {
		return "", false
	}
	if len(parts) == 1 {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

func errorMessage(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	return strings.TrimSpace(string(body))
}

var _ domain.TokenExchanger = (*Exchanger)(nil)
