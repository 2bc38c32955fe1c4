// Package github talks to the GitHub REST API: token exchange over the
// authorizations endpoint and repository creation through go-github.
package github

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"secretariat/internal/domain"
	apperrors "secretariat/internal/errors"
)

// Client creates repositories for the user that owns the token.
type Client struct {
	client *github.Client
	logger *slog.Logger
}

// NewClient creates a GitHub client authenticated with token. An empty
// apiURL keeps the public API endpoint.
func NewClient(token, apiURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	base := &http.Client{Timeout: timeout}
	tc := oauth2.NewClient(context.WithValue(context.Background(), oauth2.HTTPClient, base), ts)
	client := github.NewClient(tc)

	if apiURL != "" {
		baseURL, err := url.Parse(strings.TrimRight(apiURL, "/") + "/")
		if err != nil {
			return nil, err
		}
		client.BaseURL = baseURL
	}

	return &Client{
		client: client,
		logger: logger,
	}, nil
}

//nolint:gochecknoglobals // Replaced in tests
var newClient = NewClient

// NewClientFactory returns a factory binding clients to tokens. A bad API URL
// falls back to the public endpoint; the configuration layer validates it first.
// When no client can be built, the returned creator fails every call.
func NewClientFactory(apiURL string, timeout time.Duration, logger *slog.Logger) domain.RepositoryClientFactory {
	return func(token string) domain.RepositoryCreator {
		client, err := newClient(token, apiURL, timeout, logger)
		if err == nil {
			return client
		}
		logger.Warn("Invalid GitHub API URL, using the public endpoint", "url", apiURL, "error", err)

		client, err = newClient(token, "", timeout, logger)
		if err != nil {
			logger.Error("Failed to create GitHub client", "error", err)
			return unavailableClient{err: err}
		}
		return client
	}
}

// unavailableClient reports a client construction failure on use.
type unavailableClient struct {
	err error
}

func (u unavailableClient) CreateRepository(context.Context, domain.RepoDetails) (domain.RemoteRepository, error) {
	return domain.RemoteRepository{}, apperrors.NewRemoteRepositoryError("create repository", u.err)
}

// CreateRepository creates a repository owned by the authenticated user.
func (c *Client) CreateRepository(ctx context.Context, details domain.RepoDetails) (domain.RemoteRepository, error) {
	repo := &github.Repository{
		Name:    github.String(details.Name),
		Private: github.Bool(details.Private()),
	}
	if details.Description != "" {
		repo.Description = github.String(details.Description)
	}

	c.logger.DebugContext(ctx, "Creating GitHub repository",
		"name", details.Name,
		"visibility", string(details.Visibility))

	created, _, err := c.client.Repositories.Create(ctx, "", repo)
	if err != nil {
		return domain.RemoteRepository{}, classify(details.Name, err)
	}

	c.logger.DebugContext(ctx, "GitHub repository created",
		"name", created.GetFullName(),
		"sshURL", created.GetSSHURL())

	return domain.RemoteRepository{
		Name:     created.GetName(),
		HTMLURL:  created.GetHTMLURL(),
		CloneURL: created.GetCloneURL(),
		SSHURL:   created.GetSSHURL(),
	}, nil
}

func classify(name string, err error) error {
	const operation = "create repository"

	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) || ghErr.Response == nil {
		return apperrors.NewRemoteRepositoryError(operation, err)
	}

	resp := ghErr.Response
	requestURL := ""
	if resp.Request != nil && resp.Request.URL != nil {
		requestURL = resp.Request.URL.Path
	}
	httpErr := apperrors.NewHTTPErrorWithCause(resp.StatusCode, http.MethodPost, requestURL, ghErr.Message, err)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return apperrors.NewAuthorizationError(operation, httpErr)
	case http.StatusUnprocessableEntity:
		return apperrors.NewRemoteConflictError("repository", name, httpErr)
	default:
		return apperrors.NewRemoteRepositoryError(operation, httpErr)
	}
}

var _ domain.RepositoryCreator = (*Client)(nil)
