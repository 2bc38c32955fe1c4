package app

import (
	"log/slog"
	"math"

	"secretariat/internal/adapters/github"
	"secretariat/internal/adapters/http"
	"secretariat/internal/config"
	"secretariat/internal/domain"
)

const userAgent = "secretariat"

// GitHubServices are the GitHub-facing pieces built from one configuration.
type GitHubServices struct {
	Exchanger     domain.TokenExchanger
	ClientFactory domain.RepositoryClientFactory
}

// NewGitHubServices creates the token exchanger and the repository client
// factory. Both share the configured endpoint and timeout.
func NewGitHubServices(cfg config.GitHubConfig, logger *slog.Logger) GitHubServices {
	httpAdapter := http.NewAdapter(cfg.Timeout, userAgent, logger)
	httpAdapter.SetRateLimit(cfg.RateLimit, int(math.Ceil(cfg.RateLimit)))

	exchanger := github.NewExchanger(httpAdapter, github.AuthorizationConfig{
		APIURL: cfg.APIURL,
		Scopes: cfg.Scopes,
		Note:   cfg.Note,
	}, logger)

	return GitHubServices{
		Exchanger:     exchanger,
		ClientFactory: github.NewClientFactory(cfg.APIURL, cfg.Timeout, logger),
	}
}
