package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"secretariat/internal/domain"
)

const (
	// Rate limiting configuration.
	rateLimitRequestsPerSecond = 5
	rateLimitBurst             = 5
)

const (
	// Standard HTTP content types.
	contentTypeJSON = "application/json"
	acceptGitHubV3  = "application/vnd.github.v3+json"
)

// Adapter is an HTTP client adapter using resty with rate limiting.
// Requests are never retried: every failure is terminal for the run.
type Adapter struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewAdapter creates a new HTTP adapter with rate limiting and request logging.
func NewAdapter(timeout time.Duration, userAgent string, logger *slog.Logger) *Adapter {
	a := &Adapter{
		limiter: rate.NewLimiter(rate.Limit(rateLimitRequestsPerSecond), rateLimitBurst),
		logger:  logger,
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", acceptGitHubV3).
		SetHeader("User-Agent", userAgent)

	// Add rate limiting middleware
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return a.limiter.Wait(req.Context())
	})

	// Add logging middleware
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.DebugContext(req.Context(), "HTTP request",
			"method", req.Method,
			"url", req.URL,
		)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.DebugContext(resp.Request.Context(), "HTTP response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
		)
		return nil
	})

	a.client = client
	return a
}

// PostWithBasicAuth performs a POST request with basic authentication,
// extra headers and an optional JSON payload. The caller owns the body.
func (a *Adapter) PostWithBasicAuth(
	ctx context.Context,
	url string,
	auth domain.BasicAuth,
	payload any,
) (*http.Response, error) {
	request := a.client.R().
		SetContext(ctx).
		SetBasicAuth(auth.Username, auth.Password).
		SetHeaders(auth.Headers).
		SetDoNotParseResponse(true)

	if payload != nil {
		request.SetHeader("Content-Type", contentTypeJSON).SetBody(payload)
	}

	resp, err := request.Post(url)
	if err != nil {
		// Handle resty marshaling errors
		if strings.Contains(err.Error(), "unsupported 'Body' type/value") {
			return nil, fmt.Errorf("failed to prepare POST payload: %w", err)
		}
		return nil, fmt.Errorf("failed to execute POST request: %w", err)
	}
	return resp.RawResponse, nil
}

// SetRateLimit replaces the limiter. Call it before the first request.
func (a *Adapter) SetRateLimit(requestsPerSecond float64, burst int) {
	a.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
