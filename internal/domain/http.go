package domain

import (
	"context"
	"net/http"
)

// BasicAuth carries basic-auth credentials and extra headers for one request.
type BasicAuth struct {
	Username string
	Password string
	Headers  map[string]string
}

// HTTPAdapter defines the interface for HTTP operations.
type HTTPAdapter interface {
	PostWithBasicAuth(ctx context.Context, url string, auth BasicAuth, payload any) (*http.Response, error)
}
