package gsuite

import (
	"context"
	"errors"
	"net/http"

	"golang.org/x/oauth2/google"
)

// NewServiceAccountClient mints an authenticated HTTP client from a
// service-account credential blob (the raw JSON key file contents, supplied
// via environment configuration). Clients are constructed explicitly and
// injected; there is no lazily-initialized shared state.
func NewServiceAccountClient(ctx context.Context, credentialsJSON string, scopes ...string) (*http.Client, error) {
	if credentialsJSON == "" {
		return nil, errors.New("google service account credentials not configured")
	}
	cfg, err := google.JWTConfigFromJSON([]byte(credentialsJSON), scopes...)
	if err != nil {
		return nil, err
	}
	return cfg.Client(ctx), nil
}
