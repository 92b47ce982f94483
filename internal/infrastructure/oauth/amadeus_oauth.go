package oauth

import (
	"context"
	"net/http"
	"time"

	"flightbooking-agent/pkg/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// AmadeusOAuth issues client-credentials tokens for the flight API
type AmadeusOAuth struct {
	config *clientcredentials.Config
	logger logger.Logger
}

// NewAmadeusOAuth creates a new flight API OAuth handler
func NewAmadeusOAuth(clientID, clientSecret, baseURL string, logger logger.Logger) *AmadeusOAuth {
	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + "/v1/security/oauth2/token",
		// The vendor expects credentials form-encoded in the body.
		AuthStyle: oauth2.AuthStyleInParams,
	}

	return &AmadeusOAuth{
		config: config,
		logger: logger,
	}
}

// GetTokenSource returns a self-refreshing token source for the flight API
func (o *AmadeusOAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	return o.config.TokenSource(ctx)
}

// HTTPClient returns an http client that injects bearer tokens on every
// request, with the given per-request timeout.
func (o *AmadeusOAuth) HTTPClient(ctx context.Context, timeout time.Duration) *http.Client {
	client := o.config.Client(ctx)
	client.Timeout = timeout
	return client
}
