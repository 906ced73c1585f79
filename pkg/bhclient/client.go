// Package bhclient provides the main entry point for creating BookHub API clients
package bhclient

import (
	"context"
	"fmt"
	"strings"

	"github.com/bookhub/admin-client/internal/client"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

// New creates a new BookHub API client.
func New(config *bookhub.Config) (bookhub.Client, error) {
	if config == nil {
		return nil, bookhub.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, bookhub.ErrAPIEndpointRequired
	}

	normalized := *config
	normalized.APIEndpoint = NormalizeEndpoint(config.APIEndpoint)

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeEndpoint trims a trailing slash and defaults the scheme to https.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// NewWithEndpoint creates a new client with just an API endpoint. Only the
// account endpoints that need no token are usable.
func NewWithEndpoint(endpoint string) (bookhub.Client, error) {
	return New(&bookhub.Config{
		APIEndpoint: endpoint,
	})
}

// NewWithToken creates a new client with an API endpoint and access token.
func NewWithToken(endpoint, token string) (bookhub.Client, error) {
	return New(&bookhub.Config{
		APIEndpoint: endpoint,
		AccessToken: token,
	})
}

// Credentials returns the token source of a client built by New, so screens
// share the client's tokens. Other clients yield a provider without a token.
func Credentials(c bookhub.Client) bookhub.CredentialProvider {
	if provider, ok := c.(interface {
		Credentials() bookhub.CredentialProvider
	}); ok {
		return provider.Credentials()
	}

	return bookhub.CredentialFunc(func(context.Context) (string, bool) {
		return "", false
	})
}
