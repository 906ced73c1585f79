package client

import (
	"context"

	"github.com/bookhub/admin-client/internal/http"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

// AuthorsClient implements bookhub.AuthorsClient.
type AuthorsClient struct {
	httpClient *http.Client
}

var _ bookhub.AuthorsClient = (*AuthorsClient)(nil)

// NewAuthorsClient creates a new authors client.
func NewAuthorsClient(httpClient *http.Client) *AuthorsClient {
	return &AuthorsClient{
		httpClient: httpClient,
	}
}

// List implements bookhub.AuthorsClient.List.
func (c *AuthorsClient) List(ctx context.Context, token string, query bookhub.Query[bookhub.AuthorFilter]) (*bookhub.Envelope[bookhub.Page[bookhub.Author]], error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/admin/authors", query.ToValues(), token)

	return decodeEnvelope[bookhub.Page[bookhub.Author]](resp, err, "listing authors")
}
