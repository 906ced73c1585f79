package client

import (
	"context"
	"net/url"

	"github.com/bookhub/admin-client/internal/http"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

// CategoriesClient implements bookhub.CategoriesClient.
type CategoriesClient struct {
	httpClient *http.Client
}

var _ bookhub.CategoriesClient = (*CategoriesClient)(nil)

// NewCategoriesClient creates a new categories client.
func NewCategoriesClient(httpClient *http.Client) *CategoriesClient {
	return &CategoriesClient{
		httpClient: httpClient,
	}
}

// Tree implements bookhub.CategoriesClient.Tree.
func (c *CategoriesClient) Tree(ctx context.Context, token string, categoryType bookhub.CategoryType) (*bookhub.Envelope[[]bookhub.Category], error) {
	path := "/api/v1/common/categories/tree/" + url.PathEscape(string(categoryType))

	resp, err := c.httpClient.Get(ctx, path, nil, token)

	return decodeEnvelope[[]bookhub.Category](resp, err, "getting category tree")
}
