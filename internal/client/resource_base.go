package client

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/bookhub/admin-client/internal/http"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

// ResourceClient is a generic client for resources with list, detail,
// create, update and delete endpoints keyed by a numeric id.
type ResourceClient[T any, F bookhub.Filter, D any, C any, U any] struct {
	httpClient   *http.Client
	resourcePath string
	resourceName string
}

// NewResourceClient creates a new generic resource client.
func NewResourceClient[T any, F bookhub.Filter, D any, C any, U any](httpClient *http.Client, resourcePath, resourceName string) *ResourceClient[T, F, D, C, U] {
	return &ResourceClient[T, F, D, C, U]{
		httpClient:   httpClient,
		resourcePath: resourcePath,
		resourceName: resourceName,
	}
}

// List retrieves one page of the resource.
func (c *ResourceClient[T, F, D, C, U]) List(ctx context.Context, token string, query bookhub.Query[F]) (*bookhub.Envelope[bookhub.Page[T]], error) {
	resp, err := c.httpClient.Get(ctx, c.resourcePath, query.ToValues(), token)

	return decodeEnvelope[bookhub.Page[T]](resp, err, "listing "+c.resourceName+"s")
}

// Get retrieves the detail of one resource.
func (c *ResourceClient[T, F, D, C, U]) Get(ctx context.Context, token string, id int64) (*bookhub.Envelope[D], error) {
	resp, err := c.httpClient.Get(ctx, c.itemPath(id), nil, token)

	return decodeEnvelope[D](resp, err, "getting "+c.resourceName)
}

// Create creates a resource.
func (c *ResourceClient[T, F, D, C, U]) Create(ctx context.Context, token string, request *C) (*bookhub.Status, error) {
	resp, err := c.httpClient.Post(ctx, c.resourcePath, request, token)

	return decodeEnvelope[json.RawMessage](resp, err, "creating "+c.resourceName)
}

// Update updates a resource.
func (c *ResourceClient[T, F, D, C, U]) Update(ctx context.Context, token string, id int64, request *U) (*bookhub.Status, error) {
	resp, err := c.httpClient.Put(ctx, c.itemPath(id), request, token)

	return decodeEnvelope[json.RawMessage](resp, err, "updating "+c.resourceName)
}

// Delete deletes a resource.
func (c *ResourceClient[T, F, D, C, U]) Delete(ctx context.Context, token string, id int64) (*bookhub.Status, error) {
	resp, err := c.httpClient.Delete(ctx, c.itemPath(id), token)

	return decodeEnvelope[json.RawMessage](resp, err, "deleting "+c.resourceName)
}

func (c *ResourceClient[T, F, D, C, U]) itemPath(id int64) string {
	return c.resourcePath + "/" + strconv.FormatInt(id, 10)
}
