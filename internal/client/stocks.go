package client

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/bookhub/admin-client/internal/http"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

// StocksClient implements bookhub.StocksClient.
type StocksClient struct {
	httpClient *http.Client
}

var _ bookhub.StocksClient = (*StocksClient)(nil)

// NewStocksClient creates a new stocks client.
func NewStocksClient(httpClient *http.Client) *StocksClient {
	return &StocksClient{
		httpClient: httpClient,
	}
}

// List implements bookhub.StocksClient.List.
func (c *StocksClient) List(ctx context.Context, token string, query bookhub.Query[bookhub.StockFilter]) (*bookhub.Envelope[bookhub.Page[bookhub.Stock]], error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/admin/stocks", query.ToValues(), token)

	return decodeEnvelope[bookhub.Page[bookhub.Stock]](resp, err, "listing stocks")
}

// Get implements bookhub.StocksClient.Get.
func (c *StocksClient) Get(ctx context.Context, token string, stockID int64) (*bookhub.Envelope[bookhub.Stock], error) {
	path := "/api/v1/admin/stocks/" + strconv.FormatInt(stockID, 10)

	resp, err := c.httpClient.Get(ctx, path, nil, token)

	return decodeEnvelope[bookhub.Stock](resp, err, "getting stock")
}

// Update implements bookhub.StocksClient.Update.
func (c *StocksClient) Update(ctx context.Context, token string, stockID int64, request *bookhub.StockUpdateRequest) (*bookhub.Status, error) {
	path := "/api/v1/admin/stocks/" + strconv.FormatInt(stockID, 10)

	resp, err := c.httpClient.Put(ctx, path, request, token)

	return decodeEnvelope[json.RawMessage](resp, err, "updating stock")
}
