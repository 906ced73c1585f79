package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/bookhub/admin-client/internal/http"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

// StatisticsClient implements bookhub.StatisticsClient.
type StatisticsClient struct {
	httpClient *http.Client
}

var _ bookhub.StatisticsClient = (*StatisticsClient)(nil)

// NewStatisticsClient creates a new statistics client.
func NewStatisticsClient(httpClient *http.Client) *StatisticsClient {
	return &StatisticsClient{
		httpClient: httpClient,
	}
}

// BranchStock implements bookhub.StatisticsClient.BranchStock.
func (c *StatisticsClient) BranchStock(ctx context.Context, token string, year, month int) (*bookhub.Envelope[[]bookhub.BranchStockBar], error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(month))

	resp, err := c.httpClient.Get(ctx, "/api/v1/admin/statistics/stocks/branch", query, token)

	return decodeEnvelope[[]bookhub.BranchStockBar](resp, err, "getting branch stock statistics")
}
