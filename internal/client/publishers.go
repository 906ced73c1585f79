package client

import (
	"github.com/bookhub/admin-client/internal/http"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

// PublishersClient implements bookhub.PublishersClient.
type PublishersClient = ResourceClient[
	bookhub.Publisher,
	bookhub.PublisherFilter,
	bookhub.Publisher,
	bookhub.PublisherRequest,
	bookhub.PublisherRequest,
]

var _ bookhub.PublishersClient = (*PublishersClient)(nil)

// NewPublishersClient creates a new publishers client.
func NewPublishersClient(httpClient *http.Client) *PublishersClient {
	return NewResourceClient[
		bookhub.Publisher,
		bookhub.PublisherFilter,
		bookhub.Publisher,
		bookhub.PublisherRequest,
		bookhub.PublisherRequest,
	](httpClient, "/api/v1/admin/publishers", "publisher")
}
