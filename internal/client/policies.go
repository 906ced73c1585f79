package client

import (
	"github.com/bookhub/admin-client/internal/http"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

// PoliciesClient implements bookhub.PoliciesClient.
type PoliciesClient = ResourceClient[
	bookhub.Policy,
	bookhub.PolicyFilter,
	bookhub.PolicyDetail,
	bookhub.PolicyCreateRequest,
	bookhub.PolicyUpdateRequest,
]

var _ bookhub.PoliciesClient = (*PoliciesClient)(nil)

// NewPoliciesClient creates a new discount policies client.
func NewPoliciesClient(httpClient *http.Client) *PoliciesClient {
	return NewResourceClient[
		bookhub.Policy,
		bookhub.PolicyFilter,
		bookhub.PolicyDetail,
		bookhub.PolicyCreateRequest,
		bookhub.PolicyUpdateRequest,
	](httpClient, "/api/v1/admin/policies", "policy")
}
