package client

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/bookhub/admin-client/internal/http"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

// AuthClient implements bookhub.AuthClient. Only Logout needs a token.
type AuthClient struct {
	httpClient *http.Client
}

var _ bookhub.AuthClient = (*AuthClient)(nil)

// NewAuthClient creates a new auth client.
func NewAuthClient(httpClient *http.Client) *AuthClient {
	return &AuthClient{
		httpClient: httpClient,
	}
}

// CheckLoginID implements bookhub.AuthClient.CheckLoginID.
func (c *AuthClient) CheckLoginID(ctx context.Context, loginID string) (*bookhub.Status, error) {
	return c.check(ctx, "/api/v1/auth/login-id/exists", "loginId", loginID, "checking login id")
}

// CheckEmail implements bookhub.AuthClient.CheckEmail.
func (c *AuthClient) CheckEmail(ctx context.Context, email string) (*bookhub.Status, error) {
	return c.check(ctx, "/api/v1/auth/email/exists", "email", email, "checking email")
}

// CheckPhoneNumber implements bookhub.AuthClient.CheckPhoneNumber.
func (c *AuthClient) CheckPhoneNumber(ctx context.Context, phoneNumber string) (*bookhub.Status, error) {
	return c.check(ctx, "/api/v1/auth/phone-number/exists", "phoneNumber", phoneNumber, "checking phone number")
}

func (c *AuthClient) check(ctx context.Context, path, key, value, action string) (*bookhub.Status, error) {
	query := url.Values{}
	query.Set(key, value)

	resp, err := c.httpClient.Get(ctx, path, query, "")

	return decodeEnvelope[json.RawMessage](resp, err, action)
}

// SignUp implements bookhub.AuthClient.SignUp.
func (c *AuthClient) SignUp(ctx context.Context, request *bookhub.SignUpRequest) (*bookhub.Status, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/auth/signup", request, "")

	return decodeEnvelope[json.RawMessage](resp, err, "signing up")
}

// Branches implements bookhub.AuthClient.Branches.
func (c *AuthClient) Branches(ctx context.Context) (*bookhub.Envelope[[]bookhub.Branch], error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/auth/branches", nil, "")

	return decodeEnvelope[[]bookhub.Branch](resp, err, "listing branches")
}

// FindLoginID implements bookhub.AuthClient.FindLoginID. The token is the
// one-time token from the e-mailed link, not an access token.
func (c *AuthClient) FindLoginID(ctx context.Context, emailToken string) (*bookhub.Envelope[string], error) {
	query := url.Values{}
	query.Set("token", emailToken)

	resp, err := c.httpClient.Get(ctx, "/api/v1/auth/login-id-find", query, "")

	return decodeEnvelope[string](resp, err, "finding login id")
}

// SendPasswordChangeEmail implements bookhub.AuthClient.SendPasswordChangeEmail.
func (c *AuthClient) SendPasswordChangeEmail(ctx context.Context, request *bookhub.PasswordChangeEmailRequest) (*bookhub.Status, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/auth/password-change/email", request, "")

	return decodeEnvelope[json.RawMessage](resp, err, "sending password change email")
}

// Logout implements bookhub.AuthClient.Logout.
func (c *AuthClient) Logout(ctx context.Context, token string) (*bookhub.Status, error) {
	resp, err := c.httpClient.Post(ctx, "/api/v1/auth/logout", nil, token)

	return decodeEnvelope[json.RawMessage](resp, err, "logging out")
}
