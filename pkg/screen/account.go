package screen

import (
	"context"
	"fmt"

	"github.com/bookhub/admin-client/pkg/bookhub"
)

// InvalidLinkMessage is shown when a login id lookup is opened without its token.
const InvalidLinkMessage = "invalid or missing token"

// Account covers the account actions outside sign-up: login id recovery,
// password change e-mails and logout.
type Account struct {
	auth   bookhub.AuthClient
	logger bookhub.Logger
}

// NewAccount creates the account actions.
func NewAccount(auth bookhub.AuthClient, opts ...Option) *Account {
	built := buildOptions(opts)

	return &Account{auth: auth, logger: built.logger}
}

// FindLoginID resolves the login id behind an e-mailed token.
func (a *Account) FindLoginID(ctx context.Context, emailToken string) (string, error) {
	if emailToken == "" {
		return "", bookhub.LocalFailure(InvalidLinkMessage)
	}

	envelope, err := a.auth.FindLoginID(ctx, emailToken)
	if err != nil {
		a.logger.Error("login id lookup failed", map[string]interface{}{"error": err.Error()})

		return "", bookhub.TransportFailure(err)
	}

	if !envelope.Succeeded() {
		return "", bookhub.AsFailure(envelope.Err())
	}

	if envelope.Data == nil || *envelope.Data == "" {
		return "", bookhub.RemoteFailure(envelope.Code, envelope.Message)
	}

	return *envelope.Data, nil
}

// SendPasswordChangeEmail asks for a password change link. Every field is
// required. The server message is returned on success.
func (a *Account) SendPasswordChangeEmail(ctx context.Context, request *bookhub.PasswordChangeEmailRequest) (string, error) {
	if ValidateForm(request) != nil {
		return "", bookhub.LocalFailure(IncompleteFormMessage)
	}

	envelope, err := a.auth.SendPasswordChangeEmail(ctx, request)
	if err != nil {
		a.logger.Error("password change e-mail failed", map[string]interface{}{"error": err.Error()})

		return "", bookhub.TransportFailure(err)
	}

	if !envelope.Succeeded() {
		failure := bookhub.AsFailure(envelope.Err())

		return "", &bookhub.Failure{
			Kind:    failure.Kind,
			Code:    failure.Code,
			Message: "sending e-mail failed: " + failure.Message,
			Err:     failure.Err,
		}
	}

	return envelope.Message, nil
}

// Logout ends the server session of the current token.
func (a *Account) Logout(ctx context.Context, credentials bookhub.CredentialProvider) error {
	token, ok := credentials.Token(ctx)
	if !ok {
		return bookhub.ErrLoginRequired
	}

	envelope, err := a.auth.Logout(ctx, token)
	if err != nil {
		a.logger.Error("logout failed", map[string]interface{}{"error": err.Error()})

		return bookhub.TransportFailure(err)
	}

	return envelope.Err()
}

// BranchStock loads the per-branch stock movements of one month.
func BranchStock(ctx context.Context, statistics bookhub.StatisticsClient, credentials bookhub.CredentialProvider, year, month int) ([]bookhub.BranchStockBar, error) {
	if month < 1 || month > 12 {
		return nil, bookhub.LocalFailure(fmt.Sprintf("month must be between 1 and 12, got %d", month))
	}

	token, ok := credentials.Token(ctx)
	if !ok {
		return nil, bookhub.ErrLoginRequired
	}

	envelope, err := statistics.BranchStock(ctx, token, year, month)
	if err != nil {
		return nil, bookhub.TransportFailure(err)
	}

	if !envelope.Succeeded() {
		return nil, envelope.Err()
	}

	if envelope.Data == nil {
		return []bookhub.BranchStockBar{}, nil
	}

	return *envelope.Data, nil
}
