package commands

import (
	"fmt"
	"os"

	"github.com/bookhub/admin-client/internal/constants"
	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/spf13/cobra"
)

// NewAccountCommand creates the account command group
func NewAccountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Recover account access",
		Long:  "Resolve a forgotten login id or request a password change e-mail",
	}

	cmd.AddCommand(newAccountFindLoginIDCommand())
	cmd.AddCommand(newAccountPasswordEmailCommand())

	return cmd
}

func newAccountFindLoginIDCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "find-login-id TOKEN",
		Short: "Resolve a login id",
		Long:  "Resolve the login id behind the token of a login id recovery e-mail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}

			loginID, err := screen.NewAccount(s.client.Auth(), s.options...).FindLoginID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return renderOutput(map[string]string{"login_id": loginID}, func() error {
				_, _ = fmt.Fprintf(os.Stdout, "Your login id is %s\n", loginID)

				return nil
			})
		},
	}
}

func newAccountPasswordEmailCommand() *cobra.Command {
	var request bookhub.PasswordChangeEmailRequest

	cmd := &cobra.Command{
		Use:   "password-email",
		Short: "Request a password change e-mail",
		Long:  "Send a password change link to the e-mail address of an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}

			message, err := screen.NewAccount(s.client.Auth(), s.options...).SendPasswordChangeEmail(cmd.Context(), &request)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "%s %s\n", constants.CheckMarkSymbol, formatOptional(message))

			return nil
		},
	}

	cmd.Flags().StringVar(&request.LoginID, "login-id", "", "login id")
	cmd.Flags().StringVar(&request.Email, "email", "", "e-mail address")
	cmd.Flags().StringVar(&request.PhoneNumber, "phone", "", "phone number")

	return cmd
}
