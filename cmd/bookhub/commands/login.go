package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/bookhub/admin-client/internal/constants"
	"github.com/bookhub/admin-client/pkg/bhclient"
	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var stdinReader = bufio.NewReader(os.Stdin)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint string
		expiresIn   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an access token",
		Long:  "Store the access token issued by the BookHub sign-in page for the configured API endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if apiEndpoint != "" {
				config.API = bhclient.NormalizeEndpoint(apiEndpoint)
			}

			if config.API == "" {
				config.API = bhclient.NormalizeEndpoint(promptLine("API endpoint: "))
			}

			if config.API == "" || config.API == "https://" {
				return constants.ErrNoAPIConfigured
			}

			err := saveConfigStruct(config)
			if err != nil {
				return err
			}

			token := viper.GetString("token")
			if !cmd.Flags().Changed("token") {
				token, err = promptSecret("Access token: ")
				if err != nil {
					return err
				}
			}

			var expiresAt time.Time
			if expiresIn > 0 {
				expiresAt = time.Now().Add(expiresIn)
			}

			s, err := newSession()
			if err != nil {
				return err
			}

			err = s.credentials.SetToken(token, expiresAt)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "%s Logged in to %s\n", constants.CheckMarkSymbol, config.API)

			return nil
		},
	}

	cmd.Flags().StringVar(&apiEndpoint, "endpoint", "", "API endpoint to log in to")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", 0, "token lifetime, e.g. 8h (default: no expiry)")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and forget the access token",
		Long:  "Invalidate the session on the server and remove the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}

			account := screen.NewAccount(s.client.Auth(), s.options...)

			logoutErr := account.Logout(cmd.Context(), s.credentials)
			if logoutErr != nil && !bookhub.IsLocal(logoutErr) {
				_, _ = fmt.Fprintln(os.Stderr, ErrorMessage(logoutErr))
			}

			err = s.credentials.Clear()
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(os.Stdout, "%s Logged out\n", constants.CheckMarkSymbol)

			return nil
		},
	}
}

func promptLine(label string) string {
	_, _ = fmt.Fprint(os.Stdout, label)

	line, _ := stdinReader.ReadString('\n')

	return strings.TrimSpace(line)
}

// promptSecret reads without echo from a terminal, or a plain line otherwise.
func promptSecret(label string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return promptLine(label), nil
	}

	_, _ = fmt.Fprint(os.Stdout, label)

	secret, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	_, _ = fmt.Fprintln(os.Stdout)

	return strings.TrimSpace(string(secret)), nil
}
