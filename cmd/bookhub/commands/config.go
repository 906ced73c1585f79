package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bookhub/admin-client/internal/auth"
	"github.com/bookhub/admin-client/internal/constants"
	"github.com/bookhub/admin-client/pkg/bhclient"
	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	API            string     `json:"api,omitempty"              yaml:"api,omitempty"`
	Token          string     `json:"token,omitempty"            yaml:"token,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty" yaml:"token_expires_at,omitempty"`

	Output            string  `json:"output"                        yaml:"output"`
	PageSize          int     `json:"page_size,omitempty"           yaml:"page_size,omitempty"`
	RetryMax          int     `json:"retry_max,omitempty"           yaml:"retry_max,omitempty"`
	RequestsPerSecond float64 `json:"requests_per_second,omitempty" yaml:"requests_per_second,omitempty"`
	Debug             bool    `json:"debug"                         yaml:"debug"`
}

// configKeys are the keys accepted by config set and unset.
var configKeys = map[string]func(*Config, string) error{
	"api": func(c *Config, value string) error {
		c.API = bhclient.NormalizeEndpoint(value)

		return nil
	},
	"token": func(c *Config, value string) error {
		c.Token = value
		c.TokenExpiresAt = nil

		return nil
	},
	"output": func(c *Config, value string) error {
		switch value {
		case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
			c.Output = value

			return nil
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, value)
		}
	},
	"page_size": func(c *Config, value string) error {
		size, err := strconv.Atoi(value)
		if err != nil || size < 0 {
			return fmt.Errorf("invalid page size %q", value)
		}

		c.PageSize = size

		return nil
	},
	"retry_max": func(c *Config, value string) error {
		retries, err := strconv.Atoi(value)
		if err != nil || retries < 0 {
			return fmt.Errorf("invalid retry count %q", value)
		}

		c.RetryMax = retries

		return nil
	},
	"requests_per_second": func(c *Config, value string) error {
		rate, err := strconv.ParseFloat(value, 64)
		if err != nil || rate < 0 {
			return fmt.Errorf("invalid request rate %q", value)
		}

		c.RequestsPerSecond = rate

		return nil
	},
	"debug": func(c *Config, value string) error {
		c.Debug = parseBoolValue(value)

		return nil
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage BookHub CLI configuration including the API endpoint and settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			shown := *config
			if shown.Token != "" {
				shown.Token = constants.MaskedSecret
			}

			return renderOutput(&shown, func() error {
				return displayConfigTable(&shown)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: " + strings.Join(configKeyNames(), ", "),
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			config := loadConfig()

			err := setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			if key == "token" {
				value = constants.MaskedSecret
			}

			return outputConfigUpdateResult("set", key, value)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value so its default applies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			config := loadConfig()

			err := unsetConfigValue(config, key)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return err
			}

			return outputConfigUpdateResult("unset", key, "")
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all configuration",
		Long:  "Remove every stored setting including the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintln(os.Stdout, "This removes the stored endpoint and token. Use --force to confirm.")

				return nil
			}

			err := saveConfigStruct(&Config{Output: constants.FormatTable})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(os.Stdout, "Configuration cleared")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "clear without confirmation")

	return cmd
}

// loadConfig reads the configuration from viper, so flags and BOOKHUB_*
// environment variables override the config file.
func loadConfig() *Config {
	config := &Config{
		API:               viper.GetString("api"),
		Token:             viper.GetString("token"),
		Output:            viper.GetString("output"),
		PageSize:          viper.GetInt("page_size"),
		RetryMax:          viper.GetInt("retry_max"),
		RequestsPerSecond: viper.GetFloat64("requests_per_second"),
		Debug:             viper.GetBool("debug"),
	}

	if expiresAt := viper.GetTime("token_expires_at"); !expiresAt.IsZero() {
		config.TokenExpiresAt = &expiresAt
	}

	return config
}

// saveConfigStruct writes config to the file viper read it from, or to
// ~/.bookhub/config.yml.
func saveConfigStruct(config *Config) error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}

		configDir := filepath.Join(home, ".bookhub")

		err = os.MkdirAll(configDir, constants.ConfigDirPerm)
		if err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}

		configFile = filepath.Join(configDir, "config.yml")
	}

	return writeConfigFile(configFile, config)
}

func writeConfigFile(configFile string, config *Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Keep the running process in sync with what was written.
	viper.Set("api", config.API)
	viper.Set("token", config.Token)
	viper.Set("token_expires_at", expiryValue(config.TokenExpiresAt))
	viper.Set("output", config.Output)
	viper.Set("page_size", config.PageSize)
	viper.Set("retry_max", config.RetryMax)
	viper.Set("requests_per_second", config.RequestsPerSecond)
	viper.Set("debug", config.Debug)

	return nil
}

func expiryValue(expiresAt *time.Time) time.Time {
	if expiresAt == nil {
		return time.Time{}
	}

	return *expiresAt
}

func setConfigValue(config *Config, key, value string) error {
	handler, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return handler(config, value)
}

func unsetConfigValue(config *Config, key string) error {
	switch key {
	case "api":
		config.API = ""
	case "token":
		config.Token = ""
		config.TokenExpiresAt = nil
	case "output":
		config.Output = constants.FormatTable
	case "page_size":
		config.PageSize = 0
	case "retry_max":
		config.RetryMax = 0
	case "requests_per_second":
		config.RequestsPerSecond = 0
	case "debug":
		config.Debug = false
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func configKeyNames() []string {
	return []string{"api", "token", "output", "page_size", "retry_max", "requests_per_second", "debug"}
}

func parseBoolValue(value string) bool {
	parsed, err := strconv.ParseBool(value)

	return err == nil && parsed
}

func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"API", formatConfigValue(config.API)})
	_ = table.Append([]string{"Token", formatConfigValue(config.Token)})

	if config.TokenExpiresAt != nil {
		_ = table.Append([]string{"Token Expires", config.TokenExpiresAt.Format(time.RFC3339)})
	}

	_ = table.Append([]string{"Output", formatConfigValue(config.Output)})
	_ = table.Append([]string{"Page Size", formatConfigInt(config.PageSize, constants.DefaultPageSize)})
	_ = table.Append([]string{"Retry Max", formatConfigInt(config.RetryMax, constants.LowRetryMax)})
	_ = table.Append([]string{"Requests/Second", formatRate(config.RequestsPerSecond)})
	_ = table.Append([]string{"Debug", strconv.FormatBool(config.Debug)})

	return renderTable(table)
}

func formatConfigValue(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func formatConfigInt(value, fallback int) string {
	if value == 0 {
		return fmt.Sprintf("%d (default)", fallback)
	}

	return strconv.Itoa(value)
}

func formatRate(rate float64) string {
	if rate <= 0 {
		return "unlimited"
	}

	return strconv.FormatFloat(rate, 'f', -1, 64)
}

func outputConfigUpdateResult(action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}

	if value != "" {
		result["value"] = value
	}

	return renderOutput(result, func() error {
		if action == "unset" {
			_, _ = fmt.Fprintf(os.Stdout, "Unset %s\n", key)
		} else {
			_, _ = fmt.Fprintf(os.Stdout, "Set %s to %s\n", key, value)
		}

		return nil
	})
}

// session is everything a command needs to talk to the API.
type session struct {
	client      bookhub.Client
	credentials *auth.ConfigProvider
	options     []screen.Option
}

// newSession builds a client from the stored configuration. The token is
// served by a ConfigProvider so login and logout persist through it.
func newSession() (*session, error) {
	config := loadConfig()
	if config.API == "" {
		return nil, constants.ErrNoAPIConfigured
	}

	var expiresAt time.Time
	if config.TokenExpiresAt != nil {
		expiresAt = *config.TokenExpiresAt
	}

	credentials := auth.NewConfigProvider(NewConfigPersister(), config.API, config.Token, expiresAt)

	clientConfig := buildClientConfig(config, credentials)

	c, err := bhclient.New(clientConfig)
	if err != nil {
		return nil, err
	}

	return &session{
		client:      c,
		credentials: credentials,
		options:     screen.FromConfig(clientConfig),
	}, nil
}

func buildClientConfig(config *Config, credentials bookhub.CredentialProvider) *bookhub.Config {
	retryMax := config.RetryMax
	if retryMax == 0 {
		retryMax = constants.LowRetryMax
	}

	clientConfig := &bookhub.Config{
		APIEndpoint:       config.API,
		Credentials:       credentials,
		RetryMax:          retryMax,
		RequestsPerSecond: config.RequestsPerSecond,
		PageSize:          config.PageSize,
		Debug:             config.Debug,
	}

	if viper.GetBool("verbose") || config.Debug {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

		clientConfig.Logger = bookhub.NewLogrusLogger(logger)
		clientConfig.Debug = true
	}

	return clientConfig
}
