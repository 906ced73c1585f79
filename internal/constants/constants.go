package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for a single HTTP attempt.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as uniqueness checks.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// LowRetryMax is the retry count the CLI uses when none is configured.
	LowRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Rate limiting.
const (
	// DefaultRateBurst is the burst size of the client-side rate limiter.
	DefaultRateBurst = 1
)

// HTTPStatusBadRequest is the first client error status.
const HTTPStatusBadRequest = 400

// Pagination and input timing.
const (
	// DefaultPageSize is the number of rows per page on every list screen.
	DefaultPageSize = 10

	// DefaultDebounceDelay is the quiet period before a search-as-you-type lookup fires.
	DefaultDebounceDelay = 300 * time.Millisecond
)

// Date layouts.
const (
	// DateLayout is the layout of every date sent to or received from the API.
	DateLayout = "2006-01-02"

	// MonthLayout is the layout accepted for statistics months.
	MonthLayout = "2006-01"
)

// Validation and limits.
const (
	// MinimumArgumentCount is the argument count of key/value commands.
	MinimumArgumentCount = 2
)

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// CheckMarkSymbol marks the expanded partition or node.
	CheckMarkSymbol = "✓"
)

// Format constants.
const (
	// FormatTable for table output format.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// JSONIndentSize is the indent used by JSON and YAML encoders.
	JSONIndentSize = 2
)

// UserAgent is sent when the configuration does not override it.
const UserAgent = "bookhub-admin-client/1.0"
