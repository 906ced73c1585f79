package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIConfigured   = errors.New("no API endpoint configured, use 'bookhub config set api <url>'")
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrNoConfigPersister = errors.New("no config persister configured")
	ErrEmptyToken        = errors.New("token must not be empty")
	ErrAPIMismatch       = errors.New("token belongs to a different API endpoint")
)

// Validation errors.
var (
	ErrInvalidCategoryType = errors.New("category type must be DOMESTIC or FOREIGN")
	ErrInvalidMonth        = errors.New("month must use the YYYY-MM layout")
	ErrInvalidDate         = errors.New("date must use the YYYY-MM-DD layout")
	ErrInvalidID           = errors.New("id must be a positive integer")
	ErrUnknownOption       = errors.New("no matching option")
)

// Output errors.
var (
	ErrUnknownOutputFormat = errors.New("unknown output format")
)
