package screen

import (
	"time"

	"github.com/bookhub/admin-client/internal/constants"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

type options struct {
	logger        bookhub.Logger
	pageSize      int
	debounceDelay time.Duration
}

// Option configures a screen controller.
type Option func(*options)

// WithLogger sets the logger controllers report failures to.
func WithLogger(logger bookhub.Logger) Option {
	return func(o *options) {
		o.logger = bookhub.LoggerOrNop(logger)
	}
}

// WithPageSize sets the list page size.
func WithPageSize(pageSize int) Option {
	return func(o *options) {
		if pageSize > 0 {
			o.pageSize = pageSize
		}
	}
}

// WithDebounceDelay sets the search-as-you-type quiet period.
func WithDebounceDelay(delay time.Duration) Option {
	return func(o *options) {
		if delay > 0 {
			o.debounceDelay = delay
		}
	}
}

// FromConfig carries the screen-related settings of a client config.
func FromConfig(config *bookhub.Config) []Option {
	if config == nil {
		return nil
	}

	return []Option{
		WithLogger(config.Logger),
		WithPageSize(config.PageSize),
		WithDebounceDelay(config.DebounceDelay),
	}
}

func buildOptions(opts []Option) options {
	built := options{
		logger:        bookhub.NopLogger{},
		pageSize:      constants.DefaultPageSize,
		debounceDelay: constants.DefaultDebounceDelay,
	}

	for _, opt := range opts {
		opt(&built)
	}

	return built
}
