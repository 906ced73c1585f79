package client

import (
	"github.com/bookhub/admin-client/internal/auth"
	"github.com/bookhub/admin-client/internal/constants"
	"github.com/bookhub/admin-client/internal/http"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

// Client implements the bookhub.Client interface.
type Client struct {
	httpClient  *http.Client
	credentials bookhub.CredentialProvider
	baseURL     string
	logger      bookhub.Logger

	policies   *PoliciesClient
	publishers *PublishersClient
	stocks     *StocksClient
	books      *BooksClient
	authors    *AuthorsClient
	categories *CategoriesClient
	auth       *AuthClient
	statistics *StatisticsClient
}

var _ bookhub.Client = (*Client)(nil)

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *bookhub.Config) []http.Option {
	logger := bookhub.LoggerOrNop(config.Logger)

	chain := bookhub.NewInterceptorChain().
		AddRequestInterceptor(bookhub.RequestIDInterceptor())

	if config.RequestsPerSecond > 0 {
		chain.AddRequestInterceptor(bookhub.RateLimitInterceptor(config.RequestsPerSecond, constants.DefaultRateBurst))
	}

	if config.Debug {
		chain.AddRequestInterceptor(bookhub.LoggingInterceptor(logger))
		chain.AddResponseInterceptor(bookhub.LoggingResponseInterceptor(logger))
	}

	httpOpts := []http.Option{
		http.WithLogger(logger),
		http.WithInterceptors(chain),
		http.WithTimeout(config.HTTPTimeout),
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a BookHub API client.
func New(config *bookhub.Config) (*Client, error) {
	if config == nil {
		return nil, bookhub.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, bookhub.ErrAPIEndpointRequired
	}

	credentials := config.Credentials
	if credentials == nil {
		credentials = auth.NewStaticProvider(config.AccessToken)
	}

	httpClient := http.NewClient(config.APIEndpoint, createHTTPClientOptions(config)...)

	client := &Client{
		httpClient:  httpClient,
		credentials: credentials,
		baseURL:     config.APIEndpoint,
		logger:      bookhub.LoggerOrNop(config.Logger),
	}

	client.initializeResourceClients()

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.policies = NewPoliciesClient(c.httpClient)
	c.publishers = NewPublishersClient(c.httpClient)
	c.stocks = NewStocksClient(c.httpClient)
	c.books = NewBooksClient(c.httpClient)
	c.authors = NewAuthorsClient(c.httpClient)
	c.categories = NewCategoriesClient(c.httpClient)
	c.auth = NewAuthClient(c.httpClient)
	c.statistics = NewStatisticsClient(c.httpClient)
}

// Credentials returns the token source screens built on this client should use.
func (c *Client) Credentials() bookhub.CredentialProvider {
	return c.credentials
}

// Logger returns the configured logger.
func (c *Client) Logger() bookhub.Logger {
	return c.logger
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Policies implements bookhub.Client.Policies.
func (c *Client) Policies() bookhub.PoliciesClient {
	return c.policies
}

// Publishers implements bookhub.Client.Publishers.
func (c *Client) Publishers() bookhub.PublishersClient {
	return c.publishers
}

// Stocks implements bookhub.Client.Stocks.
func (c *Client) Stocks() bookhub.StocksClient {
	return c.stocks
}

// Books implements bookhub.Client.Books.
func (c *Client) Books() bookhub.BooksClient {
	return c.books
}

// Authors implements bookhub.Client.Authors.
func (c *Client) Authors() bookhub.AuthorsClient {
	return c.authors
}

// Categories implements bookhub.Client.Categories.
func (c *Client) Categories() bookhub.CategoriesClient {
	return c.categories
}

// Auth implements bookhub.Client.Auth.
func (c *Client) Auth() bookhub.AuthClient {
	return c.auth
}

// Statistics implements bookhub.Client.Statistics.
func (c *Client) Statistics() bookhub.StatisticsClient {
	return c.statistics
}
