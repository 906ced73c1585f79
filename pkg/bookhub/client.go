package bookhub

import (
	"context"
	"time"
)

// PoliciesClient manages discount policies.
type PoliciesClient interface {
	List(ctx context.Context, token string, query Query[PolicyFilter]) (*Envelope[Page[Policy]], error)
	Get(ctx context.Context, token string, policyID int64) (*Envelope[PolicyDetail], error)
	Create(ctx context.Context, token string, request *PolicyCreateRequest) (*Status, error)
	Update(ctx context.Context, token string, policyID int64, request *PolicyUpdateRequest) (*Status, error)
	Delete(ctx context.Context, token string, policyID int64) (*Status, error)
}

// PublishersClient manages the publisher directory.
type PublishersClient interface {
	List(ctx context.Context, token string, query Query[PublisherFilter]) (*Envelope[Page[Publisher]], error)
	Get(ctx context.Context, token string, publisherID int64) (*Envelope[Publisher], error)
	Create(ctx context.Context, token string, request *PublisherRequest) (*Status, error)
	Update(ctx context.Context, token string, publisherID int64, request *PublisherRequest) (*Status, error)
	Delete(ctx context.Context, token string, publisherID int64) (*Status, error)
}

// StocksClient manages branch stock levels.
type StocksClient interface {
	List(ctx context.Context, token string, query Query[StockFilter]) (*Envelope[Page[Stock]], error)
	Get(ctx context.Context, token string, stockID int64) (*Envelope[Stock], error)
	Update(ctx context.Context, token string, stockID int64, request *StockUpdateRequest) (*Status, error)
}

// BooksClient manages the book catalog.
type BooksClient interface {
	Search(ctx context.Context, token string, query Query[BookFilter]) (*Envelope[Page[Book]], error)
	Create(ctx context.Context, token string, request *BookCreateRequest, cover *FileUpload) (*Status, error)
	Update(ctx context.Context, token string, isbn string, request *BookUpdateRequest, cover *FileUpload) (*Status, error)
	Hide(ctx context.Context, token string, isbn string) (*Status, error)
}

// AuthorsClient looks up authors.
type AuthorsClient interface {
	List(ctx context.Context, token string, query Query[AuthorFilter]) (*Envelope[Page[Author]], error)
}

// CategoriesClient reads the category tree.
type CategoriesClient interface {
	Tree(ctx context.Context, token string, categoryType CategoryType) (*Envelope[[]Category], error)
}

// AuthClient covers the unauthenticated account endpoints plus logout.
type AuthClient interface {
	CheckLoginID(ctx context.Context, loginID string) (*Status, error)
	CheckEmail(ctx context.Context, email string) (*Status, error)
	CheckPhoneNumber(ctx context.Context, phoneNumber string) (*Status, error)
	SignUp(ctx context.Context, request *SignUpRequest) (*Status, error)
	Branches(ctx context.Context) (*Envelope[[]Branch], error)
	FindLoginID(ctx context.Context, emailToken string) (*Envelope[string], error)
	SendPasswordChangeEmail(ctx context.Context, request *PasswordChangeEmailRequest) (*Status, error)
	Logout(ctx context.Context, token string) (*Status, error)
}

// StatisticsClient reads dashboard statistics.
type StatisticsClient interface {
	BranchStock(ctx context.Context, token string, year, month int) (*Envelope[[]BranchStockBar], error)
}

// Client is the BookHub back-office API.
type Client interface {
	Policies() PoliciesClient
	Publishers() PublishersClient
	Stocks() StocksClient
	Books() BooksClient
	Authors() AuthorsClient
	Categories() CategoriesClient
	Auth() AuthClient
	Statistics() StatisticsClient
}

// CredentialProvider yields the current access token, or false when there is none.
type CredentialProvider interface {
	Token(ctx context.Context) (string, bool)
}

// CredentialFunc adapts a function to CredentialProvider.
type CredentialFunc func(ctx context.Context) (string, bool)

// Token implements CredentialProvider.
func (f CredentialFunc) Token(ctx context.Context) (string, bool) {
	return f(ctx)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a bookhub.Client.
type Config struct {
	// APIEndpoint is the base URL of the BookHub API (e.g., "https://api.bookhub.example").
	// bhclient.New trims a trailing slash and adds "https://" if no scheme is present.
	APIEndpoint string

	// AccessToken is the bearer token used when no CredentialProvider is set.
	AccessToken string
	// Credentials overrides AccessToken as the source of tokens for screens.
	Credentials CredentialProvider

	// HTTPTimeout bounds a single HTTP attempt. Zero uses the default.
	HTTPTimeout time.Duration
	// RetryMax is the number of retries for 5xx, 429 and connection errors. Zero disables retries.
	RetryMax int
	// RetryWaitMin is the minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax is the maximum backoff between retries.
	RetryWaitMax time.Duration
	// RequestsPerSecond enables client-side rate limiting when positive.
	RequestsPerSecond float64

	// PageSize is the list page size used by screens. Zero uses the default.
	PageSize int
	// DebounceDelay is the search-as-you-type quiet period. Zero uses the default.
	DebounceDelay time.Duration

	// Debug enables HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger receives structured log output. Nil discards it.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
