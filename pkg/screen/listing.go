package screen

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/bookhub/admin-client/pkg/bookhub"
)

// Lister fetches one page of a resource.
type Lister[T any, F bookhub.Filter] func(ctx context.Context, token string, query bookhub.Query[F]) (*bookhub.Envelope[bookhub.Page[T]], error)

// ListState is a point-in-time copy of a list controller.
type ListState[T any, F bookhub.Filter] struct {
	Query       bookhub.Query[F] `json:"query"        yaml:"query"`
	Items       []T              `json:"items"        yaml:"items"`
	TotalPages  int              `json:"total_pages"  yaml:"total_pages"`
	CurrentPage int              `json:"current_page" yaml:"current_page"`
}

// HasPrev reports whether a previous page exists.
func (s ListState[T, F]) HasPrev() bool {
	return s.CurrentPage > 0
}

// HasNext reports whether a next page exists.
func (s ListState[T, F]) HasNext() bool {
	return s.CurrentPage+1 < s.TotalPages
}

// ListController keeps one page of a resource list in sync with a filter.
//
// Content is only ever replaced by a successful fetch, so a failed fetch
// leaves the last good page on screen.
type ListController[T any, F bookhub.Filter] struct {
	mu          sync.Mutex
	resource    string
	list        Lister[T, F]
	credentials bookhub.CredentialProvider
	logger      bookhub.Logger

	query       bookhub.Query[F]
	items       []T
	totalPages  int
	currentPage int
}

// NewListController creates a controller for resource starting from filter.
// Nothing is fetched until FetchPage (or Mount) is called.
func NewListController[T any, F bookhub.Filter](resource string, list Lister[T, F], credentials bookhub.CredentialProvider, filter F, opts ...Option) *ListController[T, F] {
	built := buildOptions(opts)

	return &ListController[T, F]{
		resource:    resource,
		list:        list,
		credentials: credentials,
		logger:      built.logger,
		query:       bookhub.NewQuery(filter, built.pageSize),
		items:       []T{},
	}
}

// Mount loads the first page.
func (c *ListController[T, F]) Mount(ctx context.Context) error {
	return c.FetchPage(ctx, 0)
}

// FetchPage loads pageIndex with the current filter.
func (c *ListController[T, F]) FetchPage(ctx context.Context, pageIndex int) error {
	token, ok := c.credentials.Token(ctx)
	if !ok {
		return bookhub.ErrLoginRequired
	}

	c.mu.Lock()
	query := c.query.WithPage(pageIndex)
	c.mu.Unlock()

	envelope, err := c.list(ctx, token, query)
	if err != nil {
		c.logger.Error("list fetch failed", map[string]interface{}{
			"resource": c.resource,
			"page":     pageIndex,
			"error":    err.Error(),
		})

		return bookhub.TransportFailure(err)
	}

	if !envelope.Succeeded() {
		c.logger.Warn("list fetch rejected", map[string]interface{}{
			"resource": c.resource,
			"page":     pageIndex,
			"code":     codeOf(envelope),
		})

		return envelope.Err()
	}

	if envelope.Data == nil {
		return bookhub.TransportFailure(fmt.Errorf("listing %s: %w", c.resource, bookhub.ErrEmptyEnvelope))
	}

	page := envelope.Data

	c.mu.Lock()
	defer c.mu.Unlock()

	c.query.Page = page.CurrentPage
	c.items = page.Content
	c.totalPages = page.TotalPages
	c.currentPage = page.CurrentPage

	return nil
}

// SetFilter replaces the filter. A different filter fetches page 0 once;
// an identical one does nothing.
func (c *ListController[T, F]) SetFilter(ctx context.Context, filter F) error {
	c.mu.Lock()
	if c.query.Filter == filter {
		c.mu.Unlock()

		return nil
	}

	c.query.Filter = filter
	c.mu.Unlock()

	return c.FetchPage(ctx, 0)
}

// UpdateFilter edits a copy of the current filter and applies it with SetFilter.
func (c *ListController[T, F]) UpdateFilter(ctx context.Context, mutate func(*F)) error {
	c.mu.Lock()
	filter := c.query.Filter
	c.mu.Unlock()

	mutate(&filter)

	return c.SetFilter(ctx, filter)
}

// GoToPage fetches target if it lies within [0, totalPages). Anything else is ignored.
func (c *ListController[T, F]) GoToPage(ctx context.Context, target int) error {
	c.mu.Lock()
	total := c.totalPages
	c.mu.Unlock()

	if target < 0 || target >= total {
		return nil
	}

	return c.FetchPage(ctx, target)
}

// NextPage moves one page forward if there is one.
func (c *ListController[T, F]) NextPage(ctx context.Context) error {
	return c.GoToPage(ctx, c.current()+1)
}

// PrevPage moves one page back if there is one.
func (c *ListController[T, F]) PrevPage(ctx context.Context) error {
	return c.GoToPage(ctx, c.current()-1)
}

// Refresh refetches the current page.
func (c *ListController[T, F]) Refresh(ctx context.Context) error {
	return c.FetchPage(ctx, c.current())
}

// RefreshAfterRemoval refetches after an item was removed from the current
// page. When that item was the only one on a page past the first, the
// previous page is loaded instead.
func (c *ListController[T, F]) RefreshAfterRemoval(ctx context.Context) error {
	c.mu.Lock()
	target := c.currentPage
	if len(c.items) == 1 && c.currentPage > 0 {
		target = c.currentPage - 1
	}
	c.mu.Unlock()

	return c.FetchPage(ctx, target)
}

// Snapshot returns a copy of the controller state.
func (c *ListController[T, F]) Snapshot() ListState[T, F] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return ListState[T, F]{
		Query:       c.query,
		Items:       slices.Clone(c.items),
		TotalPages:  c.totalPages,
		CurrentPage: c.currentPage,
	}
}

func (c *ListController[T, F]) current() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.currentPage
}

func codeOf[T any](envelope *bookhub.Envelope[T]) string {
	if envelope == nil {
		return ""
	}

	return envelope.Code
}
