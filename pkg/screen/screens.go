package screen

import (
	"context"

	"github.com/bookhub/admin-client/pkg/bookhub"
)

// PolicyScreen lists discount policies and edits them.
type PolicyScreen struct {
	List   *ListController[bookhub.Policy, bookhub.PolicyFilter]
	Editor *Coordinator[int64, bookhub.PolicyDetail, bookhub.PolicyCreateRequest, bookhub.PolicyUpdateRequest]
}

// NewPolicyScreen wires the policy list to its editor.
func NewPolicyScreen(policies bookhub.PoliciesClient, credentials bookhub.CredentialProvider, opts ...Option) *PolicyScreen {
	list := NewListController[bookhub.Policy, bookhub.PolicyFilter]("policies", policies.List, credentials, bookhub.PolicyFilter{}, opts...)

	editor := NewCoordinator("policies", Mutations[int64, bookhub.PolicyDetail, bookhub.PolicyCreateRequest, bookhub.PolicyUpdateRequest]{
		Detail: policies.Get,
		Create: policies.Create,
		Update: policies.Update,
		Remove: policies.Delete,
	}, list, credentials, opts...)

	return &PolicyScreen{List: list, Editor: editor}
}

// Mount loads the first page.
func (s *PolicyScreen) Mount(ctx context.Context) error {
	return s.List.Mount(ctx)
}

// PublisherScreen lists publishers and edits them.
type PublisherScreen struct {
	List   *ListController[bookhub.Publisher, bookhub.PublisherFilter]
	Editor *Coordinator[int64, bookhub.Publisher, bookhub.PublisherRequest, bookhub.PublisherRequest]
}

// NewPublisherScreen wires the publisher list to its editor.
func NewPublisherScreen(publishers bookhub.PublishersClient, credentials bookhub.CredentialProvider, opts ...Option) *PublisherScreen {
	list := NewListController[bookhub.Publisher, bookhub.PublisherFilter]("publishers", publishers.List, credentials, bookhub.PublisherFilter{}, opts...)

	editor := NewCoordinator("publishers", Mutations[int64, bookhub.Publisher, bookhub.PublisherRequest, bookhub.PublisherRequest]{
		Detail: publishers.Get,
		Create: publishers.Create,
		Update: publishers.Update,
		Remove: publishers.Delete,
	}, list, credentials, opts...)

	return &PublisherScreen{List: list, Editor: editor}
}

// Mount loads the first page.
func (s *PublisherScreen) Mount(ctx context.Context) error {
	return s.List.Mount(ctx)
}

// StockScreen lists stock levels and records stock movements. Stock rows
// are never created or removed from here.
type StockScreen struct {
	List   *ListController[bookhub.Stock, bookhub.StockFilter]
	Editor *Coordinator[int64, bookhub.Stock, struct{}, bookhub.StockUpdateRequest]
}

// NewStockScreen wires the stock list to its editor.
func NewStockScreen(stocks bookhub.StocksClient, credentials bookhub.CredentialProvider, opts ...Option) *StockScreen {
	list := NewListController[bookhub.Stock, bookhub.StockFilter]("stocks", stocks.List, credentials, bookhub.StockFilter{}, opts...)

	editor := NewCoordinator("stocks", Mutations[int64, bookhub.Stock, struct{}, bookhub.StockUpdateRequest]{
		Detail: stocks.Get,
		Update: stocks.Update,
	}, list, credentials, opts...)

	return &StockScreen{List: list, Editor: editor}
}

// Mount loads the first page.
func (s *StockScreen) Mount(ctx context.Context) error {
	return s.List.Mount(ctx)
}

// BookCreateForm is a new book with its optional cover image.
type BookCreateForm struct {
	Request bookhub.BookCreateRequest
	Cover   *bookhub.FileUpload
}

// BookUpdateForm is a book edit with an optional replacement cover.
type BookUpdateForm struct {
	Request bookhub.BookUpdateRequest
	Cover   *bookhub.FileUpload
}

// BookScreen searches the catalog and registers, edits and hides books.
type BookScreen struct {
	List   *ListController[bookhub.Book, bookhub.BookFilter]
	Editor *Coordinator[string, bookhub.Book, BookCreateForm, BookUpdateForm]
}

// NewBookScreen wires the book search to its editor. Books have no detail
// endpoint, so edits start from a search row via OpenEditWith.
func NewBookScreen(books bookhub.BooksClient, credentials bookhub.CredentialProvider, opts ...Option) *BookScreen {
	list := NewListController[bookhub.Book, bookhub.BookFilter]("books", books.Search, credentials, bookhub.BookFilter{}, opts...)

	editor := NewCoordinator("books", Mutations[string, bookhub.Book, BookCreateForm, BookUpdateForm]{
		Create: func(ctx context.Context, token string, form *BookCreateForm) (*bookhub.Status, error) {
			return books.Create(ctx, token, &form.Request, form.Cover)
		},
		Update: func(ctx context.Context, token string, isbn string, form *BookUpdateForm) (*bookhub.Status, error) {
			return books.Update(ctx, token, isbn, &form.Request, form.Cover)
		},
		Remove: books.Hide,
	}, list, credentials, opts...)

	return &BookScreen{List: list, Editor: editor}
}

// Search runs a keyword search from the first page. Repeating the current
// keyword searches again.
func (s *BookScreen) Search(ctx context.Context, keyword string) error {
	filter := bookhub.BookFilter{Keyword: keyword}
	if s.List.Snapshot().Query.Filter == filter {
		return s.List.FetchPage(ctx, 0)
	}

	return s.List.SetFilter(ctx, filter)
}

// Edit opens the editor for a row of the current results.
func (s *BookScreen) Edit(isbn string) bool {
	for _, book := range s.List.Snapshot().Items {
		if book.Isbn == isbn {
			s.Editor.OpenEditWith(isbn, book)

			return true
		}
	}

	return false
}
