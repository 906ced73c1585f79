package client

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/bookhub/admin-client/internal/http"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

const (
	bookDTOField   = "dto"
	bookCoverField = "coverImageFile"
)

// BooksClient implements bookhub.BooksClient.
type BooksClient struct {
	httpClient *http.Client
}

var _ bookhub.BooksClient = (*BooksClient)(nil)

// NewBooksClient creates a new books client.
func NewBooksClient(httpClient *http.Client) *BooksClient {
	return &BooksClient{
		httpClient: httpClient,
	}
}

// Search implements bookhub.BooksClient.Search. The endpoint answers with a
// bare array; the page window of the query is sent but not honoured.
func (c *BooksClient) Search(ctx context.Context, token string, query bookhub.Query[bookhub.BookFilter]) (*bookhub.Envelope[bookhub.Page[bookhub.Book]], error) {
	resp, err := c.httpClient.Get(ctx, "/api/v1/books/search", query.ToValues(), token)

	return decodeEnvelope[bookhub.Page[bookhub.Book]](resp, err, "searching books")
}

// Create implements bookhub.BooksClient.Create.
func (c *BooksClient) Create(ctx context.Context, token string, request *bookhub.BookCreateRequest, cover *bookhub.FileUpload) (*bookhub.Status, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "POST",
		Path:   "/api/v1/admin/books",
		Token:  token,
		Multipart: &http.MultipartBody{
			JSONField: bookDTOField,
			JSON:      request,
			Files:     []http.FilePart{{Field: bookCoverField, File: cover}},
		},
	})

	return decodeEnvelope[json.RawMessage](resp, err, "creating book")
}

// Update implements bookhub.BooksClient.Update.
func (c *BooksClient) Update(ctx context.Context, token string, isbn string, request *bookhub.BookUpdateRequest, cover *bookhub.FileUpload) (*bookhub.Status, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "PUT",
		Path:   "/api/v1/admin/books/" + url.PathEscape(isbn),
		Token:  token,
		Multipart: &http.MultipartBody{
			JSONField: bookDTOField,
			JSON:      request,
			Files:     []http.FilePart{{Field: bookCoverField, File: cover}},
		},
	})

	return decodeEnvelope[json.RawMessage](resp, err, "updating book")
}

// Hide implements bookhub.BooksClient.Hide. Hidden books drop out of the
// default listing but stay on the server.
func (c *BooksClient) Hide(ctx context.Context, token string, isbn string) (*bookhub.Status, error) {
	path := "/api/v1/admin/books/" + url.PathEscape(isbn) + "/hidden"

	resp, err := c.httpClient.Put(ctx, path, nil, token)

	return decodeEnvelope[json.RawMessage](resp, err, "hiding book")
}
