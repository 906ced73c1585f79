package bookhub

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// CodeSuccess is the envelope code every successful remote call carries.
const CodeSuccess = "SU"

// Envelope is the uniform wrapper returned by every BookHub endpoint.
type Envelope[T any] struct {
	Code    string `json:"code"           yaml:"code"`
	Message string `json:"message"        yaml:"message"`
	Data    *T     `json:"data,omitempty" yaml:"data,omitempty"`
}

// Status is an envelope whose payload is not interpreted by the caller.
type Status = Envelope[json.RawMessage]

// Succeeded reports whether the envelope carries the success code.
func (e *Envelope[T]) Succeeded() bool {
	return e != nil && e.Code == CodeSuccess
}

// Err returns nil for a successful envelope and a remote Failure otherwise.
func (e *Envelope[T]) Err() error {
	if e == nil {
		return ErrEmptyEnvelope
	}

	if e.Succeeded() {
		return nil
	}

	return RemoteFailure(e.Code, e.Message)
}

// Page is a single page of list results.
//
// Some endpoints answer with a bare JSON array instead of the paged object.
// Decoding normalizes both shapes, so the rest of the module only ever sees
// {content, totalPages, currentPage}.
type Page[T any] struct {
	Content     []T  `json:"content"     yaml:"content"`
	TotalPages  int  `json:"totalPages"  yaml:"total_pages"`
	CurrentPage int  `json:"currentPage" yaml:"current_page"`
	Unpaged     bool `json:"-"           yaml:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Page[T]) UnmarshalJSON(data []byte) error {
	page, err := NormalizePage[T](data)
	if err != nil {
		return err
	}

	*p = *page

	return nil
}

// NormalizePage decodes either a paged object or a bare array of items.
// A bare array becomes a single page: totalPages=1, currentPage=0.
func NormalizePage[T any](data []byte) (*Page[T], error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &Page[T]{Content: []T{}}, nil
	}

	if trimmed[0] == '[' {
		var items []T

		err := json.Unmarshal(trimmed, &items)
		if err != nil {
			return nil, fmt.Errorf("decoding unpaged content: %w", err)
		}

		if items == nil {
			items = []T{}
		}

		return &Page[T]{Content: items, TotalPages: 1, CurrentPage: 0, Unpaged: true}, nil
	}

	var paged struct {
		Content     []T `json:"content"`
		TotalPages  int `json:"totalPages"`
		CurrentPage int `json:"currentPage"`
	}

	err := json.Unmarshal(trimmed, &paged)
	if err != nil {
		return nil, fmt.Errorf("decoding paged content: %w", err)
	}

	if paged.Content == nil {
		paged.Content = []T{}
	}

	return &Page[T]{
		Content:     paged.Content,
		TotalPages:  paged.TotalPages,
		CurrentPage: paged.CurrentPage,
	}, nil
}
