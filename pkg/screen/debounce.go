package screen

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/bookhub/admin-client/pkg/bookhub"
)

// Debouncer runs the most recent of a burst of calls once the input has
// been quiet for the configured delay.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger cancels the pending call, if any, and schedules fn.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Choice is one selectable entry of a lookup or picker.
type Choice struct {
	ID    int64  `json:"id"    yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// Searcher runs one remote search for text.
type Searcher[R any] func(ctx context.Context, token, text string) (*bookhub.Envelope[bookhub.Page[R]], error)

// Lookup is a search-as-you-type picker. Input schedules a debounced remote
// search; results for text that is no longer current are dropped.
type Lookup[R any] struct {
	mu          sync.Mutex
	name        string
	debouncer   *Debouncer
	search      Searcher[R]
	toChoice    func(R) Choice
	credentials bookhub.CredentialProvider
	logger      bookhub.Logger

	text     string
	choices  []Choice
	selected *Choice
	closed   bool
	onUpdate func([]Choice)
}

// NewLookup creates a lookup named name. toChoice turns a result row into a choice.
func NewLookup[R any](name string, search Searcher[R], toChoice func(R) Choice, credentials bookhub.CredentialProvider, opts ...Option) *Lookup[R] {
	built := buildOptions(opts)

	return &Lookup[R]{
		name:        name,
		debouncer:   NewDebouncer(built.debounceDelay),
		search:      search,
		toChoice:    toChoice,
		credentials: credentials,
		logger:      built.logger,
		choices:     []Choice{},
	}
}

// NewAuthorLookup searches authors by name. Choices read "name (email)".
func NewAuthorLookup(authors bookhub.AuthorsClient, credentials bookhub.CredentialProvider, opts ...Option) *Lookup[bookhub.Author] {
	built := buildOptions(opts)

	search := func(ctx context.Context, token, text string) (*bookhub.Envelope[bookhub.Page[bookhub.Author]], error) {
		query := bookhub.NewQuery(bookhub.AuthorFilter{Name: text}, built.pageSize)

		return authors.List(ctx, token, query)
	}

	return NewLookup("author", search, func(author bookhub.Author) Choice {
		return Choice{ID: author.AuthorID, Label: fmt.Sprintf("%s (%s)", author.AuthorName, author.AuthorEmail)}
	}, credentials, opts...)
}

// NewPublisherLookup searches publishers by name.
func NewPublisherLookup(publishers bookhub.PublishersClient, credentials bookhub.CredentialProvider, opts ...Option) *Lookup[bookhub.Publisher] {
	built := buildOptions(opts)

	search := func(ctx context.Context, token, text string) (*bookhub.Envelope[bookhub.Page[bookhub.Publisher]], error) {
		query := bookhub.NewQuery(bookhub.PublisherFilter{Keyword: text}, built.pageSize)

		return publishers.List(ctx, token, query)
	}

	return NewLookup("publisher", search, func(publisher bookhub.Publisher) Choice {
		return Choice{ID: publisher.PublisherID, Label: publisher.PublisherName}
	}, credentials, opts...)
}

// OnUpdate registers fn to receive every accepted result set. fn runs on the
// timer goroutine.
func (l *Lookup[R]) OnUpdate(fn func([]Choice)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.onUpdate = fn
}

// Input records the typed text. The pending search is always cancelled; a
// new one is scheduled only for non-empty text while a token is available.
func (l *Lookup[R]) Input(ctx context.Context, text string) {
	l.mu.Lock()
	l.text = text
	closed := l.closed
	l.mu.Unlock()

	l.debouncer.Cancel()

	if closed || text == "" {
		return
	}

	token, ok := l.credentials.Token(ctx)
	if !ok {
		return
	}

	l.debouncer.Trigger(func() {
		l.run(ctx, token, text)
	})
}

// Text returns the current input.
func (l *Lookup[R]) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.text
}

// Choices returns the latest accepted results.
func (l *Lookup[R]) Choices() []Choice {
	l.mu.Lock()
	defer l.mu.Unlock()

	return slices.Clone(l.choices)
}

// Select picks the choice with id from the current results.
func (l *Lookup[R]) Select(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, choice := range l.choices {
		if choice.ID == id {
			selected := choice
			l.selected = &selected

			return true
		}
	}

	return false
}

// Clear drops the selection.
func (l *Lookup[R]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.selected = nil
}

// Selected returns the picked choice, if any.
func (l *Lookup[R]) Selected() (Choice, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.selected == nil {
		return Choice{}, false
	}

	return *l.selected, true
}

// Close cancels the pending search. Results arriving afterwards are dropped.
func (l *Lookup[R]) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()

	l.debouncer.Cancel()
}

func (l *Lookup[R]) run(ctx context.Context, token, text string) {
	envelope, err := l.search(ctx, token, text)

	if err != nil {
		l.logger.Error("lookup search failed", map[string]interface{}{
			"lookup": l.name,
			"error":  err.Error(),
		})

		return
	}

	if !envelope.Succeeded() || envelope.Data == nil {
		l.logger.Warn("lookup search rejected", map[string]interface{}{
			"lookup": l.name,
			"code":   codeOf(envelope),
		})

		return
	}

	choices := make([]Choice, 0, len(envelope.Data.Content))
	for _, row := range envelope.Data.Content {
		choices = append(choices, l.toChoice(row))
	}

	l.mu.Lock()
	if l.closed || l.text != text {
		l.mu.Unlock()

		return
	}

	l.choices = choices
	onUpdate := l.onUpdate
	l.mu.Unlock()

	if onUpdate != nil {
		onUpdate(slices.Clone(choices))
	}
}
