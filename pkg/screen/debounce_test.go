package screen_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDebounce   = 20 * time.Millisecond
	eventuallyWait = 2 * time.Second
	eventuallyTick = 5 * time.Millisecond
	quietPeriod    = 100 * time.Millisecond
)

// fakeAuthors implements bookhub.AuthorsClient. Searches for a name listed
// in gates block until that channel is closed.
type fakeAuthors struct {
	mu      sync.Mutex
	names   []string
	authors []bookhub.Author
	gates   map[string]chan struct{}
}

var _ bookhub.AuthorsClient = (*fakeAuthors)(nil)

func (f *fakeAuthors) List(ctx context.Context, token string, query bookhub.Query[bookhub.AuthorFilter]) (*bookhub.Envelope[bookhub.Page[bookhub.Author]], error) {
	f.mu.Lock()
	f.names = append(f.names, query.Filter.Name)
	gate := f.gates[query.Filter.Name]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	matches := []bookhub.Author{}

	for _, author := range f.authors {
		if len(query.Filter.Name) <= len(author.AuthorName) && author.AuthorName[:len(query.Filter.Name)] == query.Filter.Name {
			matches = append(matches, author)
		}
	}

	return &bookhub.Envelope[bookhub.Page[bookhub.Author]]{
		Code: bookhub.CodeSuccess,
		Data: &bookhub.Page[bookhub.Author]{Content: matches, TotalPages: 1},
	}, nil
}

func (f *fakeAuthors) searched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.names...)
}

func newFakeAuthors() *fakeAuthors {
	return &fakeAuthors{
		authors: []bookhub.Author{
			{AuthorID: 1, AuthorName: "Han Kang", AuthorEmail: "han@bookhub.com"},
			{AuthorID: 2, AuthorName: "Haruki Murakami", AuthorEmail: "haruki@bookhub.com"},
		},
		gates: make(map[string]chan struct{}),
	}
}

func TestDebouncer(t *testing.T) {
	t.Parallel()

	t.Run("only the last trigger runs", func(t *testing.T) {
		t.Parallel()

		debouncer := screen.NewDebouncer(testDebounce)

		var runs atomic.Int32

		var last atomic.Int32

		for i := 1; i <= 5; i++ {
			value := int32(i)

			debouncer.Trigger(func() {
				runs.Add(1)
				last.Store(value)
			})
		}

		require.Eventually(t, func() bool { return runs.Load() == 1 }, eventuallyWait, eventuallyTick)
		time.Sleep(quietPeriod)
		assert.Equal(t, int32(1), runs.Load())
		assert.Equal(t, int32(5), last.Load())
	})

	t.Run("cancel drops the pending call", func(t *testing.T) {
		t.Parallel()

		debouncer := screen.NewDebouncer(testDebounce)

		var runs atomic.Int32

		debouncer.Trigger(func() { runs.Add(1) })
		debouncer.Cancel()

		time.Sleep(quietPeriod)
		assert.Equal(t, int32(0), runs.Load())
	})
}

func TestLookup_Input(t *testing.T) {
	t.Parallel()

	t.Run("a burst of keystrokes makes one search", func(t *testing.T) {
		t.Parallel()

		authors := newFakeAuthors()
		lookup := screen.NewAuthorLookup(authors, loggedIn(), screen.WithDebounceDelay(testDebounce))
		defer lookup.Close()

		for _, text := range []string{"H", "Ha", "Han"} {
			lookup.Input(context.Background(), text)
		}

		require.Eventually(t, func() bool { return len(lookup.Choices()) == 1 }, eventuallyWait, eventuallyTick)
		time.Sleep(quietPeriod)

		assert.Equal(t, []string{"Han"}, authors.searched())
		assert.Equal(t, []screen.Choice{{ID: 1, Label: "Han Kang (han@bookhub.com)"}}, lookup.Choices())

		assert.True(t, lookup.Select(1))
		selected, ok := lookup.Selected()
		require.True(t, ok)
		assert.Equal(t, int64(1), selected.ID)
		assert.False(t, lookup.Select(99))

		lookup.Clear()
		_, ok = lookup.Selected()
		assert.False(t, ok)
	})

	t.Run("empty input schedules nothing", func(t *testing.T) {
		t.Parallel()

		authors := newFakeAuthors()
		lookup := screen.NewAuthorLookup(authors, loggedIn(), screen.WithDebounceDelay(testDebounce))
		defer lookup.Close()

		lookup.Input(context.Background(), "Ha")
		lookup.Input(context.Background(), "")

		time.Sleep(quietPeriod)
		assert.Empty(t, authors.searched())
		assert.Empty(t, lookup.Text())
	})

	t.Run("missing token schedules nothing", func(t *testing.T) {
		t.Parallel()

		authors := newFakeAuthors()
		lookup := screen.NewAuthorLookup(authors, loggedOut(), screen.WithDebounceDelay(testDebounce))
		defer lookup.Close()

		lookup.Input(context.Background(), "Han")

		time.Sleep(quietPeriod)
		assert.Empty(t, authors.searched())
	})

	t.Run("close cancels the pending search", func(t *testing.T) {
		t.Parallel()

		authors := newFakeAuthors()
		lookup := screen.NewAuthorLookup(authors, loggedIn(), screen.WithDebounceDelay(testDebounce))

		lookup.Input(context.Background(), "Han")
		lookup.Close()

		time.Sleep(quietPeriod)
		assert.Empty(t, authors.searched())
	})

	t.Run("result for an abandoned query is dropped", func(t *testing.T) {
		t.Parallel()

		authors := newFakeAuthors()
		authors.gates["Ha"] = make(chan struct{})
		lookup := screen.NewAuthorLookup(authors, loggedIn(), screen.WithDebounceDelay(testDebounce))
		defer lookup.Close()

		var updates atomic.Int32

		lookup.OnUpdate(func([]screen.Choice) { updates.Add(1) })

		lookup.Input(context.Background(), "Ha")
		require.Eventually(t, func() bool { return len(authors.searched()) == 1 }, eventuallyWait, eventuallyTick)

		lookup.Input(context.Background(), "Haruki")
		require.Eventually(t, func() bool { return updates.Load() == 1 }, eventuallyWait, eventuallyTick)

		close(authors.gates["Ha"])
		time.Sleep(quietPeriod)

		assert.Equal(t, int32(1), updates.Load())
		assert.Equal(t, []screen.Choice{{ID: 2, Label: "Haruki Murakami (haruki@bookhub.com)"}}, lookup.Choices())
	})
}

func TestPublisherLookup(t *testing.T) {
	t.Parallel()

	fake := newFakeList[bookhub.Publisher, bookhub.PublisherFilter](1, map[int][]bookhub.Publisher{
		0: {{PublisherID: 4, PublisherName: "Minumsa"}},
	})
	lookup := screen.NewPublisherLookup(&fakePublishers{fakeList: fake}, loggedIn(), screen.WithDebounceDelay(testDebounce))
	defer lookup.Close()

	lookup.Input(context.Background(), "Min")

	require.Eventually(t, func() bool { return len(lookup.Choices()) == 1 }, eventuallyWait, eventuallyTick)
	assert.Equal(t, screen.Choice{ID: 4, Label: "Minumsa"}, lookup.Choices()[0])
	assert.Equal(t, "Min", fake.lastQuery().Filter.Keyword)
}

// fakePublishers implements bookhub.PublishersClient.
type fakePublishers struct {
	*fakeList[bookhub.Publisher, bookhub.PublisherFilter]
}

func (f *fakePublishers) Get(ctx context.Context, token string, publisherID int64) (*bookhub.Envelope[bookhub.Publisher], error) {
	return &bookhub.Envelope[bookhub.Publisher]{Code: bookhub.CodeSuccess, Data: &bookhub.Publisher{PublisherID: publisherID}}, nil
}

func (f *fakePublishers) Create(ctx context.Context, token string, request *bookhub.PublisherRequest) (*bookhub.Status, error) {
	return success(), nil
}

func (f *fakePublishers) Update(ctx context.Context, token string, publisherID int64, request *bookhub.PublisherRequest) (*bookhub.Status, error) {
	return success(), nil
}

func (f *fakePublishers) Delete(ctx context.Context, token string, publisherID int64) (*bookhub.Status, error) {
	return success(), nil
}
