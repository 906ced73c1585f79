package screen

import (
	"context"
	"slices"
	"sync"

	"github.com/bookhub/admin-client/pkg/bookhub"
)

// LoadStatus is the cache state of one category partition.
type LoadStatus int

const (
	Unloaded LoadStatus = iota
	Loading
	Loaded
)

func (s LoadStatus) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// CategoryState is a point-in-time copy of a category browser.
type CategoryState struct {
	// Partition is the visible partition, empty when none is shown.
	Partition   bookhub.CategoryType                `json:"partition,omitempty" yaml:"partition,omitempty"`
	Status      map[bookhub.CategoryType]LoadStatus `json:"status"              yaml:"status"`
	Tree        []bookhub.Category                  `json:"tree"                yaml:"tree"`
	ExpandedIDs []int64                             `json:"expanded_ids"        yaml:"expanded_ids"`
}

// CategoryBrowser caches the category tree of each partition for the life
// of the screen and tracks which partition and nodes are expanded.
type CategoryBrowser struct {
	mu          sync.Mutex
	categories  bookhub.CategoriesClient
	credentials bookhub.CredentialProvider
	logger      bookhub.Logger

	trees    map[bookhub.CategoryType][]bookhub.Category
	status   map[bookhub.CategoryType]LoadStatus
	visible  bookhub.CategoryType
	expanded map[int64]struct{}
	onSelect func(bookhub.Category)

	// done is closed when the in-flight fetch of a partition settles.
	done map[bookhub.CategoryType]chan struct{}
}

// NewCategoryBrowser creates a browser with every partition unloaded.
func NewCategoryBrowser(categories bookhub.CategoriesClient, credentials bookhub.CredentialProvider, opts ...Option) *CategoryBrowser {
	built := buildOptions(opts)

	return &CategoryBrowser{
		categories:  categories,
		credentials: credentials,
		logger:      built.logger,
		trees:       make(map[bookhub.CategoryType][]bookhub.Category),
		status:      make(map[bookhub.CategoryType]LoadStatus),
		expanded:    make(map[int64]struct{}),
		done:        make(map[bookhub.CategoryType]chan struct{}),
	}
}

// OnSelect registers the callback Choose forwards nodes to.
func (b *CategoryBrowser) OnSelect(fn func(bookhub.Category)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.onSelect = fn
}

// SelectPartition toggles the visibility of partition, fetching its tree
// the first time. A selection while the partition is loading is ignored.
// Every selection collapses all expanded nodes.
func (b *CategoryBrowser) SelectPartition(ctx context.Context, partition bookhub.CategoryType) error {
	b.mu.Lock()
	switch b.status[partition] {
	case Loading:
		b.mu.Unlock()

		return nil
	case Loaded:
		if b.visible == partition {
			b.visible = ""
		} else {
			b.visible = partition
		}

		b.expanded = make(map[int64]struct{})
		b.mu.Unlock()

		return nil
	}
	b.mu.Unlock()

	token, ok := b.credentials.Token(ctx)
	if !ok {
		return bookhub.ErrLoginRequired
	}

	b.mu.Lock()
	if b.status[partition] != Unloaded {
		b.mu.Unlock()

		return nil
	}

	b.beginLocked(partition)
	b.mu.Unlock()

	_, err := b.fetch(ctx, token, partition)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.visible = partition
	b.expanded = make(map[int64]struct{})

	return nil
}

// Load returns the tree of partition, fetching it if it is not cached. A
// Load during a fetch of the same partition waits for that fetch instead of
// starting another. Visibility and expansion are left alone.
func (b *CategoryBrowser) Load(ctx context.Context, partition bookhub.CategoryType) ([]bookhub.Category, error) {
	for {
		b.mu.Lock()
		switch b.status[partition] {
		case Loaded:
			tree := slices.Clone(b.trees[partition])
			b.mu.Unlock()

			return tree, nil
		case Loading:
			done := b.done[partition]
			b.mu.Unlock()

			select {
			case <-done:
				continue
			case <-ctx.Done():
				return nil, bookhub.TransportFailure(ctx.Err())
			}
		}
		b.mu.Unlock()

		token, ok := b.credentials.Token(ctx)
		if !ok {
			return nil, bookhub.ErrLoginRequired
		}

		b.mu.Lock()
		if b.status[partition] != Unloaded {
			b.mu.Unlock()

			continue
		}

		b.beginLocked(partition)
		b.mu.Unlock()

		return b.fetch(ctx, token, partition)
	}
}

// ToggleCategory expands or collapses node id.
func (b *CategoryBrowser) ToggleCategory(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.expanded[id]; ok {
		delete(b.expanded, id)

		return
	}

	b.expanded[id] = struct{}{}
}

// IsExpanded reports whether node id is expanded.
func (b *CategoryBrowser) IsExpanded(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.expanded[id]

	return ok
}

// Invalidate drops the cached tree of partition so the next selection refetches it.
func (b *CategoryBrowser) Invalidate(partition bookhub.CategoryType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.status[partition] == Loading {
		return
	}

	delete(b.trees, partition)
	b.status[partition] = Unloaded

	if b.visible == partition {
		b.visible = ""
	}
}

// Choose forwards the cached node id to the OnSelect callback.
func (b *CategoryBrowser) Choose(id int64) bool {
	b.mu.Lock()
	node, ok := b.findLocked(id)
	onSelect := b.onSelect
	b.mu.Unlock()

	if !ok {
		return false
	}

	if onSelect != nil {
		onSelect(node)
	}

	return true
}

// Snapshot returns a copy of the browser state.
func (b *CategoryBrowser) Snapshot() CategoryState {
	b.mu.Lock()
	defer b.mu.Unlock()

	state := CategoryState{
		Partition:   b.visible,
		Status:      make(map[bookhub.CategoryType]LoadStatus, len(b.status)),
		Tree:        []bookhub.Category{},
		ExpandedIDs: make([]int64, 0, len(b.expanded)),
	}

	for partition, status := range b.status {
		state.Status[partition] = status
	}

	if b.visible != "" {
		state.Tree = slices.Clone(b.trees[b.visible])
	}

	for id := range b.expanded {
		state.ExpandedIDs = append(state.ExpandedIDs, id)
	}

	slices.Sort(state.ExpandedIDs)

	return state
}

func (b *CategoryBrowser) beginLocked(partition bookhub.CategoryType) {
	b.status[partition] = Loading
	b.done[partition] = make(chan struct{})
}

// fetch loads partition, which the caller has already marked Loading.
func (b *CategoryBrowser) fetch(ctx context.Context, token string, partition bookhub.CategoryType) ([]bookhub.Category, error) {
	envelope, err := b.categories.Tree(ctx, token, partition)

	var failure error

	switch {
	case err != nil:
		b.logger.Error("category tree fetch failed", map[string]interface{}{
			"partition": string(partition),
			"error":     err.Error(),
		})

		failure = bookhub.TransportFailure(err)
	case !envelope.Succeeded():
		b.logger.Warn("category tree fetch rejected", map[string]interface{}{
			"partition": string(partition),
			"code":      codeOf(envelope),
		})

		failure = envelope.Err()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	close(b.done[partition])
	delete(b.done, partition)

	if failure != nil {
		b.status[partition] = Unloaded

		return nil, failure
	}

	tree := []bookhub.Category{}
	if envelope.Data != nil {
		tree = *envelope.Data
	}

	b.trees[partition] = tree
	b.status[partition] = Loaded

	return slices.Clone(tree), nil
}

func (b *CategoryBrowser) findLocked(id int64) (bookhub.Category, bool) {
	for _, tree := range b.trees {
		for _, node := range tree {
			if node.CategoryID == id {
				return node, true
			}

			for _, child := range node.SubCategories {
				if child.CategoryID == id {
					return child, true
				}
			}
		}
	}

	return bookhub.Category{}, false
}
