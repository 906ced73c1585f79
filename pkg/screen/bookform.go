package screen

import (
	"context"
	"slices"
	"sync"

	"github.com/bookhub/admin-client/pkg/bookhub"
)

// BookForm is the book registration form: a category picker fed by the
// category cache, debounced author and publisher lookups, and submission
// through the book editor.
type BookForm struct {
	Authors    *Lookup[bookhub.Author]
	Publishers *Lookup[bookhub.Publisher]
	Categories *CategoryBrowser

	editor *Coordinator[string, bookhub.Book, BookCreateForm, BookUpdateForm]

	mu         sync.Mutex
	partition  bookhub.CategoryType
	choices    []Choice
	categoryID int64
}

// NewBookForm creates a registration form that submits through editor.
func NewBookForm(client bookhub.Client, editor *Coordinator[string, bookhub.Book, BookCreateForm, BookUpdateForm], credentials bookhub.CredentialProvider, opts ...Option) *BookForm {
	return &BookForm{
		Authors:    NewAuthorLookup(client.Authors(), credentials, opts...),
		Publishers: NewPublisherLookup(client.Publishers(), credentials, opts...),
		Categories: NewCategoryBrowser(client.Categories(), credentials, opts...),
		editor:     editor,
		choices:    []Choice{},
	}
}

// Mount loads the domestic categories.
func (f *BookForm) Mount(ctx context.Context) error {
	return f.SelectPartition(ctx, bookhub.CategoryDomestic)
}

// SelectPartition switches the category picker to partition. The chosen
// category is cleared; on failure the previous choices stay.
func (f *BookForm) SelectPartition(ctx context.Context, partition bookhub.CategoryType) error {
	tree, err := f.Categories.Load(ctx, partition)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.partition = partition
	f.choices = CategoryChoices(tree)
	f.categoryID = 0

	return nil
}

// Choices returns the pickable categories of the current partition.
func (f *BookForm) Choices() []Choice {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.choices)
}

// ChooseCategory picks a category from the current choices.
func (f *BookForm) ChooseCategory(id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, choice := range f.choices {
		if choice.ID == id {
			f.categoryID = id

			return true
		}
	}

	return false
}

// Submit fills the selected category, author and publisher into draft and
// creates the book. Missing selections fail locally without a remote call.
func (f *BookForm) Submit(ctx context.Context, draft bookhub.BookCreateRequest, cover *bookhub.FileUpload) error {
	f.mu.Lock()
	draft.CategoryID = f.categoryID
	f.mu.Unlock()

	draft.AuthorID = 0
	if author, ok := f.Authors.Selected(); ok {
		draft.AuthorID = author.ID
	}

	draft.PublisherID = 0
	if publisher, ok := f.Publishers.Selected(); ok {
		draft.PublisherID = publisher.ID
	}

	return f.editor.SubmitCreate(ctx, &BookCreateForm{Request: draft, Cover: cover})
}

// Close cancels pending lookups.
func (f *BookForm) Close() {
	f.Authors.Close()
	f.Publishers.Close()
}

// CategoryChoices flattens a tree into "parent > child" choices. Only
// children are pickable.
func CategoryChoices(tree []bookhub.Category) []Choice {
	choices := []Choice{}

	for _, parent := range tree {
		for _, child := range parent.SubCategories {
			choices = append(choices, Choice{
				ID:    child.CategoryID,
				Label: parent.CategoryName + " > " + child.CategoryName,
			})
		}
	}

	return choices
}
