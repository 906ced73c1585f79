package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/spf13/cobra"
)

// NewBooksCommand creates the books command group
func NewBooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "books",
		Aliases: []string{"book"},
		Short:   "Manage the book catalog",
		Long:    "Search, register, edit and hide books",
	}

	cmd.AddCommand(newBooksSearchCommand())
	cmd.AddCommand(newBooksCreateCommand())
	cmd.AddCommand(newBooksUpdateCommand())
	cmd.AddCommand(newBooksHideCommand())

	return cmd
}

func newBookScreen() (*session, *screen.BookScreen, error) {
	s, err := newSession()
	if err != nil {
		return nil, nil, err
	}

	return s, screen.NewBookScreen(s.client.Books(), s.credentials, s.options...), nil
}

func bookRow(book bookhub.Book) []string {
	return []string{
		book.Isbn,
		book.BookTitle,
		formatOptional(book.AuthorName),
		formatOptional(book.PublisherName),
		strconv.FormatInt(book.BookPrice, 10),
		displayEnum(string(book.BookStatus)),
	}
}

func newBooksSearchCommand() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "search [KEYWORD]",
		Short: "Search books",
		Long:  "Search the catalog by title, author or ISBN keyword",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, books, err := newBookScreen()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			var keyword string
			if len(args) > 0 {
				keyword = args[0]
			}

			err = showPage(cmd.Context(), books.List, bookhub.BookFilter{Keyword: keyword}, page)
			if err != nil {
				return err
			}

			return renderList(books.List.Snapshot(), []interface{}{"ISBN", "Title", "Author", "Publisher", "Price", "Status"}, bookRow)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")

	return cmd
}

// bookCreateFlags are the inputs of the registration form.
type bookCreateFlags struct {
	isbn          string
	title         string
	price         int64
	publishedDate string
	pageCount     string
	language      string
	description   string
	partition     string
	category      string
	author        string
	publisher     string
	cover         string
}

func newBooksCreateCommand() *cobra.Command {
	var flags bookCreateFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a book",
		Long: `Register a book. The category is picked from the category tree of the
chosen partition; author and publisher are looked up by name.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := validateDate(flags.publishedDate)
			if err != nil {
				return err
			}

			partition, err := parseCategoryType(flags.partition)
			if err != nil {
				return err
			}

			s, books, err := newBookScreen()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			form := screen.NewBookForm(s.client, books.Editor, s.credentials, s.options...)
			defer form.Close()

			err = fillBookForm(cmd.Context(), form, partition, &flags)
			if err != nil {
				return err
			}

			cover, closeCover, err := openCover(flags.cover)
			if err != nil {
				return err
			}
			defer closeCover()

			draft := bookhub.BookCreateRequest{
				Isbn:          flags.isbn,
				BookTitle:     flags.title,
				BookPrice:     flags.price,
				PublishedDate: flags.publishedDate,
				PageCount:     flags.pageCount,
				Language:      flags.language,
				Description:   flags.description,
			}

			books.Editor.OpenCreate()
			err = form.Submit(cmd.Context(), draft, cover)

			return finishMutation("book", "registered", books.Editor.Snapshot().Notice, err)
		},
	}

	cmd.Flags().StringVar(&flags.isbn, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&flags.title, "title", "", "book title")
	cmd.Flags().Int64Var(&flags.price, "price", 0, "price")
	cmd.Flags().StringVar(&flags.publishedDate, "published", "", "publication date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.pageCount, "pages", "", "page count")
	cmd.Flags().StringVar(&flags.language, "language", "", "language")
	cmd.Flags().StringVar(&flags.description, "description", "", "description")
	cmd.Flags().StringVar(&flags.partition, "partition", string(bookhub.CategoryDomestic), "category partition (DOMESTIC, FOREIGN)")
	cmd.Flags().StringVar(&flags.category, "category", "", "category id or \"parent > child\" label")
	cmd.Flags().StringVar(&flags.author, "author", "", "author name")
	cmd.Flags().StringVar(&flags.publisher, "publisher", "", "publisher name")
	cmd.Flags().StringVar(&flags.cover, "cover", "", "cover image file")

	return cmd
}

// fillBookForm picks the category, author and publisher the flags name.
// An empty flag leaves its reference unset so the form rejects it.
func fillBookForm(ctx context.Context, form *screen.BookForm, partition bookhub.CategoryType, flags *bookCreateFlags) error {
	err := form.SelectPartition(ctx, partition)
	if err != nil {
		return err
	}

	if flags.category != "" {
		choice, err := matchCategory(form.Choices(), flags.category)
		if err != nil {
			return err
		}

		form.ChooseCategory(choice.ID)
	}

	if flags.author != "" {
		_, err = pickLookup(ctx, form.Authors, flags.author)
		if err != nil {
			return fmt.Errorf("author: %w", err)
		}
	}

	if flags.publisher != "" {
		_, err = pickLookup(ctx, form.Publishers, flags.publisher)
		if err != nil {
			return fmt.Errorf("publisher: %w", err)
		}
	}

	return nil
}

// matchCategory accepts a category id or a label.
func matchCategory(choices []screen.Choice, value string) (screen.Choice, error) {
	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		for _, choice := range choices {
			if choice.ID == id {
				return choice, nil
			}
		}

		return screen.Choice{}, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}

	for _, choice := range choices {
		if choice.Label == value {
			return choice, nil
		}
	}

	return screen.Choice{}, fmt.Errorf("category %q: %w", value, ErrNotFound)
}

// openCover opens the cover image, if one was given.
func openCover(path string) (*bookhub.FileUpload, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}

	// path is supplied by the operator running the command
	// #nosec G304
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cover image: %w", err)
	}

	return &bookhub.FileUpload{Filename: filepath.Base(path), Content: file}, func() { _ = file.Close() }, nil
}

func newBooksUpdateCommand() *cobra.Command {
	var (
		price       int64
		description string
		status      string
		policyID    int64
		categoryID  int64
		cover       string
	)

	cmd := &cobra.Command{
		Use:   "update ISBN",
		Short: "Edit a book",
		Long:  "Edit the price, description, status, discount policy, category or cover of a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn := args[0]

			if !anyChanged(cmd, "price", "description", "status", "policy", "category", "cover") {
				return ErrNothingToUpdate
			}

			s, books, err := newBookScreen()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			err = books.Search(cmd.Context(), isbn)
			if err != nil {
				return err
			}

			if !books.Edit(isbn) {
				return fmt.Errorf("book %s: %w", isbn, ErrNotFound)
			}

			detail := books.Editor.Snapshot().Detail
			request := bookhub.BookUpdateRequest{
				Isbn:        detail.Isbn,
				BookPrice:   detail.BookPrice,
				Description: detail.Description,
				BookStatus:  detail.BookStatus,
				PolicyID:    detail.PolicyID,
			}

			if detail.CategoryID != 0 {
				request.CategoryID = &detail.CategoryID
			}

			changed := cmd.Flags().Changed

			if changed("price") {
				request.BookPrice = price
			}

			if changed("description") {
				request.Description = description
			}

			if changed("status") {
				request.BookStatus, err = parseBookStatus(status)
				if err != nil {
					return err
				}
			}

			if changed("policy") {
				request.PolicyID = &policyID
			}

			if changed("category") {
				request.CategoryID = &categoryID
			}

			upload, closeCover, err := openCover(cover)
			if err != nil {
				return err
			}
			defer closeCover()

			err = books.Editor.SubmitUpdate(cmd.Context(), isbn, &screen.BookUpdateForm{Request: request, Cover: upload})

			return finishMutation("book", "updated", books.Editor.Snapshot().Notice, err)
		},
	}

	cmd.Flags().Int64Var(&price, "price", 0, "price")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&status, "status", "", "status (ACTIVE, INACTIVE, HIDDEN)")
	cmd.Flags().Int64Var(&policyID, "policy", 0, "discount policy id")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "category id")
	cmd.Flags().StringVar(&cover, "cover", "", "replacement cover image file")

	return cmd
}

func newBooksHideCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "hide ISBN",
		Short: "Hide a book",
		Long:  "Hide a book from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			isbn := args[0]

			if !confirm(force, fmt.Sprintf("Hide book %s?", isbn)) {
				_, _ = fmt.Fprintln(os.Stdout, "Cancelled")

				return nil
			}

			_, books, err := newBookScreen()
			if err != nil {
				return err
			}

			err = books.Editor.Hide(cmd.Context(), isbn)

			return finishMutation("book", "hidden", books.Editor.Snapshot().Notice, err)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "hide without confirmation")

	return cmd
}
