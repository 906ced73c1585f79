package commands

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/bookhub/admin-client/internal/constants"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/spf13/cobra"
)

// NewCategoriesCommand creates the categories command group
func NewCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category", "cat"},
		Short:   "Browse the category tree",
		Long:    "Browse the domestic and foreign category trees",
	}

	cmd.AddCommand(newCategoriesTreeCommand())
	cmd.AddCommand(newCategoriesChoicesCommand())

	return cmd
}

func newCategoryBrowser(ctx context.Context) (*session, *screen.CategoryBrowser, error) {
	s, err := newSession()
	if err != nil {
		return nil, nil, err
	}

	err = requireLogin(ctx, s)
	if err != nil {
		return nil, nil, err
	}

	return s, screen.NewCategoryBrowser(s.client.Categories(), s.credentials, s.options...), nil
}

func newCategoriesTreeCommand() *cobra.Command {
	var (
		expand []int64
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "tree PARTITION",
		Short: "Show a category tree",
		Long:  "Show the top-level categories of DOMESTIC or FOREIGN, with the children of expanded nodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partition, err := parseCategoryType(args[0])
			if err != nil {
				return err
			}

			_, browser, err := newCategoryBrowser(cmd.Context())
			if err != nil {
				return err
			}

			err = browser.SelectPartition(cmd.Context(), partition)
			if err != nil {
				return err
			}

			for _, node := range browser.Snapshot().Tree {
				if all || slices.Contains(expand, node.CategoryID) {
					browser.ToggleCategory(node.CategoryID)
				}
			}

			state := browser.Snapshot()

			return renderOutput(state, func() error {
				return displayCategoryTree(browser, state)
			})
		},
	}

	cmd.Flags().Int64SliceVar(&expand, "expand", nil, "expand the given top-level category ids")
	cmd.Flags().BoolVar(&all, "all", false, "expand every top-level category")

	return cmd
}

func displayCategoryTree(browser *screen.CategoryBrowser, state screen.CategoryState) error {
	if len(state.Tree) == 0 {
		_, _ = fmt.Fprintln(os.Stdout, "No categories found")

		return nil
	}

	table := newTable("ID", "Category", "Expanded")

	for _, node := range state.Tree {
		expanded := ""
		if node.IsBranch() && browser.IsExpanded(node.CategoryID) {
			expanded = constants.CheckMarkSymbol
		}

		_ = table.Append([]string{strconv.FormatInt(node.CategoryID, 10), node.CategoryName, expanded})

		if expanded == "" {
			continue
		}

		for _, child := range node.SubCategories {
			_ = table.Append([]string{strconv.FormatInt(child.CategoryID, 10), "  └ " + child.CategoryName, ""})
		}
	}

	return renderTable(table)
}

func newCategoriesChoicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "choices PARTITION",
		Short: "List pickable categories",
		Long:  "List the categories a book can be registered under, as \"parent > child\"",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			partition, err := parseCategoryType(args[0])
			if err != nil {
				return err
			}

			_, browser, err := newCategoryBrowser(cmd.Context())
			if err != nil {
				return err
			}

			tree, err := browser.Load(cmd.Context(), partition)
			if err != nil {
				return err
			}

			return renderChoices(screen.CategoryChoices(tree))
		},
	}
}
