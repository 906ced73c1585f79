package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/spf13/cobra"
)

// NewPublishersCommand creates the publishers command group
func NewPublishersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "publishers",
		Aliases: []string{"publisher", "pub"},
		Short:   "Manage publishers",
		Long:    "List, create, rename and delete publishers",
	}

	cmd.AddCommand(newPublishersListCommand())
	cmd.AddCommand(newPublishersGetCommand())
	cmd.AddCommand(newPublishersCreateCommand())
	cmd.AddCommand(newPublishersUpdateCommand())
	cmd.AddCommand(newPublishersDeleteCommand())

	return cmd
}

func newPublisherScreen() (*session, *screen.PublisherScreen, error) {
	s, err := newSession()
	if err != nil {
		return nil, nil, err
	}

	return s, screen.NewPublisherScreen(s.client.Publishers(), s.credentials, s.options...), nil
}

func publisherRow(publisher bookhub.Publisher) []string {
	return []string{strconv.FormatInt(publisher.PublisherID, 10), publisher.PublisherName}
}

func newPublishersListCommand() *cobra.Command {
	var (
		page    int
		keyword string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List publishers",
		Long:  "List publishers one page at a time, optionally filtered by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, publishers, err := newPublisherScreen()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			err = showPage(cmd.Context(), publishers.List, bookhub.PublisherFilter{Keyword: keyword}, page)
			if err != nil {
				return err
			}

			return renderList(publishers.List.Snapshot(), []interface{}{"ID", "Name"}, publisherRow)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&keyword, "keyword", "", "filter by name keyword")

	return cmd
}

func newPublishersGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PUBLISHER_ID",
		Short: "Get publisher details",
		Long:  "Display a single publisher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, publishers, err := newPublisherScreen()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			err = publishers.Editor.OpenEdit(cmd.Context(), id)
			if err != nil {
				return err
			}

			detail := publishers.Editor.Snapshot().Detail

			return renderOutput(detail, func() error {
				table := newTable("ID", "Name")
				_ = table.Append(publisherRow(*detail))

				return renderTable(table)
			})
		},
	}
}

func newPublishersCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a publisher",
		Long:  "Add a publisher to the directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, publishers, err := newPublisherScreen()
			if err != nil {
				return err
			}

			publishers.Editor.OpenCreate()
			err = publishers.Editor.SubmitCreate(cmd.Context(), &bookhub.PublisherRequest{PublisherName: args[0]})

			return finishMutation("publisher", "created", publishers.Editor.Snapshot().Notice, err)
		},
	}
}

func newPublishersUpdateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update PUBLISHER_ID NAME",
		Short: "Rename a publisher",
		Long:  "Change the name of a publisher",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, publishers, err := newPublisherScreen()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			err = publishers.Editor.OpenEdit(cmd.Context(), id)
			if err != nil {
				return err
			}

			err = publishers.Editor.SubmitUpdate(cmd.Context(), id, &bookhub.PublisherRequest{PublisherName: args[1]})

			return finishMutation("publisher", "updated", publishers.Editor.Snapshot().Notice, err)
		},
	}
}

func newPublishersDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete PUBLISHER_ID",
		Short: "Delete a publisher",
		Long:  "Remove a publisher from the directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if !confirm(force, fmt.Sprintf("Delete publisher %d?", id)) {
				_, _ = fmt.Fprintln(os.Stdout, "Cancelled")

				return nil
			}

			_, publishers, err := newPublisherScreen()
			if err != nil {
				return err
			}

			err = publishers.Editor.Delete(cmd.Context(), id)

			return finishMutation("publisher", "deleted", publishers.Editor.Snapshot().Notice, err)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")

	return cmd
}
