package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/spf13/cobra"
)

// NewLookupCommand creates the lookup command group
func NewLookupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Search-as-you-type lookups",
		Long:  "Run the author and publisher lookups used by the book registration form",
	}

	cmd.AddCommand(newLookupCommand("authors", "Look up authors by name", func(s *session) *screen.Lookup[bookhub.Author] {
		return screen.NewAuthorLookup(s.client.Authors(), s.credentials, s.options...)
	}))

	cmd.AddCommand(newLookupCommand("publishers", "Look up publishers by name", func(s *session) *screen.Lookup[bookhub.Publisher] {
		return screen.NewPublisherLookup(s.client.Publishers(), s.credentials, s.options...)
	}))

	return cmd
}

func newLookupCommand[R any](name, short string, build func(*session) *screen.Lookup[R]) *cobra.Command {
	return &cobra.Command{
		Use:   name + " TEXT",
		Short: short,
		Long:  short + ". The search is sent once typing pauses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			lookup := build(s)
			defer lookup.Close()

			choices, err := awaitLookup(cmd.Context(), lookup, args[0])
			if err != nil {
				return err
			}

			return renderChoices(choices)
		},
	}
}

func renderChoices(choices []screen.Choice) error {
	return renderOutput(choices, func() error {
		if len(choices) == 0 {
			_, _ = fmt.Fprintln(os.Stdout, "No results found")

			return nil
		}

		table := newTable("ID", "Name")
		for _, choice := range choices {
			_ = table.Append([]string{strconv.FormatInt(choice.ID, 10), choice.Label})
		}

		return renderTable(table)
	})
}
