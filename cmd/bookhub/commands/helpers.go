package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bookhub/admin-client/internal/constants"
	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Common static errors used throughout the commands package.
var (
	ErrNotLoggedIn        = errors.New("not logged in, use 'bookhub login'")
	ErrNothingToUpdate    = errors.New("no fields to update were given")
	ErrNoResults          = errors.New("no results")
	ErrPageOutOfRange     = errors.New("page out of range")
	ErrNotFound           = errors.New("not found in the current results")
	ErrAmbiguousChoice    = errors.New("more than one option matches")
	ErrLookupTimedOut     = errors.New("lookup timed out")
	ErrInvalidPolicyType  = errors.New("policy type must be BOOK_DISCOUNT, CATEGORY_DISCOUNT or TOTAL_PRICE_DISCOUNT")
	ErrInvalidStockAction = errors.New("stock action must be IN, OUT or LOSS")
	ErrInvalidBookStatus  = errors.New("book status must be ACTIVE, INACTIVE or HIDDEN")
)

// ErrorMessage turns a command error into the line printed on exit. API
// failures show their display message; everything else its error text.
func ErrorMessage(err error) string {
	var failure *bookhub.Failure
	if errors.As(err, &failure) {
		if failure.Kind == bookhub.FailureTransport && viper.GetBool("verbose") {
			return "Error: " + failure.Error()
		}

		return "Error: " + bookhub.DisplayMessage(err)
	}

	return "Error: " + err.Error()
}

// renderOutput writes value as JSON or YAML, or calls table for the
// default table format.
func renderOutput(value interface{}, table func() error) error {
	switch viper.GetString("output") {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", strings.Repeat(" ", constants.JSONIndentSize))

		return encoder.Encode(value)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(constants.JSONIndentSize)

		defer func() { _ = encoder.Close() }()

		return encoder.Encode(value)
	case constants.FormatTable, "":
		return table()
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, viper.GetString("output"))
	}
}

func newTable(headers ...interface{}) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header(headers...)

	return table
}

func renderTable(table *tablewriter.Table) error {
	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderList prints the current page of a list controller.
func renderList[T any, F bookhub.Filter](state screen.ListState[T, F], headers []interface{}, row func(T) []string) error {
	return renderOutput(state, func() error {
		if len(state.Items) == 0 {
			_, _ = fmt.Fprintln(os.Stdout, "No results found")

			return nil
		}

		table := newTable(headers...)
		for _, item := range state.Items {
			_ = table.Append(row(item))
		}

		err := renderTable(table)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(os.Stdout, pageFooter(state.CurrentPage, state.TotalPages))

		return nil
	})
}

func pageFooter(currentPage, totalPages int) string {
	if totalPages < 1 {
		totalPages = 1
	}

	return fmt.Sprintf("Page %d of %d", currentPage+1, totalPages)
}

// printNotice reports a successful mutation with the server's message.
func printNotice(resource, action, notice string) error {
	result := map[string]string{
		"resource": resource,
		"action":   action,
		"message":  notice,
	}

	return renderOutput(result, func() error {
		if notice == "" {
			notice = fmt.Sprintf("%s %s", resource, action)
		}

		_, _ = fmt.Fprintf(os.Stdout, "%s %s\n", constants.CheckMarkSymbol, notice)

		return nil
	})
}

// displayEnum turns an API enum such as BOOK_DISCOUNT into "Book Discount".
func displayEnum(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	words := strings.ReplaceAll(strings.ToLower(value), "_", " ")

	return cases.Title(language.English).String(words)
}

func formatOptional(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidID, arg)
	}

	return id, nil
}

// parseMonth splits a YYYY-MM argument.
func parseMonth(value string) (int, int, error) {
	parsed, err := time.Parse(constants.MonthLayout, value)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", constants.ErrInvalidMonth, value)
	}

	return parsed.Year(), int(parsed.Month()), nil
}

// validateDate accepts an empty value or a YYYY-MM-DD date.
func validateDate(value string) error {
	if value == "" {
		return nil
	}

	_, err := time.Parse(constants.DateLayout, value)
	if err != nil {
		return fmt.Errorf("%w: %q", constants.ErrInvalidDate, value)
	}

	return nil
}

func parseCategoryType(value string) (bookhub.CategoryType, error) {
	switch partition := bookhub.CategoryType(strings.ToUpper(value)); partition {
	case bookhub.CategoryDomestic, bookhub.CategoryForeign:
		return partition, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidCategoryType, value)
	}
}

func parsePolicyType(value string) (bookhub.PolicyType, error) {
	switch policyType := bookhub.PolicyType(strings.ToUpper(value)); policyType {
	case "", bookhub.PolicyTypeBook, bookhub.PolicyTypeCategory, bookhub.PolicyTypeTotalPrice:
		return policyType, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicyType, value)
	}
}

func parseStockAction(value string) (bookhub.StockActionType, error) {
	switch action := bookhub.StockActionType(strings.ToUpper(value)); action {
	case "", bookhub.StockActionIn, bookhub.StockActionOut, bookhub.StockActionLoss:
		return action, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStockAction, value)
	}
}

func parseBookStatus(value string) (bookhub.BookStatus, error) {
	switch status := bookhub.BookStatus(strings.ToUpper(value)); status {
	case bookhub.BookStatusActive, bookhub.BookStatusInactive, bookhub.BookStatusHidden:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBookStatus, value)
	}
}

// matchChoice picks the choice for text: the only one, or the one whose
// label is text or starts with "text (".
func matchChoice(choices []screen.Choice, text string) (screen.Choice, error) {
	if len(choices) == 0 {
		return screen.Choice{}, fmt.Errorf("%w for %q", ErrNoResults, text)
	}

	if len(choices) == 1 {
		return choices[0], nil
	}

	var matches []screen.Choice

	for _, choice := range choices {
		if strings.EqualFold(choice.Label, text) || strings.HasPrefix(strings.ToLower(choice.Label), strings.ToLower(text)+" (") {
			matches = append(matches, choice)
		}
	}

	switch len(matches) {
	case 0:
		return screen.Choice{}, fmt.Errorf("%w for %q: %s", constants.ErrUnknownOption, text, choiceLabels(choices))
	case 1:
		return matches[0], nil
	default:
		return screen.Choice{}, fmt.Errorf("%w %q: %s", ErrAmbiguousChoice, text, choiceLabels(matches))
	}
}

func choiceLabels(choices []screen.Choice) string {
	labels := make([]string, 0, len(choices))
	for _, choice := range choices {
		labels = append(labels, fmt.Sprintf("%s [%d]", choice.Label, choice.ID))
	}

	return strings.Join(labels, ", ")
}

// awaitLookup types text into lookup and waits for the debounced search to
// deliver its choices.
func awaitLookup[R any](ctx context.Context, lookup *screen.Lookup[R], text string) ([]screen.Choice, error) {
	results := make(chan []screen.Choice, 1)

	lookup.OnUpdate(func(choices []screen.Choice) {
		select {
		case results <- choices:
		default:
		}
	})

	lookup.Input(ctx, text)

	ctx, cancel := context.WithTimeout(ctx, constants.ShortHTTPTimeout)
	defer cancel()

	select {
	case choices := <-results:
		return choices, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %q", ErrLookupTimedOut, text)
	}
}

// pickLookup searches for text and selects the matching choice.
func pickLookup[R any](ctx context.Context, lookup *screen.Lookup[R], text string) (screen.Choice, error) {
	choices, err := awaitLookup(ctx, lookup, text)
	if err != nil {
		return screen.Choice{}, err
	}

	choice, err := matchChoice(choices, text)
	if err != nil {
		return screen.Choice{}, err
	}

	lookup.Select(choice.ID)

	return choice, nil
}

// requireLogin fails early when no token is stored.
func requireLogin(ctx context.Context, s *session) error {
	if _, ok := s.credentials.Token(ctx); !ok {
		return ErrNotLoggedIn
	}

	return nil
}

// showPage loads page (1-based) of list with filter.
func showPage[T any, F bookhub.Filter](ctx context.Context, list *screen.ListController[T, F], filter F, page int) error {
	var zero F

	var err error
	if filter == zero {
		err = list.Mount(ctx)
	} else {
		err = list.SetFilter(ctx, filter)
	}

	if err != nil {
		return err
	}

	if page <= 1 {
		return nil
	}

	err = list.GoToPage(ctx, page-1)
	if err != nil {
		return err
	}

	state := list.Snapshot()
	if state.CurrentPage != page-1 {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, state.TotalPages)
	}

	return nil
}

// finishMutation reports a round trip. A mutation that succeeded is
// reported even when the list refresh after it failed.
func finishMutation(resource, action, notice string, err error) error {
	if err != nil && !errors.Is(err, screen.ErrListStale) {
		return err
	}

	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: list refresh failed: %s\n", bookhub.DisplayMessage(err))
	}

	return printNotice(resource, action, notice)
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}

	return false
}

// confirm asks a yes/no question unless force is set.
func confirm(force bool, question string) bool {
	if force {
		return true
	}

	answer := strings.ToLower(promptLine(question + " [y/N]: "))

	return answer == "y" || answer == "yes"
}
