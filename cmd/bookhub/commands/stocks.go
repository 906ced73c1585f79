package commands

import (
	"strconv"

	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/spf13/cobra"
)

// NewStocksCommand creates the stocks command group
func NewStocksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stocks",
		Aliases: []string{"stock"},
		Short:   "Manage branch stock",
		Long:    "List stock levels and record stock movements per branch",
	}

	cmd.AddCommand(newStocksListCommand())
	cmd.AddCommand(newStocksGetCommand())
	cmd.AddCommand(newStocksUpdateCommand())

	return cmd
}

func newStockScreen() (*session, *screen.StockScreen, error) {
	s, err := newSession()
	if err != nil {
		return nil, nil, err
	}

	return s, screen.NewStockScreen(s.client.Stocks(), s.credentials, s.options...), nil
}

func stockRow(stock bookhub.Stock) []string {
	return []string{
		strconv.FormatInt(stock.StockID, 10),
		stock.BookIsbn,
		stock.BookTitle,
		formatOptional(stock.BranchName),
		strconv.FormatInt(stock.Amount, 10),
	}
}

func newStocksListCommand() *cobra.Command {
	var (
		page     int
		keyword  string
		action   string
		branchID int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stock levels",
		Long:  "List stock levels one page at a time, optionally filtered by book, movement type or branch",
		RunE: func(cmd *cobra.Command, args []string) error {
			actionType, err := parseStockAction(action)
			if err != nil {
				return err
			}

			s, stocks, err := newStockScreen()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			filter := bookhub.StockFilter{Keyword: keyword, ActionType: actionType, BranchID: branchID}

			err = showPage(cmd.Context(), stocks.List, filter, page)
			if err != nil {
				return err
			}

			return renderList(stocks.List.Snapshot(), []interface{}{"ID", "ISBN", "Title", "Branch", "Amount"}, stockRow)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&keyword, "keyword", "", "filter by book title keyword")
	cmd.Flags().StringVar(&action, "action", "", "filter by movement type (IN, OUT, LOSS)")
	cmd.Flags().Int64Var(&branchID, "branch", 0, "filter by branch id")

	return cmd
}

func newStocksGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get STOCK_ID",
		Short: "Get a stock level",
		Long:  "Display the stock level of one book at one branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, stocks, err := newStockScreen()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			err = stocks.Editor.OpenEdit(cmd.Context(), id)
			if err != nil {
				return err
			}

			detail := stocks.Editor.Snapshot().Detail

			return renderOutput(detail, func() error {
				table := newTable("ID", "ISBN", "Title", "Branch", "Amount")
				_ = table.Append(stockRow(*detail))

				return renderTable(table)
			})
		},
	}
}

func newStocksUpdateCommand() *cobra.Command {
	var (
		action      string
		amount      int64
		description string
	)

	cmd := &cobra.Command{
		Use:   "update STOCK_ID",
		Short: "Record a stock movement",
		Long:  "Record an incoming, outgoing or lost quantity for a stock row",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			actionType, err := parseStockAction(action)
			if err != nil {
				return err
			}

			s, stocks, err := newStockScreen()
			if err != nil {
				return err
			}

			err = requireLogin(cmd.Context(), s)
			if err != nil {
				return err
			}

			err = stocks.Editor.OpenEdit(cmd.Context(), id)
			if err != nil {
				return err
			}

			detail := stocks.Editor.Snapshot().Detail
			request := &bookhub.StockUpdateRequest{
				Type:        actionType,
				BranchID:    detail.BranchID,
				BookIsbn:    detail.BookIsbn,
				Amount:      amount,
				Description: description,
			}

			err = stocks.Editor.SubmitUpdate(cmd.Context(), id, request)

			return finishMutation("stock", "updated", stocks.Editor.Snapshot().Notice, err)
		},
	}

	cmd.Flags().StringVar(&action, "type", "", "movement type (IN, OUT, LOSS)")
	cmd.Flags().Int64Var(&amount, "amount", 0, "quantity moved")
	cmd.Flags().StringVar(&description, "description", "", "reason for the movement")

	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
