package commands

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bookhub/admin-client/internal/constants"
	"github.com/bookhub/admin-client/pkg/bookhub"
	"github.com/bookhub/admin-client/pkg/screen"
	"github.com/spf13/cobra"
)

// NewStatisticsCommand creates the statistics command group
func NewStatisticsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "statistics",
		Aliases: []string{"stats"},
		Short:   "Show dashboard statistics",
		Long:    "Show the statistics behind the back-office dashboard",
	}

	cmd.AddCommand(newStatisticsBranchStockCommand())

	return cmd
}

func newStatisticsBranchStockCommand() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "branch-stock",
		Short: "Show stock movements per branch",
		Long:  "Show incoming, outgoing and lost quantities per branch for one month",
		RunE: func(cmd *cobra.Command, args []string) error {
			if month == "" {
				month = time.Now().Format(constants.MonthLayout)
			}

			year, monthNumber, err := parseMonth(month)
			if err != nil {
				return err
			}

			s, err := newSession()
			if err != nil {
				return err
			}

			bars, err := screen.BranchStock(cmd.Context(), s.client.Statistics(), s.credentials, year, monthNumber)
			if err != nil {
				return err
			}

			return renderOutput(bars, func() error {
				return displayBranchStock(month, bars)
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month (YYYY-MM, default: current month)")

	return cmd
}

func displayBranchStock(month string, bars []bookhub.BranchStockBar) error {
	if len(bars) == 0 {
		_, _ = fmt.Fprintf(os.Stdout, "No stock movements in %s\n", month)

		return nil
	}

	table := newTable("Branch", "In", "Out", "Loss")
	for _, bar := range bars {
		_ = table.Append([]string{
			bar.BranchName,
			strconv.FormatInt(bar.InAmount, 10),
			strconv.FormatInt(bar.OutAmount, 10),
			strconv.FormatInt(bar.LossAmount, 10),
		})
	}

	return renderTable(table)
}
