package cmd

import (
	"context"
	"fmt"

	"github.com/iksnae/case-evidence/internal"
	"github.com/spf13/cobra"
)

// rangeCmd shows or changes the date filter
var rangeCmd = &cobra.Command{
	Use:   "range [start_to_end | all]",
	Short: "Show or set the evidence date range",
	Long: `Show or set the date range that limits which evidence is visible.

Bounds are dates (2024-03-01) or date-times (2024-03-01T09:00:00); either
side may be left empty. Date-only bounds include the whole day.

  case-evidence range 2024-03-01_to_2024-03-31
  case-evidence range 2024-03-01..            # open-ended
  case-evidence range all                      # clear the filter`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(context.Background())
		if err != nil {
			return err
		}
		defer func() { _ = ws.Close() }()

		if len(args) == 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Date range: %s\n", ws.tracker.DateRange())
			return nil
		}

		ws.tracker.SetDateRange(internal.ParseDateRangeSpec(args[0]))
		if err := ws.save(); err != nil {
			return err
		}

		visible := ws.tracker.FilteredView().Total()
		internal.PrintSuccess(fmt.Sprintf("Date range set to %s (%d item(s) visible)", ws.tracker.DateRange(), visible))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rangeCmd)
}
