package cmd

import (
	"context"
	"fmt"

	"github.com/iksnae/case-evidence/internal"
	"github.com/spf13/cobra"
)

var (
	selectAll   bool
	selectClear bool
)

// selectCmd toggles evidence selection
var selectCmd = &cobra.Command{
	Use:   "select <category> [id...]",
	Short: "Toggle selection of evidence items",
	Long: `Toggle the selection of evidence items in one category.

Each id is flipped between selected and unselected. With --all, the whole
category is toggled: if every visible item is already selected the
category is cleared, otherwise every visible item is selected.

  case-evidence select email email-1 email-7
  case-evidence select sms --all
  case-evidence select --clear                # drop every selection`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(context.Background())
		if err != nil {
			return err
		}
		defer func() { _ = ws.Close() }()

		if selectClear {
			dateRange := ws.tracker.DateRange()
			ws.tracker.Clear()
			ws.tracker.SetDateRange(dateRange)
			if err := ws.save(); err != nil {
				return err
			}
			internal.PrintSuccess("Selection cleared")
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("a category is required (email, sms, phone_call, docket_entry, time_entry)")
		}
		cat, err := internal.ParseCategory(args[0])
		if err != nil {
			return err
		}
		ids := args[1:]
		if !selectAll && len(ids) == 0 {
			return fmt.Errorf("give at least one id, or --all to toggle the whole category")
		}

		out := cmd.OutOrStdout()
		if selectAll {
			if ws.tracker.ToggleSelectAll(cat) {
				_, _ = fmt.Fprintf(out, "Selected all %d visible %s\n", ws.tracker.CategoryCount(cat), cat.Label())
			} else {
				_, _ = fmt.Fprintf(out, "Cleared %s selection\n", cat.Label())
			}
		}
		for _, id := range ids {
			if ws.tracker.ToggleItem(cat, id) {
				_, _ = fmt.Fprintf(out, "[x] %s\n", id)
			} else {
				_, _ = fmt.Fprintf(out, "[ ] %s\n", id)
			}
		}

		if err := ws.save(); err != nil {
			return err
		}
		internal.PrintInfo(fmt.Sprintf("%d item(s) selected", ws.tracker.SelectionCount()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
	selectCmd.Flags().BoolVarP(&selectAll, "all", "a", false, "Toggle every visible item in the category")
	selectCmd.Flags().BoolVar(&selectClear, "clear", false, "Clear the selection in every category")
}
