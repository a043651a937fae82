package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/iksnae/case-evidence/internal"
	"github.com/spf13/cobra"
)

// statusCmd summarizes the current selection
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the date range and selection counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(context.Background())
		if err != nil {
			return err
		}
		defer func() { _ = ws.Close() }()

		out := cmd.OutOrStdout()
		tracker := ws.tracker
		view := tracker.FilteredView()

		_, _ = fmt.Fprintln(out, headerStyle.Render("Selection status"))
		_, _ = fmt.Fprintf(out, "Database:   %s\n", cfg.Database.Path)
		_, _ = fmt.Fprintf(out, "Date range: %s\n\n", tracker.DateRange())

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, "Category\tVisible\tSelected\tAll\t")
		for _, cat := range internal.Categories {
			all := ""
			if tracker.IsAllSelected(cat) {
				all = "yes"
			}
			_, _ = fmt.Fprintf(w, "%s\t%d\t%d\t%s\t\n", cat.Label(), len(view.Get(cat)), tracker.CategoryCount(cat), all)
		}
		_ = w.Flush()

		capture := tracker.Capture()
		_, _ = fmt.Fprintf(out, "\nSelected: %s", countStyle.Render(fmt.Sprint(capture.SelectionCount)))
		if stale := capture.SelectionCount - capture.Evidence.Total(); stale > 0 {
			_, _ = fmt.Fprintf(out, " (%d not visible in the current range)", stale)
		}
		_, _ = fmt.Fprintln(out)

		if fp, err := internal.SelectionFingerprint(capture.Snapshot); err == nil {
			_, _ = fmt.Fprintf(out, "Fingerprint: %s\n", idStyle.Render(fp[:12]))
		}
		_, _ = fmt.Fprintf(out, "Runs recorded: %d\n", ws.history.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
