package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

// historyCmd lists recorded runs, most recent first
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(context.Background())
		if err != nil {
			return err
		}
		defer func() { _ = ws.Close() }()

		entries := ws.history.Entries()
		if historyLimit > 0 && len(entries) > historyLimit {
			entries = entries[:historyLimit]
		}

		out := cmd.OutOrStdout()
		if historyJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(entries)
		}

		if len(entries) == 0 {
			_, _ = fmt.Fprintln(out, headerStyle.Render("No runs recorded"))
			return nil
		}

		_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d run(s)", len(entries))))
		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tWhen\tPrompt\tGoal\tItems\tRange\t")
		for _, e := range entries {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t\n",
				idStyle.Render(e.ID),
				dateStyle.Render(e.Timestamp.Local().Format("2006-01-02 15:04")),
				e.PromptName,
				e.Goal,
				e.EvidenceCount,
				e.DateRange)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Show at most n runs")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print history as JSON")
}
