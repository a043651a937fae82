package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/case-evidence/internal"
	"github.com/spf13/cobra"
)

var (
	listCategory string
	listSelected bool
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// listCmd shows the evidence visible under the current date range
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List evidence in the current date range",
	Long: `List evidence visible under the current date range, grouped by category.
Selected items are marked with [x].`,
	RunE: func(cmd *cobra.Command, args []string) error {
		categories := internal.Categories
		if listCategory != "" {
			cat, err := internal.ParseCategory(listCategory)
			if err != nil {
				return err
			}
			categories = []internal.Category{cat}
		}

		ws, err := openWorkspace(context.Background())
		if err != nil {
			return err
		}
		defer func() { _ = ws.Close() }()

		displayEvidence(cmd.OutOrStdout(), ws.tracker, categories, listSelected)
		return nil
	},
}

func displayEvidence(out io.Writer, tracker *internal.SelectionTracker, categories []internal.Category, selectedOnly bool) {
	view := tracker.FilteredView()
	if r := tracker.DateRange(); !r.IsZero() {
		_, _ = fmt.Fprintln(out, dateStyle.Render("Date range: "+r.String()))
	}

	normalizer := internal.NewNormalizer()
	for _, cat := range categories {
		records := view.Get(cat)
		marker := ""
		if tracker.IsAllSelected(cat) {
			marker = " (all selected)"
		}
		_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s: %s visible, %s selected%s",
			cat.Label(),
			countStyle.Render(fmt.Sprint(len(records))),
			countStyle.Render(fmt.Sprint(tracker.CategoryCount(cat))),
			marker)))

		if len(records) == 0 {
			_, _ = fmt.Fprintln(out)
			continue
		}

		w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, titleStyle.Render(" ")+"\t"+titleStyle.Render("ID")+"\t"+titleStyle.Render("Date")+"\t"+titleStyle.Render("Title")+"\t")
		_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))
		for _, r := range records {
			selected := tracker.IsSelected(cat, r.ID)
			if selectedOnly && !selected {
				continue
			}
			box := "[ ]"
			if selected {
				box = "[x]"
			}
			title := normalizer.Title(r)
			if len(title) > 60 {
				title = title[:57] + "..."
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", box, idStyle.Render(r.ID), dateStyle.Render(r.Day()), title)
		}
		_ = w.Flush()
		_, _ = fmt.Fprintln(out)
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only list one category")
	listCmd.Flags().BoolVar(&listSelected, "selected", false, "Only list selected items")
}
