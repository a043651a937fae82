package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/case-evidence/internal"
	"github.com/iksnae/case-evidence/internal/export"
	"github.com/spf13/cobra"
)

var (
	showFormat string
	showOut    string
)

var (
	// Styles for show command
	runHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	runMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			MarginBottom(1)
)

// showCmd renders the artifact a previous run saved
var showCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the artifact produced by a previous run",
	Long:  `Render a saved run artifact again, in any export format. Use 'case-evidence history' to see run ids.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runID := args[0]

		exporter, err := export.NewExporter(showFormat)
		if err != nil {
			return err
		}

		ws, err := openWorkspace(context.Background())
		if err != nil {
			return err
		}
		defer func() { _ = ws.Close() }()

		data, err := ws.state.LoadArtifact(runID)
		if err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("no saved artifact for run %s (runs that fail save nothing)", runID)
			}
			return err
		}
		artifact, err := internal.DecodeArtifact(data)
		if err != nil {
			return err
		}

		if entry, ok := ws.history.Find(runID); ok && showOut == "" && showFormat == "md" {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, runHeaderStyle.Render(fmt.Sprintf("Run %s", entry.ID)))
			_, _ = fmt.Fprintln(out, runMetaStyle.Render(fmt.Sprintf("%s · %s · %d item(s) · %s",
				entry.Timestamp.Local().Format("2006-01-02 15:04"), entry.PromptName, entry.EvidenceCount, entry.DateRange)))
		}

		return writeArtifact(cmd.OutOrStdout(), exporter, artifact, showOut)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "md", "Output format (json, jsonl, md, yaml, csv)")
	showCmd.Flags().StringVarP(&showOut, "out", "o", "", "Write the artifact to a file instead of stdout")
}
