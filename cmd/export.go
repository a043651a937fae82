package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/case-evidence/internal"
	"github.com/iksnae/case-evidence/internal/export"
	"github.com/spf13/cobra"
)

var exportOut string

// exportSelectedCmd writes the selected evidence as one flat CSV
var exportSelectedCmd = &cobra.Command{
	Use:   "export-selected",
	Short: "Export the selected evidence to CSV",
	Long: `Export the selected evidence inside the current date range as a single CSV,
one row per item ordered by date. Columns that do not apply to an item's
category are left empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace(context.Background())
		if err != nil {
			return err
		}
		defer func() { _ = ws.Close() }()

		evidence := ws.tracker.SelectedEvidence()

		if exportOut == "" {
			_, err := export.WriteSelectedCSV(evidence, cmd.OutOrStdout())
			return err
		}

		if err := os.MkdirAll(filepath.Dir(exportOut), 0755); err != nil {
			return &internal.ExportError{Format: "csv", Path: exportOut, Err: err}
		}
		file, err := os.Create(exportOut)
		if err != nil {
			return &internal.ExportError{Format: "csv", Path: exportOut, Err: err}
		}

		var n int
		err = internal.ShowProgress(context.Background(), fmt.Sprintf("Exporting selection to %s", exportOut), func(context.Context) error {
			var writeErr error
			n, writeErr = export.WriteSelectedCSV(evidence, file)
			return writeErr
		})
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = &internal.ExportError{Format: "csv", Path: exportOut, Err: closeErr}
		}
		if err != nil {
			_ = os.Remove(exportOut)
			return err
		}

		internal.PrintSuccess(fmt.Sprintf("Exported %d item(s) to %s", n, exportOut))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportSelectedCmd)
	exportSelectedCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output CSV path (default stdout)")
}
