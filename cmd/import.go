package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/case-evidence/internal"
	"github.com/spf13/cobra"
)

var importType string

// importCmd loads upstream evidence exports into the database
var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import evidence exports into the database",
	Long: `Import evidence from JSON Lines, a JSON array of records, or a JSON object
keyed by collection ("emails", "sms", "phone_calls", "docket_entries",
"time_entries"). Records with the same category and id replace earlier ones.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var fallback internal.Category
		if importType != "" {
			cat, err := internal.ParseCategory(importType)
			if err != nil {
				return err
			}
			fallback = cat
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		store := internal.NewStore(db)

		total := 0
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", path, err)
			}
			records, err := internal.ParseEvidenceExport(f, path, fallback)
			_ = f.Close()
			if err != nil {
				return err
			}

			n, err := store.InsertEvidence(records)
			if err != nil {
				return err
			}
			internal.LogInfo("Imported %d record(s) from %s", n, path)
			total += n
		}

		internal.PrintSuccess(fmt.Sprintf("Imported %d record(s) into %s", total, cfg.Database.Path))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVar(&importType, "type", "", "Category for records without a type (email, sms, phone_call, docket_entry, time_entry)")
}
