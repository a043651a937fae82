package cmd

import (
	"context"
	"fmt"

	"github.com/iksnae/case-evidence/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// evidenceCmd prints one stored record in full
var evidenceCmd = &cobra.Command{
	Use:   "evidence <category> <id>",
	Short: "Show a single evidence record",
	Long: `Print every stored field of one evidence record as YAML.
Categories accept the same names as 'select' (email, sms, phone_call, docket, time_entry).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := internal.ParseCategory(args[0])
		if err != nil {
			return err
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		rec, err := internal.NewStore(db).GetByID(context.Background(), cat, args[1])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, titleStyle.Render(internal.NewNormalizer().Title(*rec)))
		if day := rec.Day(); day != "" {
			_, _ = fmt.Fprintln(out, dateStyle.Render(day))
		}
		_, _ = fmt.Fprintln(out)

		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to encode record: %w", err)
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(evidenceCmd)
}
