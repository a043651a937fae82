package cmd

import (
	"fmt"

	"github.com/iksnae/case-evidence/internal"
	"github.com/spf13/cobra"
)

// resetCmd drops the saved selection, date range, run history and artifacts
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the saved selection, date range and run history",
	Long: `Remove the workspace state file and every saved run artifact.
Imported evidence stays in the database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		state := internal.NewStateManager(cfg.State.Dir)
		if err := state.ClearState(); err != nil {
			return fmt.Errorf("failed to clear state: %w", err)
		}
		internal.LogDebug("Cleared state in %s", state.GetStateDir())
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✅ Cleared saved selection, history and artifacts"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
