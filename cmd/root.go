package cmd

import (
	"fmt"
	"os"

	"github.com/iksnae/case-evidence/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	dbPath     string
	stateDir   string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"

	// cfg is loaded once per invocation in PersistentPreRunE
	cfg *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "case-evidence",
	Short: "Select case evidence and derive billing and review artifacts",
	Long: `Select evidence from a case database and derive artifacts from the selection.

Evidence (emails, text messages, phone calls, docket entries and recorded
time entries) is imported into a local SQLite database. You narrow it with a
date range, select the items that matter, and run a prompt to derive one of:

  • time_entries      billable time synthesized from the selection
  • project_timeline  selected items in chronological order, by day
  • evidence_summary  counts, time span and participants
  • key_themes        recurring subjects
  • case_narrative    a structured narrative

Quick Start:
  case-evidence import export.jsonl           # Load evidence
  case-evidence range 2024-03-01_to_2024-03-31
  case-evidence select email --all            # Select every visible email
  case-evidence run --goal time_entries -f md # Derive an artifact`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := internal.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			loaded.Database.Path = dbPath
		}
		if stateDir != "" {
			loaded.State.Dir = stateDir
		}
		cfg = loaded

		internal.SetLogLevel(internal.ParseLogLevel(cfg.Logging.Level))
		if verbose {
			internal.SetVerbose(true)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $"+internal.ConfigEnv+")")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the evidence database")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state", "", "Directory for selection state, run history and artifacts")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
