package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/case-evidence/internal"
	"github.com/spf13/cobra"
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that the evidence database, prompts and state are usable",
	Long: `Check the health of the workspace by verifying:
  • The evidence database opens and has the expected tables
  • Evidence counts per category
  • The prompt catalog loads and validates
  • Saved selection state matches the database

This command does not modify the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := context.Background()

		_, _ = fmt.Fprintln(out, sectionStyle.Render("🔍 Case Evidence Health Check"))
		_, _ = fmt.Fprintln(out)

		var counts map[internal.Category]int
		steps := []internal.ProgressStep{
			healthStep(out, 1, "Opening evidence database", func(ctx context.Context) error {
				if _, err := os.Stat(cfg.Database.Path); os.IsNotExist(err) {
					_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  Database not found"))
					_, _ = fmt.Fprintf(out, "   Expected: %s\n", cfg.Database.Path)
					_, _ = fmt.Fprintln(out, "   Run 'case-evidence import <file>' to create it")
					return nil
				}
				db, err := internal.OpenDatabaseReadOnly(cfg.Database.Path)
				if err != nil {
					_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Failed to open database:"), err)
					return err
				}
				defer func() { _ = db.Close() }()
				counts, err = internal.NewStore(db).Counts(ctx)
				if err != nil {
					_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Database is missing evidence tables:"), err)
					return err
				}
				_, _ = fmt.Fprintln(out, successStyle.Render("✅ Database opened"))
				if verbose {
					_, _ = fmt.Fprintf(out, "   Path: %s\n", cfg.Database.Path)
				}
				return nil
			}),
			healthStep(out, 2, "Counting evidence", func(context.Context) error {
				total := 0
				for _, cat := range internal.Categories {
					total += counts[cat]
					_, _ = fmt.Fprintf(out, "   %-15s %d\n", cat.Label(), counts[cat])
				}
				if total == 0 {
					_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  No evidence imported"))
				} else {
					_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ %d record(s) available", total)))
				}
				return nil
			}),
			healthStep(out, 3, "Loading prompt catalog", func(context.Context) error {
				catalog := internal.DefaultPromptCatalog()
				if cfg.Prompts.Path != "" {
					fromFile, err := internal.LoadPromptCatalog(cfg.Prompts.Path)
					if err != nil {
						_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Prompt catalog is invalid:"), err)
						return err
					}
					catalog.Merge(fromFile.List())
				}
				_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ %d prompt(s) available", catalog.Len())))
				return nil
			}),
			healthStep(out, 4, "Checking saved state", func(context.Context) error {
				state := internal.NewStateManager(cfg.State.Dir)
				if valid, _ := state.IsStateValid(cfg.Database.Path); valid {
					saved := state.LoadStateFor(cfg.Database.Path)
					_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ State found (%d run(s) recorded)", len(saved.History))))
				} else if _, err := os.Stat(state.GetStatePath()); err == nil {
					_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  Saved state belongs to a different database and will be ignored"))
				} else {
					_, _ = fmt.Fprintln(out, infoStyle.Render("   No saved state yet"))
				}
				return nil
			}),
		}
		err := internal.ShowProgressWithSteps(ctx, steps)

		// Summary
		_, _ = fmt.Fprintln(out, sectionStyle.Render("📊 Summary"))
		if err != nil {
			_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Health check failed"))
			return fmt.Errorf("health check failed: %w", err)
		}
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
		return nil
	},
}

// healthStep prints the step heading to out and a blank line after fn.
// A returned error stops the remaining checks.
func healthStep(out io.Writer, n int, message string, fn func(ctx context.Context) error) internal.ProgressStep {
	return internal.ProgressStep{
		Message: message,
		Fn: func(ctx context.Context) error {
			_, _ = fmt.Fprintln(out, infoStyle.Render(fmt.Sprintf("Step %d: %s...", n, message)))
			err := fn(ctx)
			_, _ = fmt.Fprintln(out)
			return err
		},
	}
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
}
