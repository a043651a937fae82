package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/iksnae/case-evidence/internal"
	"github.com/spf13/cobra"
)

var (
	promptGoal         string
	promptTemplate     string
	promptTemplateFile string
	promptSystem       string
	promptDescription  string
	promptTags         []string
)

// promptsCmd groups prompt catalog commands
var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage the prompt catalog",
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available prompts",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		catalog, err := loadCatalog(context.Background(), internal.NewStore(db))
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(w, "Name\tGoal\tID\tDescription\t")
		for _, p := range catalog.List() {
			id := p.ID
			if id == "" {
				id = "built-in"
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", titleStyle.Render(p.Name), p.Goal, idStyle.Render(id), p.Description)
		}
		return w.Flush()
	},
}

var promptsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Save a prompt to the database",
	Long: `Save a named prompt. Templates may use {start_date} and {end_date}, which
are replaced with the active date range when the prompt runs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		template := promptTemplate
		if promptTemplateFile != "" {
			data, err := os.ReadFile(promptTemplateFile)
			if err != nil {
				return fmt.Errorf("failed to read template: %w", err)
			}
			template = string(data)
		}
		if strings.TrimSpace(template) == "" {
			return fmt.Errorf("a template is required (--template or --template-file)")
		}

		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		id, err := internal.NewStore(db).SavePrompt(internal.Prompt{
			Name:         args[0],
			Goal:         internal.Goal(promptGoal),
			Template:     template,
			SystemPrompt: promptSystem,
			Description:  promptDescription,
			Tags:         promptTags,
		})
		if err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf("Saved prompt %q (%s)", args[0], id))
		return nil
	},
}

var promptsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved prompt",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := internal.NewStore(db).DeletePrompt(args[0]); err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf("Deleted prompt %s", args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(promptsCmd)
	promptsCmd.AddCommand(promptsListCmd, promptsAddCmd, promptsDeleteCmd)

	promptsAddCmd.Flags().StringVarP(&promptGoal, "goal", "g", string(internal.GoalTimeEntries), "Goal the prompt produces")
	promptsAddCmd.Flags().StringVarP(&promptTemplate, "template", "t", "", "Prompt template")
	promptsAddCmd.Flags().StringVar(&promptTemplateFile, "template-file", "", "Read the template from a file")
	promptsAddCmd.Flags().StringVar(&promptSystem, "system", "", "System prompt")
	promptsAddCmd.Flags().StringVar(&promptDescription, "description", "", "Short description")
	promptsAddCmd.Flags().StringSliceVar(&promptTags, "tag", nil, "Tag (repeatable)")
}
