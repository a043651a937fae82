package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/iksnae/case-evidence/internal"
	"github.com/iksnae/case-evidence/internal/export"
	"github.com/spf13/cobra"
)

var (
	runPrompt string
	runGoal   string
	runFormat string
	runOut    string
	runInput  map[string]string
)

// runCmd derives an artifact from the current selection
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Derive an artifact from the selected evidence",
	Long: `Run a prompt against the selected evidence and print the derived artifact.

Pick the prompt by name with --prompt, or by goal with --goal (the first
catalog prompt carrying that goal is used). Goals that match no known
algorithm are passed through as custom artifacts carrying --input values.

Every invocation is recorded in run history, including runs that fail
because nothing is selected. The artifact is also saved under the state
directory so 'case-evidence show <run-id>' can render it again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(runFormat)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		ws, err := openWorkspace(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = ws.Close() }()

		prompt, err := resolvePrompt(ws.catalog, runPrompt, runGoal)
		if err != nil {
			return err
		}

		metrics := internal.NewMetrics()
		runner := internal.NewRunner(
			ws.tracker,
			internal.NewDeriver(cfg.BillingPolicy(), nil),
			ws.history,
			internal.WithDelay(cfg.Analysis.Delay),
			internal.WithMetrics(metrics),
		)

		input := make(map[string]any, len(runInput))
		for k, v := range runInput {
			input[k] = v
		}

		var result *internal.RunResult
		runErr := internal.ShowProgress(ctx, fmt.Sprintf("Generating %s with %q", prompt.Goal, prompt.Name), func(ctx context.Context) error {
			var err error
			result, err = runner.Run(ctx, prompt, input)
			return err
		})

		if err := ws.save(); err != nil {
			internal.LogWarn("%v", err)
		}
		if cfg.Metrics.Textfile != "" {
			if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
				internal.LogWarn("Failed to write metrics: %v", err)
			}
		}
		if runErr != nil {
			return runErr
		}

		if err := ws.state.SaveArtifact(result.Entry.ID, result.Artifact); err != nil {
			internal.LogWarn("Failed to save artifact: %v", err)
		}
		internal.LogDebug("Rendered prompt: %s", result.RenderedPrompt)

		if err := writeArtifact(cmd.OutOrStdout(), exporter, result.Artifact, runOut); err != nil {
			return err
		}
		internal.PrintSuccess(fmt.Sprintf("Run %s complete (%d item(s))", result.Entry.ID, result.Entry.EvidenceCount))
		return nil
	},
}

// resolvePrompt picks a prompt by name, then by goal, defaulting to time entries
func resolvePrompt(catalog *internal.PromptCatalog, name, goal string) (internal.Prompt, error) {
	if name != "" {
		p, ok := catalog.Get(name)
		if !ok {
			return internal.Prompt{}, fmt.Errorf("prompt not found: %s (use 'case-evidence prompts list')", name)
		}
		return p, nil
	}
	if goal == "" {
		goal = string(internal.GoalTimeEntries)
	}
	if parsed := internal.ParseGoal(goal); parsed != internal.GoalCustom {
		if p, ok := catalog.ForGoal(parsed); ok {
			return p, nil
		}
		return internal.Prompt{Name: string(parsed), Goal: parsed}, nil
	}
	return internal.Prompt{Name: goal, Goal: internal.Goal(goal)}, nil
}

// writeArtifact exports to path, or to out when path is empty
func writeArtifact(out io.Writer, exporter export.Exporter, artifact *internal.Artifact, path string) error {
	if path == "" {
		return exporter.Export(artifact, out)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	file, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	if err := exporter.Export(artifact, file); err != nil {
		_ = file.Close()
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	internal.LogInfo("Wrote %s", path)
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runPrompt, "prompt", "p", "", "Prompt name from the catalog")
	runCmd.Flags().StringVarP(&runGoal, "goal", "g", "", "Goal to derive (time_entries, project_timeline, evidence_summary, key_themes, case_narrative, or custom)")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "md", "Output format (json, jsonl, md, yaml, csv)")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "", "Write the artifact to a file instead of stdout")
	runCmd.Flags().StringToStringVar(&runInput, "input", nil, "Content for custom goals (key=value,...)")
}
