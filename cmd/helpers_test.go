package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/iksnae/case-evidence/internal"
	"github.com/iksnae/case-evidence/testutil"
)

// testWorkspace points commands at a throwaway database and state directory
type testWorkspace struct {
	dbPath   string
	stateDir string
}

func newTestWorkspace(t *testing.T) *testWorkspace {
	t.Helper()
	dir := testutil.CreateTempDir(t)
	t.Setenv(internal.ConfigEnv, "")
	t.Setenv("CASE_EVIDENCE_ANALYSIS_DELAY", "0s")
	t.Setenv("CASE_EVIDENCE_PROMPTS", "")
	t.Setenv("CASE_EVIDENCE_METRICS_TEXTFILE", "")
	return &testWorkspace{
		dbPath:   filepath.Join(dir, "evidence.db"),
		stateDir: filepath.Join(dir, "state"),
	}
}

// resetFlags restores package flag variables; cobra keeps parsed values
// between Execute calls
func resetFlags() {
	verbose = false
	configPath = ""
	importType = ""
	listCategory = ""
	listSelected = false
	selectAll = false
	selectClear = false
	runPrompt = ""
	runGoal = ""
	runFormat = "md"
	runOut = ""
	runInput = map[string]string{}
	historyLimit = 0
	historyJSON = false
	promptGoal = string(internal.GoalTimeEntries)
	promptTemplate = ""
	promptTemplateFile = ""
	promptSystem = ""
	promptDescription = ""
	promptTags = nil
	exportOut = ""
	showFormat = "md"
	showOut = ""
}

func (w *testWorkspace) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(append([]string{"--db", w.dbPath, "--state", w.stateDir}, args...))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	err := rootCmd.Execute()
	return stdout.String(), err
}

// mustExecute fails the test if the command errors
func (w *testWorkspace) mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := w.execute(t, args...)
	if err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, out)
	}
	return out
}

// importSample loads the sample evidence export
func (w *testWorkspace) importSample(t *testing.T) {
	t.Helper()
	w.mustExecute(t, "import", testutil.CreateEvidenceFile(t))
}
