package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// StateVersion is bumped when the persisted state layout changes
const StateVersion = "1.0"

// StateManager persists operator state between invocations: the selection
// snapshot, the date range, run history and the artifacts runs produced.
type StateManager struct {
	stateDir string
}

// StateMetadata ties persisted state to the database it selects from
type StateMetadata struct {
	DatabasePath string    `yaml:"database_path"`
	StateVersion string    `yaml:"state_version"`
	CreatedAt    time.Time `yaml:"created_at"`
	UpdatedAt    time.Time `yaml:"updated_at"`
}

// WorkspaceState is the YAML document written to state.yaml
type WorkspaceState struct {
	Selection SelectionSnapshot `yaml:"selection"`
	History   []RunHistoryEntry `yaml:"history"`
	Metadata  StateMetadata     `yaml:"metadata"`
}

// NewStateManager creates a new state manager
func NewStateManager(stateDir string) *StateManager {
	return &StateManager{stateDir: stateDir}
}

// EnsureStateDir ensures the state directory exists
func (sm *StateManager) EnsureStateDir() error {
	return os.MkdirAll(filepath.Join(sm.stateDir, "artifacts"), 0755)
}

// GetStateDir returns the state directory path
func (sm *StateManager) GetStateDir() string {
	return sm.stateDir
}

// GetStatePath returns the path to the state YAML file
func (sm *StateManager) GetStatePath() string {
	return filepath.Join(sm.stateDir, "state.yaml")
}

// GetArtifactPath returns the path to a run's saved artifact
func (sm *StateManager) GetArtifactPath(runID string) string {
	return filepath.Join(sm.stateDir, "artifacts", fmt.Sprintf("run_%s.json", runID))
}

// IsStateValid reports whether saved state belongs to the given database
func (sm *StateManager) IsStateValid(dbPath string) (bool, error) {
	if _, err := os.Stat(sm.GetStatePath()); os.IsNotExist(err) {
		return false, nil
	}
	state, err := sm.LoadState()
	if err != nil {
		return false, nil
	}
	return state.Metadata.DatabasePath == dbPath, nil
}

// LoadState loads the state file
func (sm *StateManager) LoadState() (*WorkspaceState, error) {
	data, err := os.ReadFile(sm.GetStatePath())
	if err != nil {
		return nil, err
	}

	var state WorkspaceState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	if state.Selection.Selected == nil {
		state.Selection.Selected = make(map[Category][]string)
	}
	return &state, nil
}

// LoadStateFor loads state for dbPath, returning empty state when none is
// saved or the saved state belongs to another database.
func (sm *StateManager) LoadStateFor(dbPath string) *WorkspaceState {
	valid, _ := sm.IsStateValid(dbPath)
	if valid {
		if state, err := sm.LoadState(); err == nil {
			return state
		}
	}
	return &WorkspaceState{
		Selection: SelectionSnapshot{Selected: make(map[Category][]string)},
		Metadata:  StateMetadata{DatabasePath: dbPath, StateVersion: StateVersion},
	}
}

// SaveState writes the tracker snapshot and history for dbPath
func (sm *StateManager) SaveState(dbPath string, selection SelectionSnapshot, history []RunHistoryEntry) error {
	if err := sm.EnsureStateDir(); err != nil {
		return err
	}

	now := time.Now()
	meta := StateMetadata{
		DatabasePath: dbPath,
		StateVersion: StateVersion,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if existing, err := sm.LoadState(); err == nil && existing.Metadata.DatabasePath == dbPath && !existing.Metadata.CreatedAt.IsZero() {
		meta.CreatedAt = existing.Metadata.CreatedAt
	}

	data, err := yaml.Marshal(&WorkspaceState{
		Selection: selection,
		History:   history,
		Metadata:  meta,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	return os.WriteFile(sm.GetStatePath(), data, 0644)
}

// SaveArtifact stores a run's artifact next to the state file
func (sm *StateManager) SaveArtifact(runID string, artifact *Artifact) error {
	if err := sm.EnsureStateDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	return os.WriteFile(sm.GetArtifactPath(runID), data, 0644)
}

// LoadArtifact reads a saved artifact as raw JSON
func (sm *StateManager) LoadArtifact(runID string) (json.RawMessage, error) {
	data, err := os.ReadFile(sm.GetArtifactPath(runID))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}

// ClearState removes the state file and all saved artifacts
func (sm *StateManager) ClearState() error {
	if err := os.RemoveAll(filepath.Join(sm.stateDir, "artifacts")); err != nil {
		return err
	}
	if err := os.Remove(sm.GetStatePath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
