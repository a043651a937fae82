package internal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RunResult is what a completed run hands to the presentation layer
type RunResult struct {
	Entry          RunHistoryEntry
	Artifact       *Artifact
	RenderedPrompt string
}

// Runner is the single control point for derivation invocations. Runs are
// serialized; each records a history entry at invocation time and then
// derives from an immutable capture of the selection.
type Runner struct {
	tracker *SelectionTracker
	deriver *Deriver
	history *RunHistory
	metrics *Metrics
	clock   func() time.Time
	delay   time.Duration
	newID   func() string
	slot    chan struct{}
}

// RunnerOption configures a Runner
type RunnerOption func(*Runner)

// WithClock injects the source of the current instant
func WithClock(clock func() time.Time) RunnerOption {
	return func(r *Runner) { r.clock = clock }
}

// WithDelay sets the simulated round-trip to the generation service
func WithDelay(d time.Duration) RunnerOption {
	return func(r *Runner) { r.delay = d }
}

// WithMetrics attaches run metrics
func WithMetrics(m *Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithIDGenerator overrides history entry id generation
func WithIDGenerator(fn func() string) RunnerOption {
	return func(r *Runner) { r.newID = fn }
}

// NewRunner wires the engine components together
func NewRunner(tracker *SelectionTracker, deriver *Deriver, history *RunHistory, opts ...RunnerOption) *Runner {
	r := &Runner{
		tracker: tracker,
		deriver: deriver,
		history: history,
		clock:   time.Now,
		newID:   newRunID,
		slot:    make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// newRunID returns a time-ordered UUIDv7, falling back to a random v4
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Run derives the prompt's artifact from the current selection. If ctx is
// done before the run completes, no result is returned and history is not
// touched beyond the entry recorded at invocation.
func (r *Runner) Run(ctx context.Context, prompt Prompt, input map[string]any) (*RunResult, error) {
	select {
	case r.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrRunCancelled, ctx.Err())
	}
	defer func() { <-r.slot }()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRunCancelled, err)
	}

	started := time.Now()
	capture := r.tracker.Capture()
	now := r.clock()
	goal := ParseGoal(string(prompt.Goal))

	fingerprint, err := SelectionFingerprint(capture.Snapshot)
	if err != nil {
		LogWarn("Failed to fingerprint selection: %v", err)
	}

	entry := RunHistoryEntry{
		ID:            r.newID(),
		PromptName:    prompt.Name,
		Goal:          goal,
		Timestamp:     now,
		EvidenceCount: capture.SelectionCount,
		DateRange:     capture.DateRange,
		Fingerprint:   fingerprint,
	}
	r.history.Record(entry)
	LogDebug("run %s started: prompt=%q goal=%s selected=%d", entry.ID, prompt.Name, goal, capture.SelectionCount)

	if r.delay > 0 {
		timer := time.NewTimer(r.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			r.metrics.ObserveRun(goal, OutcomeCancelled, time.Since(started), capture.SelectionCount)
			return nil, fmt.Errorf("%w: %w", ErrRunCancelled, ctx.Err())
		}
	}

	artifact, err := r.deriver.Derive(ctx, DeriveRequest{
		Goal:     prompt.Goal,
		Evidence: capture.Evidence,
		Now:      now,
		Input:    input,
	})
	if ctxErr := ctx.Err(); ctxErr != nil {
		r.metrics.ObserveRun(goal, OutcomeCancelled, time.Since(started), capture.SelectionCount)
		return nil, fmt.Errorf("%w: %w", ErrRunCancelled, ctxErr)
	}
	if err != nil {
		outcome := OutcomeError
		if errors.Is(err, ErrInsufficientSelection) {
			outcome = OutcomeEmpty
		}
		r.metrics.ObserveRun(goal, outcome, time.Since(started), capture.SelectionCount)
		LogInfo("run %s failed: %v", entry.ID, err)
		return nil, err
	}

	r.metrics.ObserveRun(goal, OutcomeSuccess, time.Since(started), capture.SelectionCount)
	LogInfo("run %s produced %s from %d item(s)", entry.ID, goal, capture.Evidence.Total())

	return &RunResult{
		Entry:          entry,
		Artifact:       artifact,
		RenderedPrompt: prompt.Render(capture.DateRange),
	}, nil
}

// History returns the runner's history log
func (r *Runner) History() *RunHistory {
	return r.history
}
