package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iksnae/case-evidence/internal"
)

// workspace bundles the engine state a command works against: the evidence
// database, the selection tracker restored from disk, run history and the
// prompt catalog.
type workspace struct {
	db      *sql.DB
	store   *internal.Store
	state   *internal.StateManager
	tracker *internal.SelectionTracker
	history *internal.RunHistory
	catalog *internal.PromptCatalog
}

func openWorkspace(ctx context.Context) (*workspace, error) {
	db, err := openStore()
	if err != nil {
		return nil, err
	}
	store := internal.NewStore(db)

	collection, err := internal.LoadCollection(ctx, store)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to load evidence: %w", err)
	}

	state := internal.NewStateManager(cfg.State.Dir)
	saved := state.LoadStateFor(cfg.Database.Path)

	tracker := internal.NewSelectionTracker(collection)
	tracker.Restore(saved.Selection)

	catalog, err := loadCatalog(ctx, store)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &workspace{
		db:      db,
		store:   store,
		state:   state,
		tracker: tracker,
		history: internal.NewRunHistory(saved.History...),
		catalog: catalog,
	}, nil
}

// openStore opens the configured database and makes sure the schema exists
func openStore() (*sql.DB, error) {
	db, err := internal.OpenDatabase(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := internal.EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// loadCatalog layers the built-in prompts, the configured YAML catalog and
// prompts saved in the database, later sources replacing earlier ones by name
func loadCatalog(ctx context.Context, store *internal.Store) (*internal.PromptCatalog, error) {
	catalog := internal.DefaultPromptCatalog()

	if cfg.Prompts.Path != "" {
		fromFile, err := internal.LoadPromptCatalog(cfg.Prompts.Path)
		if err != nil {
			return nil, err
		}
		catalog.Merge(fromFile.List())
	}

	saved, err := store.ListPrompts(ctx)
	if err != nil {
		return nil, err
	}
	catalog.Merge(saved)
	return catalog, nil
}

// save persists the selection and history for the next invocation
func (w *workspace) save() error {
	if err := w.state.SaveState(cfg.Database.Path, w.tracker.Snapshot(), w.history.Entries()); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (w *workspace) Close() error {
	return w.db.Close()
}
