package internal

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// LoadCollection loads every category from the store concurrently and
// assembles them into one collection.
func LoadCollection(ctx context.Context, store EvidenceStore) (EvidenceCollection, error) {
	results := make([][]EvidenceRecord, len(Categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range Categories {
		i, cat := i, cat
		g.Go(func() error {
			records, err := store.LoadCategory(gctx, cat)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", cat, err)
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	collection := make(EvidenceCollection, len(Categories))
	for i, cat := range Categories {
		collection[cat] = results[i]
		LogDebug("Loaded %d %s record(s)", len(results[i]), cat)
	}
	return collection, nil
}
