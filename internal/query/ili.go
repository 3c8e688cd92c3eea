package query

import (
	"context"
	"fmt"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// ILI returns the interlingual index record with id.
func (w *Wordnet) ILI(ctx context.Context, id string) (*domain.ILI, error) {
	rec, err := w.ilr.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ili(%q): %w", id, err)
	}
	return rec, nil
}

// ILIs returns every ILI record, optionally filtered by status.
func (w *Wordnet) ILIs(ctx context.Context, status domain.ILIStatus) ([]domain.ILI, error) {
	recs, err := w.ilr.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("ilis(%q): %w", status, err)
	}
	return recs, nil
}

// SynsetsByILI returns every synset across this Wordnet's lexicons sharing
// the given ILI — the primary cross-lingual alignment operation.
func (w *Wordnet) SynsetsByILI(ctx context.Context, iliID string) ([]domain.Synset, error) {
	synsets, err := w.syn.ByILI(ctx, iliID, w.lexiconIDs)
	if err != nil {
		return nil, fmt.Errorf("synsets by ili %q: %w", iliID, err)
	}
	return synsets, nil
}
