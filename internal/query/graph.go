package query

import (
	"context"
	"fmt"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// Hypernyms returns the synsets that synsetID names as a hypernym, the
// primitive every other taxonomy operation is built from.
func (w *Wordnet) Hypernyms(ctx context.Context, synsetID string) ([]domain.Synset, error) {
	rels, err := w.syn.RelationsFromByType(ctx, synsetID, []domain.RelationType{domain.RelHypernym})
	if err != nil {
		return nil, fmt.Errorf("hypernyms(%q): %w", synsetID, err)
	}

	var out []domain.Synset
	for _, rel := range rels {
		s, err := w.syn.GetByID(ctx, rel.Target)
		if err != nil {
			return nil, fmt.Errorf("hypernyms(%q): %w", synsetID, err)
		}
		out = append(out, *s)
	}
	return out, nil
}

// Roots returns the ids of every synset in scope with no outbound hypernym
// relation, optionally filtered by part of speech.
func (w *Wordnet) Roots(ctx context.Context, pos domain.PartOfSpeech) ([]string, error) {
	ids, err := w.syn.Roots(ctx, w.lexiconIDs, pos)
	if err != nil {
		return nil, fmt.Errorf("roots: %w", err)
	}
	return ids, nil
}

// Leaves returns the ids of every synset in scope that no other synset
// names as a hypernym target, optionally filtered by part of speech.
func (w *Wordnet) Leaves(ctx context.Context, pos domain.PartOfSpeech) ([]string, error) {
	ids, err := w.syn.Leaves(ctx, w.lexiconIDs, pos)
	if err != nil {
		return nil, fmt.Errorf("leaves: %w", err)
	}
	return ids, nil
}
