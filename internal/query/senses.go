package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// Senses returns senses matching formOrWordID. Per the dispatch heuristic,
// an argument containing '-' is treated as a Word id (its senses are
// returned directly, pos is ignored); otherwise it is treated as a form
// and resolved the way Words resolves one, then every matching word's
// senses are collected.
func (w *Wordnet) Senses(ctx context.Context, formOrWordID string, pos domain.PartOfSpeech) ([]domain.Sense, error) {
	if strings.Contains(formOrWordID, "-") {
		return w.SensesForWordID(ctx, formOrWordID)
	}

	words, err := w.Words(ctx, formOrWordID, pos)
	if err != nil {
		return nil, err
	}

	var out []domain.Sense
	for _, word := range words {
		senses, err := w.wrd.SensesForWord(ctx, word.ID)
		if err != nil {
			return nil, fmt.Errorf("senses(%q): %w", formOrWordID, err)
		}
		out = append(out, senses...)
	}
	return out, nil
}

// SensesForWordID returns the senses attached directly to wordID.
func (w *Wordnet) SensesForWordID(ctx context.Context, wordID string) ([]domain.Sense, error) {
	senses, err := w.wrd.SensesForWord(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("senses for word %q: %w", wordID, err)
	}
	return senses, nil
}

// Sense returns the single sense with id, including its examples.
func (w *Wordnet) Sense(ctx context.Context, id string) (*domain.Sense, error) {
	sense, err := w.wrd.GetSenseByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sense(%q): %w", id, err)
	}

	examples, err := w.syn.ExamplesForSense(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sense(%q): %w", id, err)
	}
	sense.Examples = examples

	return sense, nil
}
