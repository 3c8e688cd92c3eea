package query

import (
	"context"
	"fmt"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// Synsets returns the union of synsets reachable from senses of words
// matching form/pos, optionally further restricted to a specific ILI.
func (w *Wordnet) Synsets(ctx context.Context, form string, pos domain.PartOfSpeech, iliID string) ([]domain.Synset, error) {
	senses, err := w.Senses(ctx, form, pos)
	if err != nil {
		return nil, fmt.Errorf("synsets(%q): %w", form, err)
	}

	seen := map[string]bool{}
	var ids []string
	for _, s := range senses {
		if s.Synset != "" && !seen[s.Synset] {
			seen[s.Synset] = true
			ids = append(ids, s.Synset)
		}
	}

	var out []domain.Synset
	for _, id := range ids {
		s, err := w.Synset(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("synsets(%q): %w", form, err)
		}
		if iliID != "" && s.ILI != iliID {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

// AllSynsets returns every synset across the Wordnet's scope, without their
// definitions, examples, or relations populated. Used by Information
// Content computation, which needs the full synset population per POS.
func (w *Wordnet) AllSynsets(ctx context.Context) ([]domain.Synset, error) {
	var out []domain.Synset
	for _, lexID := range w.lexiconIDs {
		synsets, err := w.syn.ListByLexicon(ctx, lexID)
		if err != nil {
			return nil, fmt.Errorf("all synsets: %w", err)
		}
		out = append(out, synsets...)
	}
	return out, nil
}

// Synset returns the full synset with id: definitions, relations, examples,
// and the derived members/senses views.
func (w *Wordnet) Synset(ctx context.Context, id string) (*domain.Synset, error) {
	s, err := w.syn.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("synset(%q): %w", id, err)
	}

	senses, err := w.wrd.SensesForSynset(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("synset(%q) members: %w", id, err)
	}

	seenMembers := map[string]bool{}
	for _, sense := range senses {
		s.Senses = append(s.Senses, sense.ID)
		if !seenMembers[sense.Word] {
			seenMembers[sense.Word] = true
			s.Members = append(s.Members, sense.Word)
		}
	}

	return s, nil
}
