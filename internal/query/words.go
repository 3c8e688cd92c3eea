package query

import (
	"context"
	"fmt"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// Words returns every word whose lemma or any form matches the normalized
// form, across the Wordnet's lexicons, optionally filtered by pos. When the
// direct lookup is empty and a Lemmatizer is configured and SearchAllForms
// is true, it reruns the lookup across the union of candidate lemmas the
// Lemmatizer proposes.
func (w *Wordnet) Words(ctx context.Context, form string, pos domain.PartOfSpeech) ([]domain.Word, error) {
	normalized := w.normalize(form)

	words, err := w.wrd.FindByForm(ctx, normalized, pos, w.lexiconIDs)
	if err != nil {
		return nil, fmt.Errorf("words(%q): %w", form, err)
	}
	if len(words) > 0 || w.opts.Lemmatizer == nil {
		return words, nil
	}

	candidates := w.opts.Lemmatizer(normalized, pos)
	seen := map[string]bool{}
	var out []domain.Word
	for candidatePos, lemmas := range candidates {
		usePos := pos
		if usePos == "" {
			usePos = candidatePos
		}
		for _, lemma := range lemmas {
			matches, err := w.wrd.FindByForm(ctx, lemma, usePos, w.lexiconIDs)
			if err != nil {
				return nil, fmt.Errorf("words(%q) lemmatizer candidate %q: %w", form, lemma, err)
			}
			for _, m := range matches {
				if !seen[m.ID] {
					seen[m.ID] = true
					out = append(out, m)
				}
			}
		}
	}
	return out, nil
}

// AllWords returns every word across the Wordnet's scope, with forms
// populated. Used by Morphy's exception-table initialization.
func (w *Wordnet) AllWords(ctx context.Context) ([]domain.Word, error) {
	words, err := w.wrd.AllWords(ctx, w.lexiconIDs)
	if err != nil {
		return nil, fmt.Errorf("all words: %w", err)
	}
	return words, nil
}

// Word returns the word with id, including its forms.
func (w *Wordnet) Word(ctx context.Context, id string) (*domain.Word, error) {
	got, err := w.wrd.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("word(%q): %w", id, err)
	}
	return got, nil
}
