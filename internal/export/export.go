// Package export projects a Wordnet's scope into the JSON, XML, and CSV
// shapes documented as the library's external export contract. It reads
// exclusively through the Query Engine: no new entities, no write path.
package export

import (
	"context"
	"fmt"
	"sort"

	"github.com/heartmarshall/wordnet-engine/internal/domain"
	"github.com/heartmarshall/wordnet-engine/internal/query"
)

// Options filters which lexicons a Snapshot covers. Empty Include means
// every lexicon in the Wordnet's scope; Exclude is applied after Include.
type Options struct {
	Include []string
	Exclude []string
}

// EntrySnapshot pairs a word with its senses, mirroring an LMF LexicalEntry.
type EntrySnapshot struct {
	Word   domain.Word
	Senses []domain.Sense
}

// LexiconSnapshot is one lexicon's exported entries and synsets.
type LexiconSnapshot struct {
	Lexicon domain.Lexicon
	Entries []EntrySnapshot
	Synsets []domain.Synset
}

// Snapshot is a point-in-time projection of a Wordnet's scope, the shared
// input every format writer in this package consumes.
type Snapshot struct {
	Lexicons []LexiconSnapshot
}

// Build gathers a Snapshot from wn, filtered by opts.Include/Exclude
// (lexicon ids).
func Build(ctx context.Context, wn *query.Wordnet, opts Options) (*Snapshot, error) {
	lexicons, err := wn.Lexicons(ctx)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	words, err := wn.AllWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	synsets, err := wn.AllSynsets(ctx)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}

	include := toSet(opts.Include)
	exclude := toSet(opts.Exclude)

	wordsByLex := map[string][]domain.Word{}
	for _, w := range words {
		wordsByLex[w.Lexicon] = append(wordsByLex[w.Lexicon], w)
	}
	synsetsByLex := map[string][]domain.Synset{}
	for _, s := range synsets {
		synsetsByLex[s.Lexicon] = append(synsetsByLex[s.Lexicon], s)
	}

	var out Snapshot
	for _, lex := range lexicons {
		if len(include) > 0 && !include[lex.ID] {
			continue
		}
		if exclude[lex.ID] {
			continue
		}

		var entries []EntrySnapshot
		for _, w := range wordsByLex[lex.ID] {
			senses, err := wn.SensesForWordID(ctx, w.ID)
			if err != nil {
				return nil, fmt.Errorf("export snapshot: word %q: %w", w.ID, err)
			}
			entries = append(entries, EntrySnapshot{Word: w, Senses: senses})
		}

		var fullSynsets []domain.Synset
		for _, s := range synsetsByLex[lex.ID] {
			full, err := wn.Synset(ctx, s.ID)
			if err != nil {
				return nil, fmt.Errorf("export snapshot: synset %q: %w", s.ID, err)
			}
			fullSynsets = append(fullSynsets, *full)
		}

		out.Lexicons = append(out.Lexicons, LexiconSnapshot{Lexicon: lex, Entries: entries, Synsets: fullSynsets})
	}

	sort.Slice(out.Lexicons, func(i, j int) bool {
		return out.Lexicons[i].Lexicon.ID < out.Lexicons[j].Lexicon.ID
	})
	return &out, nil
}

func toSet(ss []string) map[string]bool {
	set := make(map[string]bool, len(ss))
	for _, s := range ss {
		set[s] = true
	}
	return set
}
