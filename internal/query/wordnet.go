// Package query implements the read-only Wordnet façade: the only way
// callers (Graph, Similarity, IC, Morphy, export, cmd/wnquery) observe
// store state once Ingestor has committed it.
package query

import (
	"context"
	"fmt"
	"strings"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/ili"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/lexicon"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/synset"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/word"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// Normalizer prepares an incoming form query string, e.g. lowercasing.
type Normalizer func(string) string

// Lemmatizer maps a surface form (and optional POS) to candidate lemmas per
// POS, consulted when a direct form lookup returns nothing.
type Lemmatizer func(form string, pos domain.PartOfSpeech) map[domain.PartOfSpeech][]string

// Options configures a Wordnet façade.
type Options struct {
	// Expand lists additional lexicon ids whose data is drawn on for
	// cross-lexicon relation resolution (ILI-based alignment).
	Expand []string
	// Lang filters the selector's matching lexicons by language.
	Lang string
	// Normalizer defaults to domain.NormalizeText.
	Normalizer Normalizer
	// Lemmatizer is consulted by Words/Senses when a direct lookup misses
	// and SearchAllForms is true. Nil disables the fallback regardless.
	Lemmatizer Lemmatizer
	// SearchAllForms defaults to true; false disables the Lemmatizer
	// fallback. A nil pointer takes the default; set a pointer to false to
	// disable it explicitly (the zero Options{} must still mean "default
	// true" per the documented contract, which a plain bool can't express).
	SearchAllForms *bool
}

// Wordnet is a read-only view over one or more lexicons.
type Wordnet struct {
	db  *sqlite.Store
	lex *lexicon.Repo
	wrd *word.Repo
	syn *synset.Repo
	ilr *ili.Repo

	lexiconIDs []string // resolved selector + Expand, deduped
	opts       Options
}

// Open resolves selector ("id", "id:version", or "*") against the store and
// returns a Wordnet scoped to the matching lexicons plus opts.Expand.
func Open(ctx context.Context, store *sqlite.Store, selector string, opts Options) (*Wordnet, error) {
	if opts.Normalizer == nil {
		opts.Normalizer = domain.NormalizeText
	}
	if opts.SearchAllForms != nil && !*opts.SearchAllForms {
		opts.Lemmatizer = nil
	}

	lex := lexicon.New(store.DB, store.Txm)

	all, err := lex.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("open wordnet: %w", err)
	}

	matched := matchSelector(all, selector, opts.Lang)
	if len(matched) == 0 && selector != "*" {
		return nil, fmt.Errorf("selector %q: %w", selector, domain.ErrNotFound)
	}

	ids := make(map[string]bool, len(matched)+len(opts.Expand))
	var ordered []string
	for _, lx := range matched {
		if !ids[lx.ID] {
			ids[lx.ID] = true
			ordered = append(ordered, lx.ID)
		}
	}
	for _, id := range opts.Expand {
		if !ids[id] {
			ids[id] = true
			ordered = append(ordered, id)
		}
	}

	return &Wordnet{
		db:         store,
		lex:        lex,
		wrd:        word.New(store.DB, store.Txm, 900),
		syn:        synset.New(store.DB, store.Txm, 900),
		ilr:        ili.New(store.DB, 900),
		lexiconIDs: ordered,
		opts:       opts,
	}, nil
}

func matchSelector(all []domain.Lexicon, selector, lang string) []domain.Lexicon {
	id, version, hasVersion := "", "", false
	if selector != "*" {
		id, version, hasVersion = strings.Cut(selector, ":")
	}

	var out []domain.Lexicon
	for _, lx := range all {
		if lang != "" && lx.Language != lang {
			continue
		}
		if selector != "*" {
			if lx.ID != id {
				continue
			}
			if hasVersion && lx.Version != version {
				continue
			}
		}
		out = append(out, lx)
	}
	return out
}

// LexiconIDs returns the resolved set of lexicon ids this Wordnet reads
// from (selector matches plus Options.Expand).
func (w *Wordnet) LexiconIDs() []string {
	return append([]string(nil), w.lexiconIDs...)
}

// Lexicons returns every lexicon this Wordnet is scoped to.
func (w *Wordnet) Lexicons(ctx context.Context) ([]domain.Lexicon, error) {
	all, err := w.lex.List(ctx)
	if err != nil {
		return nil, err
	}
	inScope := make(map[string]bool, len(w.lexiconIDs))
	for _, id := range w.lexiconIDs {
		inScope[id] = true
	}
	var out []domain.Lexicon
	for _, lx := range all {
		if inScope[lx.ID] {
			out = append(out, lx)
		}
	}
	return out, nil
}

func (w *Wordnet) normalize(form string) string {
	return w.opts.Normalizer(form)
}
