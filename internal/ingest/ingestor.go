// Package ingest loads LMF XML and CILI TSV distributions into the store,
// the only code path allowed to create or remove WordNet data.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/ili"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/lexicon"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/synset"
	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite/word"
	"github.com/heartmarshall/wordnet-engine/internal/config"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
	ililoader "github.com/heartmarshall/wordnet-engine/internal/ili"
	"github.com/heartmarshall/wordnet-engine/internal/lmf"
)

// ProgressFunc reports ingestion progress as a fraction in [0,1].
type ProgressFunc func(fraction float64)

// Options controls one Add call.
type Options struct {
	// Force allows an update-in-place re-ingest of a lexicon (id, version)
	// that already exists; without it, Add aborts with domain.ErrLexiconExists.
	Force bool
	// DryRun skips all writes; Add returns the counts it would have written.
	DryRun bool
	Progress ProgressFunc
}

// Counts summarizes what a dry run (or a completed ingest) touched.
type Counts struct {
	Lexicons, Words, Forms, Synsets, Definitions, Examples, Relations, Senses, ILIs int
}

// Ingestor loads LMF/ILI sources into the store under the store's
// single-writer lock.
type Ingestor struct {
	store  *sqlite.Store
	lexRep *lexicon.Repo
	wordRep *word.Repo
	synRep *synset.Repo
	iliRep *ili.Repo
	cfg    config.ParserConfig
	chunk  int
	log    *slog.Logger
}

// New builds an Ingestor backed by store, with parser/ingest tuning from cfg.
func New(store *sqlite.Store, parserCfg config.ParserConfig, transactionChunkSize int, log *slog.Logger) *Ingestor {
	if log == nil {
		log = slog.Default()
	}
	return &Ingestor{
		store:   store,
		lexRep:  lexicon.New(store.DB, store.Txm),
		wordRep: word.New(store.DB, store.Txm, 900),
		synRep:  synset.New(store.DB, store.Txm, 900),
		iliRep:  ili.New(store.DB, 900),
		cfg:     parserCfg,
		chunk:   transactionChunkSize,
		log:     log,
	}
}

// Add ingests path (a bare LMF/TSV file or a .tar.xz/.tar.gz/.xz/.gz archive
// containing one). It returns true if an existing lexicon was updated in
// place and false if this was a fresh add; a dry run writes nothing and
// returns true when the add would update an existing lexicon.
func (ig *Ingestor) Add(ctx context.Context, path string, opts Options) (updated bool, counts Counts, err error) {
	err = ig.store.AcquireWrite(ctx, func(ctx context.Context) error {
		updated, counts, err = ig.add(ctx, path, opts)
		return err
	})
	return updated, counts, err
}

// Remove deletes lexiconID and every row it owns, under the store's
// single-writer lock. It fails with domain.ErrNotFound if lexiconID does
// not exist.
func (ig *Ingestor) Remove(ctx context.Context, lexiconID string) error {
	return ig.store.AcquireWrite(ctx, func(ctx context.Context) error {
		if _, err := ig.lexRep.GetByID(ctx, lexiconID); err != nil {
			return fmt.Errorf("remove %s: %w", lexiconID, err)
		}
		return ig.store.Txm.RunInTx(ctx, func(ctx context.Context) error {
			return ig.clearLexicon(ctx, lexiconID)
		})
	})
}

func (ig *Ingestor) add(ctx context.Context, path string, opts Options) (bool, Counts, error) {
	rc, name, err := openSource(path)
	if err != nil {
		return false, Counts{}, err
	}
	defer rc.Close()

	format, r, err := sniff(rc)
	if err != nil {
		return false, Counts{}, fmt.Errorf("sniff %s: %w", name, err)
	}

	switch format {
	case formatLMF:
		return ig.addLMF(ctx, r, name, opts)
	case formatILI:
		n, err := ig.addILI(ctx, r, name, opts)
		return false, Counts{ILIs: n}, err
	default:
		return false, Counts{}, fmt.Errorf("%s: %w", name, domain.ErrInvalidInput)
	}
}

func (ig *Ingestor) addLMF(ctx context.Context, r io.Reader, name string, opts Options) (bool, Counts, error) {
	sink := &lmf.DocumentSink{}
	parserCfg := lmf.Config{AllowedVersions: ig.cfg.AllowedVersions, ProgressEveryElements: ig.cfg.ProgressEveryElements}

	err := lmf.Parse(r, name, parserCfg, sink, func(n int) {
		ig.log.Debug("lmf parse progress", "file", name, "elements", n)
	})
	if err != nil {
		return false, Counts{}, err
	}
	doc := sink.Doc

	updated := false
	for _, lx := range doc.Lexicons {
		exists, err := ig.lexRep.Exists(ctx, lx.ID, lx.Version)
		if err != nil {
			return false, Counts{}, err
		}
		if exists {
			if !opts.Force {
				return false, Counts{}, fmt.Errorf("%s@%s: %w", lx.ID, lx.Version, domain.ErrLexiconExists)
			}
			updated = true
		}
	}

	counts := Counts{
		Lexicons:    len(doc.Lexicons),
		Words:       len(doc.Words),
		Synsets:     len(doc.Synsets),
		Definitions: len(doc.Definitions),
		Examples:    len(doc.Examples),
		Relations:   len(doc.Relations),
		Senses:      len(doc.Senses),
	}
	for _, w := range doc.Words {
		counts.Forms += len(w.Forms)
	}

	if opts.DryRun {
		ig.log.Info("ingest dry run", "file", name, "updated", updated, "counts", counts)
		return updated, counts, nil
	}

	report := weightedProgress(opts.Progress)

	err = ig.store.Txm.RunInTx(ctx, func(ctx context.Context) error {
		if updated {
			for _, lx := range doc.Lexicons {
				if err := ig.clearLexicon(ctx, lx.ID); err != nil {
					return fmt.Errorf("clear existing lexicon %s: %w", lx.ID, err)
				}
			}
		}

		phases := []struct {
			weight     [2]float64
			write      func() error
		}{
			{[2]float64{0.01, 0.10}, func() error {
				for _, lx := range doc.Lexicons {
					if err := ig.lexRep.Insert(ctx, lx); err != nil {
						return err
					}
				}
				return nil
			}},
			{[2]float64{0.10, 0.30}, func() error { return ig.wordRep.InsertWords(ctx, doc.Words) }},
			{[2]float64{0.30, 0.40}, func() error { return ig.wordRep.InsertForms(ctx, allForms(doc.Words)) }},
			{[2]float64{0.40, 0.50}, func() error { return ig.synRep.InsertSynsets(ctx, doc.Synsets) }},
			{[2]float64{0.50, 0.60}, func() error { return ig.synRep.InsertDefinitions(ctx, doc.Definitions) }},
			{[2]float64{0.60, 0.70}, func() error { return ig.synRep.InsertRelations(ctx, doc.Relations) }},
			{[2]float64{0.70, 0.80}, func() error { return ig.wordRep.InsertSenses(ctx, doc.Senses) }},
			{[2]float64{0.80, 0.99}, func() error { return ig.synRep.InsertExamples(ctx, doc.Examples) }},
		}

		for _, ph := range phases {
			if err := ph.write(); err != nil {
				return err
			}
			report(ph.weight[1])
		}
		return nil
	})
	if err != nil {
		return false, Counts{}, fmt.Errorf("ingest %s: %w", name, err)
	}

	report(1.0)
	ig.log.Info("ingest complete", "file", name, "updated", updated, "counts", counts)
	return updated, counts, nil
}

// clearLexicon deletes every row touching lexiconID in dependency order:
// examples and relations first (they carry no foreign key), then the
// lexicon row itself whose ON DELETE CASCADE removes words, forms, synsets,
// senses, and definitions.
func (ig *Ingestor) clearLexicon(ctx context.Context, lexiconID string) error {
	if err := ig.synRep.DeleteExamplesByLexicon(ctx, lexiconID); err != nil {
		return err
	}
	if err := ig.synRep.DeleteRelationsByLexicon(ctx, lexiconID); err != nil {
		return err
	}
	return ig.lexRep.Delete(ctx, lexiconID)
}

func (ig *Ingestor) addILI(ctx context.Context, r io.Reader, name string, opts Options) (int, error) {
	records, err := ililoader.Load(r, name)
	if err != nil {
		return 0, err
	}

	if opts.DryRun {
		ig.log.Info("ingest dry run", "file", name, "ili_records", len(records))
		return len(records), nil
	}

	report := weightedProgress(opts.Progress)
	err = sqlite.ChunkTx(ctx, ig.store.Txm, records, ig.chunk, func(f float64) { report(f) },
		func(ctx context.Context, chunk []domain.ILI) error {
			return ig.iliRep.Insert(ctx, chunk)
		})
	if err != nil {
		return 0, fmt.Errorf("ingest ili %s: %w", name, err)
	}

	ig.log.Info("ili ingest complete", "file", name, "records", len(records))
	return len(records), nil
}

func allForms(words []domain.Word) []domain.Form {
	var out []domain.Form
	for _, w := range words {
		out = append(out, w.Forms...)
	}
	return out
}

// weightedProgress adapts a fraction-reporting callback (where each call
// passes the final fraction reached, not phase-relative progress) into a
// throttled reporter matching the store's batchInsert contract: no more
// than one call per 5% of completion.
func weightedProgress(fn ProgressFunc) func(float64) {
	if fn == nil {
		return func(float64) {}
	}
	last := -1.0
	return func(fraction float64) {
		if fraction <= 0 || fraction >= 1 || fraction-last >= 0.05 {
			last = fraction
			fn(fraction)
		}
	}
}
