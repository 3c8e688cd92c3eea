// Package synset persists Synset, Definition, Example, and Relation
// records — the concept side of a lexicon.
package synset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// Repo provides Synset/Definition/Example/Relation persistence backed by
// the embedded store.
type Repo struct {
	db      *sql.DB
	txm     *sqlite.TxManager
	maxVars int
}

// New creates a new synset repository. maxVars bounds the number of bound
// parameters per batch-insert statement.
func New(db *sql.DB, txm *sqlite.TxManager, maxVars int) *Repo {
	if maxVars <= 0 {
		maxVars = 900
	}
	return &Repo{db: db, txm: txm, maxVars: maxVars}
}

// GetByID returns the synset with id, including its definitions, examples,
// and outgoing relations, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Synset, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	row := q.QueryRowContext(ctx,
		`SELECT id, ili, part_of_speech, language, lexicon_id FROM synsets WHERE id = ?`, id)

	var s domain.Synset
	if err := row.Scan(&s.ID, &s.ILI, &s.PartOfSpeech, &s.Language, &s.Lexicon); err != nil {
		return nil, sqlite.MapError(err, "synset", id)
	}

	defs, err := r.Definitions(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Definitions = defs

	exs, err := r.ExamplesForSynset(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Examples = exs

	rels, err := r.RelationsFrom(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Relations = rels

	return &s, nil
}

// ListByLexicon returns every synset belonging to lexiconID, without their
// definitions, examples, or relations populated.
func (r *Repo) ListByLexicon(ctx context.Context, lexiconID string) ([]domain.Synset, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := q.QueryContext(ctx,
		`SELECT id, ili, part_of_speech, language, lexicon_id FROM synsets WHERE lexicon_id = ?`, lexiconID)
	if err != nil {
		return nil, fmt.Errorf("list synsets for lexicon %s: %w", lexiconID, err)
	}
	defer rows.Close()

	var out []domain.Synset
	for rows.Next() {
		var s domain.Synset
		if err := rows.Scan(&s.ID, &s.ILI, &s.PartOfSpeech, &s.Language, &s.Lexicon); err != nil {
			return nil, fmt.Errorf("scan synset: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ByILI returns every synset across lexiconIDs sharing the given ILI — the
// cross-lingual alignment the Interlingual Index exists to express.
func (r *Repo) ByILI(ctx context.Context, ili string, lexiconIDs []string) ([]domain.Synset, error) {
	if ili == "" || len(lexiconIDs) == 0 {
		return nil, nil
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := `SELECT id, ili, part_of_speech, language, lexicon_id FROM synsets WHERE ili = ? AND lexicon_id IN (` +
		placeholders(len(lexiconIDs)) + `)`
	args := append([]any{ili}, toAnySlice(lexiconIDs)...)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("synsets by ili %s: %w", ili, err)
	}
	defer rows.Close()

	var out []domain.Synset
	for rows.Next() {
		var s domain.Synset
		if err := rows.Scan(&s.ID, &s.ILI, &s.PartOfSpeech, &s.Language, &s.Lexicon); err != nil {
			return nil, fmt.Errorf("scan synset: %w", err)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

// Definitions returns every definition attached to synsetID.
func (r *Repo) Definitions(ctx context.Context, synsetID string) ([]domain.Definition, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := q.QueryContext(ctx,
		`SELECT id, synset_id, language, text, source FROM definitions WHERE synset_id = ?`, synsetID)
	if err != nil {
		return nil, fmt.Errorf("definitions for synset %s: %w", synsetID, err)
	}
	defer rows.Close()

	var out []domain.Definition
	for rows.Next() {
		var d domain.Definition
		if err := rows.Scan(&d.ID, &d.Synset, &d.Language, &d.Text, &d.Source); err != nil {
			return nil, fmt.Errorf("scan definition: %w", err)
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

// ExamplesForSynset returns every example owned directly by synsetID.
func (r *Repo) ExamplesForSynset(ctx context.Context, synsetID string) ([]domain.Example, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := q.QueryContext(ctx,
		`SELECT id, synset_id, sense_id, language, text, source FROM examples WHERE synset_id = ?`, synsetID)
	if err != nil {
		return nil, fmt.Errorf("examples for synset %s: %w", synsetID, err)
	}
	defer rows.Close()
	return scanExamples(rows)
}

// ExamplesForSense returns every example owned directly by senseID.
func (r *Repo) ExamplesForSense(ctx context.Context, senseID string) ([]domain.Example, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := q.QueryContext(ctx,
		`SELECT id, synset_id, sense_id, language, text, source FROM examples WHERE sense_id = ?`, senseID)
	if err != nil {
		return nil, fmt.Errorf("examples for sense %s: %w", senseID, err)
	}
	defer rows.Close()
	return scanExamples(rows)
}

func scanExamples(rows *sql.Rows) ([]domain.Example, error) {
	var out []domain.Example
	for rows.Next() {
		var e domain.Example
		if err := rows.Scan(&e.ID, &e.Synset, &e.Sense, &e.Language, &e.Text, &e.Source); err != nil {
			return nil, fmt.Errorf("scan example: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// RelationsFrom returns every relation whose source is synsetID.
func (r *Repo) RelationsFrom(ctx context.Context, synsetID string) ([]domain.Relation, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := q.QueryContext(ctx,
		`SELECT id, source_id, target_id, type, source_lexicon FROM relations WHERE source_id = ?`, synsetID)
	if err != nil {
		return nil, fmt.Errorf("relations from %s: %w", synsetID, err)
	}
	defer rows.Close()
	return scanRelations(rows)
}

// RelationsFromByType returns every relation whose source is synsetID and
// whose type is one of types. An empty types matches any type.
func (r *Repo) RelationsFromByType(ctx context.Context, synsetID string, types []domain.RelationType) ([]domain.Relation, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := `SELECT id, source_id, target_id, type, source_lexicon FROM relations WHERE source_id = ?`
	args := []any{synsetID}
	if len(types) > 0 {
		query += ` AND type IN (` + placeholders(len(types)) + `)`
		for _, t := range types {
			args = append(args, string(t))
		}
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("relations from %s: %w", synsetID, err)
	}
	defer rows.Close()
	return scanRelations(rows)
}

// RelationsTo returns every relation whose target is synsetID.
func (r *Repo) RelationsTo(ctx context.Context, synsetID string) ([]domain.Relation, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := q.QueryContext(ctx,
		`SELECT id, source_id, target_id, type, source_lexicon FROM relations WHERE target_id = ?`, synsetID)
	if err != nil {
		return nil, fmt.Errorf("relations to %s: %w", synsetID, err)
	}
	defer rows.Close()
	return scanRelations(rows)
}

func scanRelations(rows *sql.Rows) ([]domain.Relation, error) {
	var out []domain.Relation
	for rows.Next() {
		var rel domain.Relation
		if err := rows.Scan(&rel.ID, &rel.Source, &rel.Target, &rel.Type, &rel.SourceLexicon); err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		out = append(out, rel)
	}
	return out, rows.Err()
}

// InsertSynsets bulk-inserts synsets, chunked to the repo's MAX_VARS budget.
func (r *Repo) InsertSynsets(ctx context.Context, synsets []domain.Synset) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	return sqlite.BatchInsert(ctx, q, "synsets",
		[]string{"id", "ili", "part_of_speech", "language", "lexicon_id"},
		synsets,
		func(s domain.Synset) []any { return []any{s.ID, s.ILI, string(s.PartOfSpeech), s.Language, s.Lexicon} },
		r.maxVars,
	)
}

// InsertDefinitions bulk-inserts definitions, chunked to the repo's MAX_VARS budget.
func (r *Repo) InsertDefinitions(ctx context.Context, defs []domain.Definition) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	return sqlite.BatchInsert(ctx, q, "definitions",
		[]string{"id", "synset_id", "language", "text", "source"},
		defs,
		func(d domain.Definition) []any { return []any{d.ID, d.Synset, d.Language, d.Text, d.Source} },
		r.maxVars,
	)
}

// InsertExamples bulk-inserts examples, chunked to the repo's MAX_VARS budget.
func (r *Repo) InsertExamples(ctx context.Context, exs []domain.Example) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	return sqlite.BatchInsert(ctx, q, "examples",
		[]string{"id", "synset_id", "sense_id", "language", "text", "source"},
		exs,
		func(e domain.Example) []any { return []any{e.ID, e.Synset, e.Sense, e.Language, e.Text, e.Source} },
		r.maxVars,
	)
}

// InsertRelations bulk-inserts relations, chunked to the repo's MAX_VARS budget.
func (r *Repo) InsertRelations(ctx context.Context, rels []domain.Relation) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	return sqlite.BatchInsert(ctx, q, "relations",
		[]string{"id", "source_id", "target_id", "type", "source_lexicon"},
		rels,
		func(rel domain.Relation) []any { return []any{rel.ID, rel.Source, rel.Target, rel.Type, rel.SourceLexicon} },
		r.maxVars,
	)
}

// DeleteExamplesByLexicon removes every example owned by a synset or sense
// of lexiconID. Examples carry no foreign key (their owner is one of two
// tables), so an update-in-place ingest must clear them explicitly before
// the lexicon's cascading delete removes the synsets/senses they reference.
func (r *Repo) DeleteExamplesByLexicon(ctx context.Context, lexiconID string) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	_, err := q.ExecContext(ctx, `
		DELETE FROM examples WHERE
			synset_id IN (SELECT id FROM synsets WHERE lexicon_id = ?)
			OR sense_id IN (SELECT s.id FROM senses s JOIN words w ON s.word_id = w.id WHERE w.lexicon_id = ?)`,
		lexiconID, lexiconID)
	if err != nil {
		return sqlite.MapError(err, "examples", lexiconID)
	}
	return nil
}

// DeleteRelationsByLexicon removes every relation whose source_lexicon is
// lexiconID, for the same reason as DeleteExamplesByLexicon: relations carry
// no foreign key to either synsets or senses.
func (r *Repo) DeleteRelationsByLexicon(ctx context.Context, lexiconID string) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	_, err := q.ExecContext(ctx, `DELETE FROM relations WHERE source_lexicon = ?`, lexiconID)
	if err != nil {
		return sqlite.MapError(err, "relations", lexiconID)
	}
	return nil
}

// Roots returns the ids of every synset in lexiconIDs with no outbound
// hypernym relation, optionally filtered by part of speech. An empty pos
// matches any.
func (r *Repo) Roots(ctx context.Context, lexiconIDs []string, pos domain.PartOfSpeech) ([]string, error) {
	return r.hypernymBoundary(ctx, lexiconIDs, pos, "source_id")
}

// Leaves returns the ids of every synset in lexiconIDs that no other synset
// names as a hypernym target, optionally filtered by part of speech. An
// empty pos matches any.
func (r *Repo) Leaves(ctx context.Context, lexiconIDs []string, pos domain.PartOfSpeech) ([]string, error) {
	return r.hypernymBoundary(ctx, lexiconIDs, pos, "target_id")
}

func (r *Repo) hypernymBoundary(ctx context.Context, lexiconIDs []string, pos domain.PartOfSpeech, relCol string) ([]string, error) {
	if len(lexiconIDs) == 0 {
		return nil, nil
	}
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := `SELECT id FROM synsets WHERE lexicon_id IN (` + placeholders(len(lexiconIDs)) + `)
		AND id NOT IN (SELECT ` + relCol + ` FROM relations WHERE type = ?)`
	args := append(toAnySlice(lexiconIDs), string(domain.RelHypernym))

	if pos != "" {
		query += ` AND part_of_speech = ?`
		args = append(args, string(pos))
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("hypernym boundary (%s): %w", relCol, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan synset id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
