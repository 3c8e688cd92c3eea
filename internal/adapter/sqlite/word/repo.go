// Package word persists Word, Form, and Sense records — the lexical side of
// a lexicon, as distinct from the synset/concept side owned by package
// synset.
package word

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// Repo provides Word/Form/Sense persistence backed by the embedded store.
type Repo struct {
	db      *sql.DB
	txm     *sqlite.TxManager
	maxVars int
}

// New creates a new word repository. maxVars bounds the number of bound
// parameters per batch-insert statement (the store's MAX_VARS budget).
func New(db *sql.DB, txm *sqlite.TxManager, maxVars int) *Repo {
	if maxVars <= 0 {
		maxVars = 900
	}
	return &Repo{db: db, txm: txm, maxVars: maxVars}
}

// GetByID returns the word with id, including its forms, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Word, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	row := q.QueryRowContext(ctx,
		`SELECT id, lemma, part_of_speech, language, lexicon_id FROM words WHERE id = ?`, id)

	var w domain.Word
	if err := row.Scan(&w.ID, &w.Lemma, &w.PartOfSpeech, &w.Language, &w.Lexicon); err != nil {
		return nil, sqlite.MapError(err, "word", id)
	}

	forms, err := r.formsForWords(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	w.Forms = forms[id]

	return &w, nil
}

// FindByLemma returns every word in lexiconIDs whose lemma exactly matches
// lemma (optionally filtered by part of speech). An empty pos matches any.
func (r *Repo) FindByLemma(ctx context.Context, lemma string, pos domain.PartOfSpeech, lexiconIDs []string) ([]domain.Word, error) {
	if len(lexiconIDs) == 0 {
		return nil, nil
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := `SELECT id, lemma, part_of_speech, language, lexicon_id FROM words WHERE lemma = ?`
	args := []any{lemma}

	if pos != "" {
		query += ` AND part_of_speech = ?`
		args = append(args, string(pos))
	}

	query += ` AND lexicon_id IN (` + placeholders(len(lexiconIDs)) + `)`
	for _, id := range lexiconIDs {
		args = append(args, id)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find words by lemma %q: %w", lemma, err)
	}
	defer rows.Close()

	var words []domain.Word
	ids := make([]string, 0)
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.ID, &w.Lemma, &w.PartOfSpeech, &w.Language, &w.Lexicon); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
		ids = append(ids, w.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	forms, err := r.formsForWords(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range words {
		words[i].Forms = forms[words[i].ID]
	}

	return words, nil
}

// FindByForm returns every word in lexiconIDs whose lemma or any owned
// Form.writtenForm exactly matches form (optionally filtered by part of
// speech). Matches are deduplicated by word id.
func (r *Repo) FindByForm(ctx context.Context, form string, pos domain.PartOfSpeech, lexiconIDs []string) ([]domain.Word, error) {
	if len(lexiconIDs) == 0 {
		return nil, nil
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := `SELECT DISTINCT w.id, w.lemma, w.part_of_speech, w.language, w.lexicon_id
		FROM words w LEFT JOIN forms f ON f.word_id = w.id
		WHERE (w.lemma = ? OR f.written_form = ?)`
	args := []any{form, form}

	if pos != "" {
		query += ` AND w.part_of_speech = ?`
		args = append(args, string(pos))
	}

	query += ` AND w.lexicon_id IN (` + placeholders(len(lexiconIDs)) + `)`
	for _, id := range lexiconIDs {
		args = append(args, id)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find words by form %q: %w", form, err)
	}
	defer rows.Close()

	var words []domain.Word
	ids := make([]string, 0)
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.ID, &w.Lemma, &w.PartOfSpeech, &w.Language, &w.Lexicon); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
		ids = append(ids, w.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	forms, err := r.formsForWords(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range words {
		words[i].Forms = forms[words[i].ID]
	}

	return words, nil
}

// AllWords returns every word in lexiconIDs with its forms populated, used
// by Morphy's exception-table initialization to seed allLemmas/exceptions
// per part of speech.
func (r *Repo) AllWords(ctx context.Context, lexiconIDs []string) ([]domain.Word, error) {
	if len(lexiconIDs) == 0 {
		return nil, nil
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := `SELECT id, lemma, part_of_speech, language, lexicon_id FROM words
		WHERE lexicon_id IN (` + placeholders(len(lexiconIDs)) + `)`
	args := make([]any, len(lexiconIDs))
	for i, id := range lexiconIDs {
		args[i] = id
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("all words: %w", err)
	}
	defer rows.Close()

	var words []domain.Word
	ids := make([]string, 0)
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.ID, &w.Lemma, &w.PartOfSpeech, &w.Language, &w.Lexicon); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
		ids = append(ids, w.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	forms, err := r.formsForWords(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range words {
		words[i].Forms = forms[words[i].ID]
	}

	return words, nil
}

// AllLemmas streams every distinct (lemma, part_of_speech) pair in
// lexiconIDs to fn, visiting the whole scope once. Morphy does not use it:
// its exception tables are built from every form via AllWords.
func (r *Repo) AllLemmas(ctx context.Context, lexiconIDs []string, fn func(lemma string, pos domain.PartOfSpeech) error) error {
	if len(lexiconIDs) == 0 {
		return nil
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := `SELECT DISTINCT lemma, part_of_speech FROM words WHERE lexicon_id IN (` + placeholders(len(lexiconIDs)) + `)`
	args := make([]any, len(lexiconIDs))
	for i, id := range lexiconIDs {
		args[i] = id
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("scan all lemmas: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lemma string
		var pos domain.PartOfSpeech
		if err := rows.Scan(&lemma, &pos); err != nil {
			return fmt.Errorf("scan lemma: %w", err)
		}
		if err := fn(lemma, pos); err != nil {
			return err
		}
	}

	return rows.Err()
}

func (r *Repo) formsForWords(ctx context.Context, wordIDs []string) (map[string][]domain.Form, error) {
	out := make(map[string][]domain.Form, len(wordIDs))
	if len(wordIDs) == 0 {
		return out, nil
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := `SELECT id, word_id, written_form, script, tag FROM forms WHERE word_id IN (` + placeholders(len(wordIDs)) + `)`
	args := make([]any, len(wordIDs))
	for i, id := range wordIDs {
		args[i] = id
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load forms: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f domain.Form
		if err := rows.Scan(&f.ID, &f.Word, &f.WrittenForm, &f.Script, &f.Tag); err != nil {
			return nil, fmt.Errorf("scan form: %w", err)
		}
		out[f.Word] = append(out[f.Word], f)
	}

	return out, rows.Err()
}

// InsertWords bulk-inserts words, chunked to the repo's MAX_VARS budget.
func (r *Repo) InsertWords(ctx context.Context, words []domain.Word) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	return sqlite.BatchInsert(ctx, q, "words",
		[]string{"id", "lemma", "part_of_speech", "language", "lexicon_id"},
		words,
		func(w domain.Word) []any { return []any{w.ID, w.Lemma, string(w.PartOfSpeech), w.Language, w.Lexicon} },
		r.maxVars,
	)
}

// InsertForms bulk-inserts forms, chunked to the repo's MAX_VARS budget.
func (r *Repo) InsertForms(ctx context.Context, forms []domain.Form) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	return sqlite.BatchInsert(ctx, q, "forms",
		[]string{"id", "word_id", "written_form", "script", "tag"},
		forms,
		func(f domain.Form) []any { return []any{f.ID, f.Word, f.WrittenForm, f.Script, f.Tag} },
		r.maxVars,
	)
}

// InsertSenses bulk-inserts senses, chunked to the repo's MAX_VARS budget.
func (r *Repo) InsertSenses(ctx context.Context, senses []domain.Sense) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	return sqlite.BatchInsert(ctx, q, "senses",
		[]string{"id", "word_id", "synset_id", "source", "sense_key", "adj_position", "subcategory", "domain", "register"},
		senses,
		func(s domain.Sense) []any {
			return []any{s.ID, s.Word, s.Synset, s.Source, s.SenseKey, s.AdjPosition, s.Subcategory, s.Domain, s.Register}
		},
		r.maxVars,
	)
}

// GetSenseByID returns the single sense with id, or domain.ErrNotFound.
func (r *Repo) GetSenseByID(ctx context.Context, id string) (*domain.Sense, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	row := q.QueryRowContext(ctx,
		`SELECT id, word_id, synset_id, source, sense_key, adj_position, subcategory, domain, register
		 FROM senses WHERE id = ?`, id)

	var s domain.Sense
	err := row.Scan(&s.ID, &s.Word, &s.Synset, &s.Source, &s.SenseKey, &s.AdjPosition, &s.Subcategory, &s.Domain, &s.Register)
	if err != nil {
		return nil, sqlite.MapError(err, "sense", id)
	}
	return &s, nil
}

// SensesForWord returns every sense belonging to wordID.
func (r *Repo) SensesForWord(ctx context.Context, wordID string) ([]domain.Sense, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := q.QueryContext(ctx,
		`SELECT id, word_id, synset_id, source, sense_key, adj_position, subcategory, domain, register
		 FROM senses WHERE word_id = ?`, wordID)
	if err != nil {
		return nil, fmt.Errorf("senses for word %s: %w", wordID, err)
	}
	defer rows.Close()

	var out []domain.Sense
	for rows.Next() {
		var s domain.Sense
		if err := rows.Scan(&s.ID, &s.Word, &s.Synset, &s.Source, &s.SenseKey, &s.AdjPosition, &s.Subcategory, &s.Domain, &s.Register); err != nil {
			return nil, fmt.Errorf("scan sense: %w", err)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

// SensesForSynset returns every sense pointing at synsetID, i.e. the
// synset's membership.
func (r *Repo) SensesForSynset(ctx context.Context, synsetID string) ([]domain.Sense, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := q.QueryContext(ctx,
		`SELECT id, word_id, synset_id, source, sense_key, adj_position, subcategory, domain, register
		 FROM senses WHERE synset_id = ?`, synsetID)
	if err != nil {
		return nil, fmt.Errorf("senses for synset %s: %w", synsetID, err)
	}
	defer rows.Close()

	var out []domain.Sense
	for rows.Next() {
		var s domain.Sense
		if err := rows.Scan(&s.ID, &s.Word, &s.Synset, &s.Source, &s.SenseKey, &s.AdjPosition, &s.Subcategory, &s.Domain, &s.Register); err != nil {
			return nil, fmt.Errorf("scan sense: %w", err)
		}
		out = append(out, s)
	}

	return out, rows.Err()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	s := make([]byte, 0, n*2-1)
	for i := 0; i < n; i++ {
		if i > 0 {
			s = append(s, ',')
		}
		s = append(s, '?')
	}
	return string(s)
}
