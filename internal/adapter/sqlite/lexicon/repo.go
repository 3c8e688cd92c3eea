// Package lexicon persists Lexicon records: the top-level WordNet
// distributions the store tracks.
package lexicon

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// Repo provides Lexicon persistence backed by the embedded store.
type Repo struct {
	db  *sql.DB
	txm *sqlite.TxManager
}

// New creates a new lexicon repository.
func New(db *sql.DB, txm *sqlite.TxManager) *Repo {
	return &Repo{db: db, txm: txm}
}

// GetByID returns the lexicon with id, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Lexicon, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	row := q.QueryRowContext(ctx,
		`SELECT id, label, language, version, email, license, url, citation, logo
		 FROM lexicons WHERE id = ?`, id)

	var lx domain.Lexicon
	err := row.Scan(&lx.ID, &lx.Label, &lx.Language, &lx.Version, &lx.Email, &lx.License, &lx.URL, &lx.Citation, &lx.Logo)
	if err != nil {
		return nil, sqlite.MapError(err, "lexicon", id)
	}

	return &lx, nil
}

// List returns all lexicons, ordered by id.
func (r *Repo) List(ctx context.Context) ([]domain.Lexicon, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	rows, err := q.QueryContext(ctx,
		`SELECT id, label, language, version, email, license, url, citation, logo
		 FROM lexicons ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list lexicons: %w", err)
	}
	defer rows.Close()

	var out []domain.Lexicon
	for rows.Next() {
		var lx domain.Lexicon
		if err := rows.Scan(&lx.ID, &lx.Label, &lx.Language, &lx.Version, &lx.Email, &lx.License, &lx.URL, &lx.Citation, &lx.Logo); err != nil {
			return nil, fmt.Errorf("scan lexicon: %w", err)
		}
		out = append(out, lx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lexicons: %w", err)
	}

	return out, nil
}

// Exists reports whether a lexicon with the given id and version is present.
// Ingestion uses this for its pre-check against double-loading the same
// distribution.
func (r *Repo) Exists(ctx context.Context, id, version string) (bool, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var count int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM lexicons WHERE id = ? AND version = ?`, id, version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check lexicon exists: %w", err)
	}

	return count > 0, nil
}

// Insert creates a new lexicon row. Returns domain.ErrLexiconExists if id is
// already taken.
func (r *Repo) Insert(ctx context.Context, lx domain.Lexicon) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	_, err := q.ExecContext(ctx,
		`INSERT INTO lexicons (id, label, language, version, email, license, url, citation, logo)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		lx.ID, lx.Label, lx.Language, lx.Version, lx.Email, lx.License, lx.URL, lx.Citation, lx.Logo,
	)
	if err != nil {
		return sqlite.MapError(err, "lexicon", lx.ID)
	}

	return nil
}

// Delete removes a lexicon and, via ON DELETE CASCADE, its words, synsets,
// forms, senses, and definitions. Examples and relations carry no foreign
// key and are not removed by this call. Used by update-in-place re-ingestion.
func (r *Repo) Delete(ctx context.Context, id string) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	res, err := q.ExecContext(ctx, `DELETE FROM lexicons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete lexicon %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lexicon %s: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete lexicon %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
