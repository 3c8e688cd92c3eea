// Package ili persists records from the Collaborative Interlingual Index,
// loaded once from the CILI TSV distribution and shared across lexicons.
package ili

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// Repo provides ILI persistence backed by the embedded store.
type Repo struct {
	db      *sql.DB
	maxVars int
}

// New creates a new ILI repository.
func New(db *sql.DB, maxVars int) *Repo {
	if maxVars <= 0 {
		maxVars = 900
	}
	return &Repo{db: db, maxVars: maxVars}
}

// GetByID returns the ILI record with id, or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.ILI, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	row := q.QueryRowContext(ctx,
		`SELECT id, definition, status, superseded_by, note, meta FROM ilis WHERE id = ?`, id)

	var rec domain.ILI
	if err := row.Scan(&rec.ID, &rec.Definition, &rec.Status, &rec.SupersededBy, &rec.Note, &rec.Meta); err != nil {
		return nil, sqlite.MapError(err, "ili", id)
	}

	return &rec, nil
}

// List returns every ILI record, optionally filtered by status. An empty
// status matches any.
func (r *Repo) List(ctx context.Context, status domain.ILIStatus) ([]domain.ILI, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query := `SELECT id, definition, status, superseded_by, note, meta FROM ilis`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY id`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ilis: %w", err)
	}
	defer rows.Close()

	var out []domain.ILI
	for rows.Next() {
		var rec domain.ILI
		if err := rows.Scan(&rec.ID, &rec.Definition, &rec.Status, &rec.SupersededBy, &rec.Note, &rec.Meta); err != nil {
			return nil, fmt.Errorf("scan ili: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Count returns the total number of ILI records loaded.
func (r *Repo) Count(ctx context.Context) (int, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var n int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(1) FROM ilis`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count ilis: %w", err)
	}

	return n, nil
}

// Insert bulk-inserts ILI records, chunked to the repo's MAX_VARS budget.
func (r *Repo) Insert(ctx context.Context, records []domain.ILI) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)
	return sqlite.BatchInsert(ctx, q, "ilis",
		[]string{"id", "definition", "status", "superseded_by", "note", "meta"},
		records,
		func(rec domain.ILI) []any {
			return []any{rec.ID, rec.Definition, string(rec.Status), rec.SupersededBy, rec.Note, rec.Meta}
		},
		r.maxVars,
	)
}
