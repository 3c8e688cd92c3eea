package sqlite

import (
	"context"
	"fmt"
	"strings"
)

// BatchInsert inserts rows into table in as few statements as the MaxVars
// budget allows. Each row is rendered through toArgs into a value tuple;
// INSERT OR REPLACE lets a re-ingest overwrite a row sharing the same
// primary key without a separate UPDATE path.
func BatchInsert[T any](ctx context.Context, q Querier, table string, columns []string, rows []T, toArgs func(T) []any, maxVars int) error {
	if len(rows) == 0 {
		return nil
	}

	rowsPerStmt := maxVars / len(columns)
	if rowsPerStmt < 1 {
		rowsPerStmt = 1
	}

	placeholder := "(" + strings.Repeat("?,", len(columns)-1) + "?)"
	colList := strings.Join(columns, ", ")

	for start := 0; start < len(rows); start += rowsPerStmt {
		end := min(start+rowsPerStmt, len(rows))
		chunk := rows[start:end]

		var sb strings.Builder
		fmt.Fprintf(&sb, "INSERT OR REPLACE INTO %s (%s) VALUES ", table, colList)

		args := make([]any, 0, len(chunk)*len(columns))
		for i, row := range chunk {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(placeholder)
			args = append(args, toArgs(row)...)
		}

		if _, err := q.ExecContext(ctx, sb.String(), args...); err != nil {
			return MapError(err, table, "batch")
		}
	}

	return nil
}

// ProgressFunc reports ingestion progress as a fraction in [0, 1].
type ProgressFunc func(fraction float64)

// ThrottledProgress wraps fn so it only fires when the reported fraction has
// advanced by at least step since the last call (plus always at 0 and 1),
// matching the "progress every ~5%" contract ingestion callers rely on.
func ThrottledProgress(step float64, fn ProgressFunc) ProgressFunc {
	if fn == nil {
		return func(float64) {}
	}
	last := -1.0
	return func(fraction float64) {
		if fraction <= 0 || fraction >= 1 || fraction-last >= step {
			last = fraction
			fn(fraction)
		}
	}
}

// ChunkTx runs fn once per chunk of size chunkSize from items, each inside
// its own transaction via txm, reporting throttled progress after each chunk.
// This is the "transactionChunkSize" outer-transaction grouping: large
// ingests commit in bounded batches instead of one giant transaction.
func ChunkTx[T any](ctx context.Context, txm *TxManager, items []T, chunkSize int, progress ProgressFunc, fn func(ctx context.Context, chunk []T) error) error {
	if len(items) == 0 {
		return nil
	}

	report := ThrottledProgress(0.05, progress)
	total := len(items)

	for start := 0; start < total; start += chunkSize {
		end := min(start+chunkSize, total)
		chunk := items[start:end]

		if err := txm.RunInTx(ctx, func(ctx context.Context) error {
			return fn(ctx, chunk)
		}); err != nil {
			return err
		}

		report(float64(end) / float64(total))
	}

	return nil
}
