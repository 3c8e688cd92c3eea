// Package sqlite adapts the embedded-store contract onto a single-file
// modernc.org/sqlite database: connection setup, transaction management,
// error translation, and the chunked batch-insert helper shared by every
// per-entity repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/heartmarshall/wordnet-engine/internal/config"
)

// DataFileName is the single file modernc.org/sqlite writes per data directory.
const DataFileName = "wordnet.db"

// OpenDB opens (creating if absent) the single-file store at cfg.DataDir,
// applies the pragmas the store relies on, and runs pending migrations.
func OpenDB(ctx context.Context, cfg config.StoreConfig) (*sql.DB, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", cfg.DataDir, err)
	}

	path := filepath.Join(cfg.DataDir, DataFileName)

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", path, cfg.BusyTimeoutMS)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	// The pure-Go driver serializes every connection through a single mutex
	// per file anyway; capping the pool avoids SQLITE_BUSY storms under
	// concurrent readers while a writer holds the file lock.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite store: %w", err)
	}

	return db, nil
}
