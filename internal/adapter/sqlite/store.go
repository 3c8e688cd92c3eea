package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/heartmarshall/wordnet-engine/internal/config"
	"github.com/heartmarshall/wordnet-engine/internal/domain"
)

// Store owns the single-file embedded database and enforces that at most one
// write-holding caller (an ingest run) is active at a time. Readers are not
// restricted by this lock; it guards against two concurrent ingestions
// racing on the same data directory.
type Store struct {
	DB  *sql.DB
	Txm *TxManager
	cfg config.StoreConfig

	writeLock *semaphore.Weighted
}

// Open opens the embedded store described by cfg, running migrations
// if needed.
func Open(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	db, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Store{
		DB:        db,
		Txm:       NewTxManager(db),
		cfg:       cfg,
		writeLock: semaphore.NewWeighted(1),
	}, nil
}

// open is a thin indirection over OpenDB: it opens the database file and
// runs migrations, leaving Store construction to Open.
func open(ctx context.Context, cfg config.StoreConfig) (*sql.DB, error) {
	return OpenDB(ctx, cfg)
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}

// AcquireWrite reserves exclusive write access to the store for the duration
// of fn. A second caller attempting to acquire while one is already in
// progress gets domain.ErrBusy immediately rather than blocking.
func (s *Store) AcquireWrite(ctx context.Context, fn func(ctx context.Context) error) error {
	if !s.writeLock.TryAcquire(1) {
		return fmt.Errorf("acquire store write lock: %w", domain.ErrBusy)
	}
	defer s.writeLock.Release(1)

	return fn(ctx)
}
