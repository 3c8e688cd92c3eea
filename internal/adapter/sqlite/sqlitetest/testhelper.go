// Package sqlitetest provides the store fixture used by every per-entity
// repository test. Unlike the PostgreSQL teacher's testcontainers-based
// fixture, the embedded store needs no external process: each test gets its
// own throwaway data directory.
package sqlitetest

import (
	"context"
	"testing"
	"time"

	"github.com/heartmarshall/wordnet-engine/internal/adapter/sqlite"
	"github.com/heartmarshall/wordnet-engine/internal/config"
)

// NewStore creates a fresh embedded store rooted at a t.TempDir(), migrated
// and ready to use, closed automatically via t.Cleanup.
func NewStore(t *testing.T) *sqlite.Store {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := sqlite.Open(ctx, config.StoreConfig{
		DataDir:       t.TempDir(),
		BusyTimeoutMS: 5000,
	})
	if err != nil {
		t.Fatalf("sqlitetest: open store: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}
