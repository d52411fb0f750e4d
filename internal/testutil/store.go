// Package testutil provides test helpers for setting up ledger stores
// against real in-memory SQLite databases with proper isolation and cleanup.
package testutil

import (
	"context"
	"testing"

	"github.com/joshsymonds/bucketwise/internal/storage"
	"github.com/joshsymonds/bucketwise/internal/store"
)

// SetupTestKV creates a migrated in-memory SQLite store and registers its
// cleanup with t.
func SetupTestKV(t *testing.T) *storage.SQLiteKV {
	t.Helper()

	kv, err := storage.NewSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	if err := kv.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = kv.Close()
	})
	return kv
}

// SetupTestStore opens a domain store over a fresh in-memory database. The
// store starts with default settings and the seeded starter categories.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()

	kv := SetupTestKV(t)
	s, err := store.Open(context.Background(), kv)
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	return s
}
