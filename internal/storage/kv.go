// Package storage provides the data persistence layer for the ledger.
//
// The ledger persists four independent JSON documents under fixed keys; the
// adapter is a plain key-value store and knows nothing about their contents.
package storage

import "context"

// Persisted keys. Each holds a single JSON-encoded document.
const (
	KeySettings     = "settings"
	KeyCategories   = "categories"
	KeyTransactions = "transactions"
	KeyRecurring    = "recurring"
)

// Keys lists every persisted key, in the order collections are loaded.
var Keys = []string{KeySettings, KeyCategories, KeyTransactions, KeyRecurring}

// KV is the durable local store the ledger persists into. Implementations
// must make Set atomic per key; there is at most one writer per database.
type KV interface {
	// Get returns the stored value for key. The second return is false when
	// the key has never been written.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set durably stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying store.
	Close() error
}
