package model

import "time"

// State is the full in-memory contents of the ledger. Subscribers receive a
// clone after every mutation; mutating a clone has no effect on the store.
type State struct {
	Settings     Settings
	Categories   []Category
	Transactions []Transaction
	Recurring    []RecurringTemplate

	// CorruptKeys lists persisted keys that failed to deserialize at load
	// time. The affected collections fall back to defaults; the collaborator
	// decides whether to prompt for recovery.
	CorruptKeys []string

	// ViewYear and ViewMonth track the month the collaborator is looking at.
	// View selection is not persisted.
	ViewYear  int
	ViewMonth time.Month
}

// Clone returns a deep-enough copy of the state for handing to subscribers.
func (s State) Clone() State {
	out := s
	out.Categories = CloneCategories(s.Categories)
	out.Transactions = CloneTransactions(s.Transactions)
	out.Recurring = CloneRecurring(s.Recurring)
	if s.CorruptKeys != nil {
		out.CorruptKeys = append([]string(nil), s.CorruptKeys...)
	}
	return out
}

// Snapshot is the self-contained export payload: the schema version plus all
// four collections. The same shape is accepted back by import.
type Snapshot struct {
	SchemaVersion int                 `json:"schema_version"`
	Settings      Settings            `json:"settings"`
	Categories    []Category          `json:"categories"`
	Recurring     []RecurringTemplate `json:"recurring"`
	Transactions  []Transaction       `json:"transactions"`
}
