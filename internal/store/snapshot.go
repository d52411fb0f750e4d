package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/joshsymonds/bucketwise/internal/common"
	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/joshsymonds/bucketwise/internal/normalize"
)

// Export returns a full, self-contained snapshot of the ledger. The same
// shape is accepted back by Import.
func (s *Store) Export() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.Snapshot{
		SchemaVersion: model.CurrentSchemaVersion,
		Settings:      s.state.Settings,
		Categories:    model.CloneCategories(s.state.Categories),
		Recurring:     model.CloneRecurring(s.state.Recurring),
		Transactions:  model.CloneTransactions(s.state.Transactions),
	}
}

// Import reconciles an exported snapshot against current state. The payload
// is untrusted: its schema_version must equal the running instance's or the
// import fails in full with a SchemaError before anything is touched, and
// its collections pass through the normalizer independently of current
// state.
//
// StrategyReplace (the default for an empty strategy) swaps all four
// collections for the normalized imported ones. StrategyMerge replaces
// settings, keeps every current record, and adds imported records whose ids
// are not already present — on id collision the current record wins.
func (s *Store) Import(ctx context.Context, payload []byte, strategy model.ImportStrategy) error {
	switch strategy {
	case "":
		strategy = model.StrategyReplace
	case model.StrategyReplace, model.StrategyMerge:
	default:
		return fmt.Errorf("%w: %q", common.ErrInvalidStrategy, strategy)
	}

	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return fmt.Errorf("%w: import payload is not valid JSON: %v", common.ErrCorruptData, err)
	}

	version := -1
	if n, ok := raw["schema_version"].(float64); ok {
		version = int(n)
	}
	if version != model.CurrentSchemaVersion {
		got := version
		if got < 0 {
			got = 0
		}
		return &common.SchemaError{Got: got, Want: model.CurrentSchemaVersion}
	}

	settings := normalize.Settings(raw["settings"])
	categories := normalize.Categories(raw["categories"])
	transactions := normalize.Transactions(raw["transactions"])
	recurring := normalize.Recurring(raw["recurring"])

	s.mu.Lock()

	next := s.state
	// A successful import rewrites every key, clearing any corruption
	// detected at load time.
	next.CorruptKeys = nil
	next.Settings = settings
	switch strategy {
	case model.StrategyReplace:
		next.Categories = categories
		next.Transactions = transactions
		next.Recurring = recurring
	case model.StrategyMerge:
		next.Categories = mergeCategories(s.state.Categories, categories)
		next.Transactions = mergeTransactions(s.state.Transactions, transactions)
		next.Recurring = mergeRecurring(s.state.Recurring, recurring)
	}
	model.SortTransactions(next.Transactions)

	if err := s.persistAll(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	state := s.state.Clone()
	s.mu.Unlock()

	slog.Info("imported snapshot",
		"strategy", strategy,
		"categories", len(state.Categories),
		"transactions", len(state.Transactions),
		"recurring", len(state.Recurring))
	s.notify(state, model.Change{Type: model.ChangeImport, Strategy: strategy})
	return nil
}

// mergeCategories keeps every current category and appends imported ones
// with unseen ids.
func mergeCategories(current, imported []model.Category) []model.Category {
	out := model.CloneCategories(current)
	seen := make(map[string]bool, len(current))
	for _, cat := range current {
		seen[cat.ID] = true
	}
	for _, cat := range imported {
		if !seen[cat.ID] {
			seen[cat.ID] = true
			out = append(out, cat)
		}
	}
	return out
}

// mergeTransactions deduplicates by id with current entries listed first, so
// the first occurrence — the existing record — wins on collision.
func mergeTransactions(current, imported []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(current)+len(imported))
	seen := make(map[string]bool, len(current)+len(imported))
	for _, txn := range append(model.CloneTransactions(current), imported...) {
		if !seen[txn.ID] {
			seen[txn.ID] = true
			out = append(out, txn)
		}
	}
	return out
}

func mergeRecurring(current, imported []model.RecurringTemplate) []model.RecurringTemplate {
	out := make([]model.RecurringTemplate, 0, len(current)+len(imported))
	seen := make(map[string]bool, len(current)+len(imported))
	for _, tpl := range append(model.CloneRecurring(current), imported...) {
		if !seen[tpl.ID] {
			seen[tpl.ID] = true
			out = append(out, tpl)
		}
	}
	return out
}
