package store

import (
	"time"

	"github.com/joshsymonds/bucketwise/internal/report"
)

// The query methods hand the collaborator derived views without exposing the
// store's internals; each takes a consistent snapshot and delegates to the
// report package.

// MonthlyTotals returns the month's income/expense/bucket breakdown under
// the current rule.
func (s *Store) MonthlyTotals(year int, month time.Month) report.MonthSummary {
	state := s.State()
	return report.MonthlyTotals(state.Transactions, state.Settings.Rule, year, month)
}

// SpendingByCategory returns the month's per-category spend ranking.
func (s *Store) SpendingByCategory(year int, month time.Month) []report.CategorySpend {
	state := s.State()
	return report.SpendingByCategory(state.Transactions, state.Categories, year, month)
}

// RecentTransactions pages through the global transaction history. The
// cursor is the opaque token from a previous page's NextCursor; pass "" to
// start from the top.
func (s *Store) RecentTransactions(limit int, cursor string) report.Page {
	state := s.State()
	var c *report.Cursor
	if parsed, ok := report.ParseCursor(cursor); ok {
		c = &parsed
	}
	return report.RecentTransactions(state.Transactions, limit, c)
}

// ActivityGroups pages through the global history grouped into day buckets.
func (s *Store) ActivityGroups(pageSize int, cursor string) report.ActivityPage {
	state := s.State()
	var c *report.Cursor
	if parsed, ok := report.ParseCursor(cursor); ok {
		c = &parsed
	}
	return report.ActivityGroups(state.Transactions, pageSize, c)
}

// CategoryStats returns every category with its same-month expense count.
func (s *Store) CategoryStats(year int, month time.Month) []report.CategoryUsage {
	state := s.State()
	return report.CategoryStats(state.Transactions, state.Categories, year, month)
}
