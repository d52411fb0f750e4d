package report

import (
	"fmt"
	"testing"

	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feed builds n sorted transactions spread over successive days.
func feed(n int) []model.Transaction {
	txns := make([]model.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txns = append(txns, model.Transaction{
			ID:          model.NewID(),
			Type:        model.TypeExpense,
			AmountCents: int64(100 + i),
			DateISO:     fmt.Sprintf("2024-06-%02dT12:00:00Z", (i%28)+1),
		})
	}
	model.SortTransactions(txns)
	return txns
}

func TestRecentTransactionsPaginationReconstructsList(t *testing.T) {
	txns := feed(25)

	var collected []model.Transaction
	var cursor *Cursor
	for {
		page := RecentTransactions(txns, 10, cursor)
		collected = append(collected, page.Transactions...)
		if !page.HasMore {
			break
		}
		require.NotNil(t, page.NextCursor)
		cursor = page.NextCursor
	}

	// Concatenated pages are exactly the source list: no dupes, no gaps.
	require.Equal(t, txns, collected)
}

func TestRecentTransactionsPartialLastPage(t *testing.T) {
	txns := feed(5)

	page := RecentTransactions(txns, 10, nil)
	assert.Len(t, page.Transactions, 5)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor, "a partial page is always the last one")
}

func TestRecentTransactionsExactBoundary(t *testing.T) {
	txns := feed(10)

	page := RecentTransactions(txns, 10, nil)
	assert.Len(t, page.Transactions, 10)
	assert.False(t, page.HasMore)
	require.NotNil(t, page.NextCursor, "a full page offers a cursor even at the end")

	next := RecentTransactions(txns, 10, page.NextCursor)
	assert.Empty(t, next.Transactions)
	assert.False(t, next.HasMore)
}

func TestRecentTransactionsStaleCursorRestarts(t *testing.T) {
	txns := feed(6)

	// A cursor for a record that no longer exists (e.g. deleted).
	stale := &Cursor{DateISO: "2024-06-03T12:00:00Z", ID: "gone"}
	page := RecentTransactions(txns, 3, stale)

	require.Len(t, page.Transactions, 3)
	assert.Equal(t, txns[0], page.Transactions[0], "pagination restarts from the top")
}

func TestActivityGroupsGroupsByDay(t *testing.T) {
	txns := []model.Transaction{
		{ID: "c", Type: model.TypeExpense, AmountCents: 300, DateISO: "2024-06-02T18:00:00Z"},
		{ID: "b", Type: model.TypeExpense, AmountCents: 200, DateISO: "2024-06-02T09:00:00Z"},
		{ID: "a", Type: model.TypeExpense, AmountCents: 100, DateISO: "2024-06-01T09:00:00Z"},
	}
	model.SortTransactions(txns)

	page := ActivityGroups(txns, 10, nil)
	require.Len(t, page.Groups, 2)

	assert.Equal(t, "2024-06-02", page.Groups[0].DateKey)
	assert.Equal(t, "Sunday, June 2 2024", page.Groups[0].Label)
	assert.Len(t, page.Groups[0].Transactions, 2)

	assert.Equal(t, "2024-06-01", page.Groups[1].DateKey)
	assert.Len(t, page.Groups[1].Transactions, 1)
}

func TestActivityGroupsForwardsPagination(t *testing.T) {
	txns := feed(30)

	page := ActivityGroups(txns, 10, nil)
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)

	total := 0
	for _, g := range page.Groups {
		total += len(g.Transactions)
	}
	assert.Equal(t, 10, total)
}

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{DateISO: "2024-06-01T09:00:00Z", ID: "abc-123"}

	parsed, ok := ParseCursor(c.String())
	require.True(t, ok)
	assert.Equal(t, c, parsed)
}

func TestParseCursorMalformed(t *testing.T) {
	for _, s := range []string{"", "no-separator", "|", "date|", "|id"} {
		_, ok := ParseCursor(s)
		assert.False(t, ok, "cursor %q should be rejected", s)
	}
}
