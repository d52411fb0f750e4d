package report

import (
	"github.com/joshsymonds/bucketwise/internal/model"
)

// DefaultPageSize is used when a caller asks for a page without a limit.
const DefaultPageSize = 20

// Page is one page of the globally sorted transaction list.
type Page struct {
	Transactions []model.Transaction
	// NextCursor resumes after the last record of this page. It is set only
	// when the page came back full; a partial page is always the last one.
	NextCursor *Cursor
	// HasMore reports whether records exist beyond this page.
	HasMore bool
}

// RecentTransactions pages through txns, which must already be in the
// ledger's sort order. A nil cursor starts from the top; a cursor that no
// longer matches any record (for example, the record was deleted) also
// restarts from the top rather than guessing a position.
func RecentTransactions(txns []model.Transaction, limit int, cursor *Cursor) Page {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	start := 0
	if cursor != nil {
		for i, txn := range txns {
			if txn.DateISO == cursor.DateISO && txn.ID == cursor.ID {
				start = i + 1
				break
			}
		}
	}

	end := start + limit
	if end > len(txns) {
		end = len(txns)
	}

	page := Page{
		Transactions: model.CloneTransactions(txns[start:end]),
		HasMore:      end < len(txns),
	}
	if len(page.Transactions) == limit {
		last := page.Transactions[len(page.Transactions)-1]
		page.NextCursor = &Cursor{DateISO: last.DateISO, ID: last.ID}
	}
	return page
}

// ActivityGroup is a run of consecutive same-day transactions in the feed.
type ActivityGroup struct {
	// DateKey is the UTC calendar date (2006-01-02) the group falls on, or
	// the raw date string when it cannot be parsed.
	DateKey string
	// Label is the human-readable day heading.
	Label        string
	Transactions []model.Transaction
}

// ActivityPage is one page of the activity feed, grouped into day buckets.
type ActivityPage struct {
	Groups     []ActivityGroup
	NextCursor *Cursor
	HasMore    bool
}

// ActivityGroups pages through the global transaction history and groups
// consecutive same-day entries into day buckets. Pagination is deliberately
// not month-filtered: "load more" walks into adjacent months without losing
// chronological continuity.
func ActivityGroups(txns []model.Transaction, pageSize int, cursor *Cursor) ActivityPage {
	page := RecentTransactions(txns, pageSize, cursor)

	out := ActivityPage{
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}
	for _, txn := range page.Transactions {
		key, label := dayKey(txn.DateISO)
		if n := len(out.Groups); n > 0 && out.Groups[n-1].DateKey == key {
			out.Groups[n-1].Transactions = append(out.Groups[n-1].Transactions, txn)
			continue
		}
		out.Groups = append(out.Groups, ActivityGroup{
			DateKey:      key,
			Label:        label,
			Transactions: []model.Transaction{txn},
		})
	}
	return out
}

// dayKey derives the grouping key and display label for a date string.
func dayKey(iso string) (key, label string) {
	t, ok := parseDate(iso)
	if !ok {
		return iso, iso
	}
	t = t.UTC()
	return t.Format("2006-01-02"), t.Format("Monday, January 2 2006")
}
