package model

import "sort"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TypeIncome represents money received.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money spent.
	TypeExpense TransactionType = "expense"
)

// Transaction is a single income or expense event in the ledger.
//
// AmountCents is strictly positive for every transaction present in the
// collection; the normalizer drops anything that coerces to zero.
// CategoryID and Bucket are always nil for income.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	AmountCents int64           `json:"amount_cents"`
	Description string          `json:"description"`
	CategoryID  *string         `json:"category_id"`
	Bucket      *Bucket         `json:"bucket"`
	DateISO     string          `json:"date_iso"`
}

// Before orders transactions newest-first: descending DateISO, ties broken
// by descending ID. DateISO strings are ISO-8601, so plain string comparison
// is date-order-correct, and ids are time-ordered, giving a total order
// independent of insertion order.
func (t Transaction) Before(other Transaction) bool {
	if t.DateISO != other.DateISO {
		return t.DateISO > other.DateISO
	}
	return t.ID > other.ID
}

// SortTransactions sorts the slice in place into the ledger's display order.
func SortTransactions(txns []Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		return txns[i].Before(txns[j])
	})
}

// CloneTransactions returns a shallow copy of the slice. Pointer fields
// reference immutable values, so a shallow copy is safe to hand out.
func CloneTransactions(txns []Transaction) []Transaction {
	if txns == nil {
		return nil
	}
	out := make([]Transaction, len(txns))
	copy(out, txns)
	return out
}
