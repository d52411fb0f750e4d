package report

import (
	"sort"
	"time"

	"github.com/joshsymonds/bucketwise/internal/model"
)

// UncategorizedKey is the synthetic grouping key for expenses that carry no
// category reference.
const UncategorizedKey = "uncategorized"

// CategorySpend is one row of the month's spending-by-category ranking.
type CategorySpend struct {
	// CategoryID is the referenced category id, or UncategorizedKey.
	CategoryID string
	// Name and Bucket are resolved from the live category list, so renaming
	// or re-bucketing a category retroactively relabels historical spend.
	Name       string
	Bucket     *model.Bucket
	SpentCents int64
	Count      int
}

// SpendingByCategory groups the month's expenses by category, resolving
// display names from the live category list, sorted descending by spend
// (ties broken by name for a stable ranking).
func SpendingByCategory(txns []model.Transaction, cats []model.Category, year int, month time.Month) []CategorySpend {
	byKey := map[string]*CategorySpend{}
	for _, txn := range txns {
		if txn.Type != model.TypeExpense || !inMonth(txn.DateISO, year, month) {
			continue
		}

		key := UncategorizedKey
		if txn.CategoryID != nil {
			key = *txn.CategoryID
		}

		row, ok := byKey[key]
		if !ok {
			row = &CategorySpend{CategoryID: key, Name: "Uncategorized"}
			if cat := model.FindCategory(cats, key); cat != nil {
				b := cat.Bucket
				row.Name = cat.Name
				row.Bucket = &b
			}
			byKey[key] = row
		}
		row.SpentCents += txn.AmountCents
		row.Count++
	}

	rows := make([]CategorySpend, 0, len(byKey))
	for _, row := range byKey {
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SpentCents != rows[j].SpentCents {
			return rows[i].SpentCents > rows[j].SpentCents
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}

// CategoryUsage annotates a category with its same-month expense count, for
// archive/usage decisions in a management view.
type CategoryUsage struct {
	Category         model.Category
	TransactionCount int
}

// CategoryStats returns every category (archived included) with the number
// of expense transactions referencing it in the given month.
func CategoryStats(txns []model.Transaction, cats []model.Category, year int, month time.Month) []CategoryUsage {
	counts := map[string]int{}
	for _, txn := range txns {
		if txn.Type != model.TypeExpense || txn.CategoryID == nil || !inMonth(txn.DateISO, year, month) {
			continue
		}
		counts[*txn.CategoryID]++
	}

	usage := make([]CategoryUsage, 0, len(cats))
	for _, cat := range cats {
		usage = append(usage, CategoryUsage{
			Category:         cat,
			TransactionCount: counts[cat.ID],
		})
	}
	return usage
}
