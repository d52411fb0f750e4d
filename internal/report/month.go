package report

import (
	"time"

	"github.com/joshsymonds/bucketwise/internal/model"
)

// dateLayouts are tried in order when parsing a transaction's DateISO.
// Normalized data is always RFC3339, but imported files may carry bare
// timestamps or dates.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseDate parses an ISO-8601 date string, or returns ok=false.
func parseDate(iso string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// inMonth reports whether the date string falls in the given calendar month.
// Month membership is evaluated in UTC, uniformly across every query in this
// package; a transaction with an unparseable date belongs to no month.
func inMonth(iso string, year int, month time.Month) bool {
	t, ok := parseDate(iso)
	if !ok {
		return false
	}
	t = t.UTC()
	return t.Year() == year && t.Month() == month
}

// BucketTotals is the budget-vs-spent math for one bucket in one month.
type BucketTotals struct {
	BudgetCents    int64
	SpentCents     int64
	RemainingCents int64
}

// MonthSummary is the income/expense/bucket breakdown for a calendar month.
// Uncategorized catches expenses with no resolvable bucket; its budget is
// always zero, so its remaining is the negation of its spend.
type MonthSummary struct {
	Year          int
	Month         time.Month
	IncomeCents   int64
	ExpenseCents  int64
	Necessities   BucketTotals
	Leisure       BucketTotals
	Savings       BucketTotals
	Uncategorized BucketTotals
}

// Bucket returns the totals for b, or the uncategorized totals for any value
// outside the three rule buckets.
func (m MonthSummary) Bucket(b model.Bucket) BucketTotals {
	switch b {
	case model.BucketNecessities:
		return m.Necessities
	case model.BucketLeisure:
		return m.Leisure
	case model.BucketSavings:
		return m.Savings
	default:
		return m.Uncategorized
	}
}

// budgetCents computes round(income × pct / 100) in integer arithmetic.
// Income and percentages are non-negative, so half-up rounding is a plain
// add-then-divide.
func budgetCents(incomeCents int64, pct int) int64 {
	if pct < 0 {
		pct = 0
	}
	return (incomeCents*int64(pct) + 50) / 100
}

// MonthlyTotals computes the month's income, expenses, and per-bucket
// budget/spent/remaining under the given rule. Zero income is fine: every
// budget becomes 0 and each bucket's remaining is the negation of its spend.
func MonthlyTotals(txns []model.Transaction, rule model.Rule, year int, month time.Month) MonthSummary {
	m := MonthSummary{Year: year, Month: month}

	spent := map[model.Bucket]int64{}
	var uncategorized int64
	for _, txn := range txns {
		if !inMonth(txn.DateISO, year, month) {
			continue
		}
		if txn.Type == model.TypeIncome {
			m.IncomeCents += txn.AmountCents
			continue
		}
		m.ExpenseCents += txn.AmountCents
		if txn.Bucket != nil && txn.Bucket.Valid() {
			spent[*txn.Bucket] += txn.AmountCents
		} else {
			uncategorized += txn.AmountCents
		}
	}

	totals := func(b model.Bucket) BucketTotals {
		budget := budgetCents(m.IncomeCents, rule.Percent(b))
		return BucketTotals{
			BudgetCents:    budget,
			SpentCents:     spent[b],
			RemainingCents: budget - spent[b],
		}
	}
	m.Necessities = totals(model.BucketNecessities)
	m.Leisure = totals(model.BucketLeisure)
	m.Savings = totals(model.BucketSavings)
	m.Uncategorized = BucketTotals{
		SpentCents:     uncategorized,
		RemainingCents: -uncategorized,
	}

	return m
}
