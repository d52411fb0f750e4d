package report

import (
	"testing"
	"time"

	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/stretchr/testify/assert"
)

func expense(cents int64, bucket model.Bucket, date string) model.Transaction {
	b := bucket
	return model.Transaction{
		ID:          model.NewID(),
		Type:        model.TypeExpense,
		AmountCents: cents,
		Bucket:      &b,
		DateISO:     date,
	}
}

func income(cents int64, date string) model.Transaction {
	return model.Transaction{
		ID:          model.NewID(),
		Type:        model.TypeIncome,
		AmountCents: cents,
		DateISO:     date,
	}
}

func TestMonthlyTotalsRulePartition(t *testing.T) {
	// $1000.00 of income under 50/30/20 partitions exactly.
	txns := []model.Transaction{income(100000, "2024-06-15T10:00:00Z")}
	rule := model.Rule{Necessities: 50, Leisure: 30, Savings: 20}

	m := MonthlyTotals(txns, rule, 2024, time.June)

	assert.Equal(t, int64(100000), m.IncomeCents)
	assert.Equal(t, int64(50000), m.Necessities.BudgetCents)
	assert.Equal(t, int64(30000), m.Leisure.BudgetCents)
	assert.Equal(t, int64(20000), m.Savings.BudgetCents)
	assert.Equal(t, int64(0), m.Uncategorized.BudgetCents)

	sum := m.Necessities.BudgetCents + m.Leisure.BudgetCents + m.Savings.BudgetCents
	assert.Equal(t, m.IncomeCents, sum)
}

func TestMonthlyTotalsBudgetVsSpent(t *testing.T) {
	txns := []model.Transaction{
		income(200000, "2024-06-01T09:00:00Z"),
		expense(50000, model.BucketNecessities, "2024-06-10T12:00:00Z"),
	}
	rule := model.Rule{Necessities: 50, Leisure: 30, Savings: 20}

	m := MonthlyTotals(txns, rule, 2024, time.June)

	assert.Equal(t, int64(100000), m.Necessities.BudgetCents)
	assert.Equal(t, int64(50000), m.Necessities.SpentCents)
	assert.Equal(t, int64(50000), m.Necessities.RemainingCents)

	assert.Equal(t, int64(60000), m.Leisure.BudgetCents)
	assert.Equal(t, int64(0), m.Leisure.SpentCents)
	assert.Equal(t, int64(60000), m.Leisure.RemainingCents)
}

func TestMonthlyTotalsUncategorized(t *testing.T) {
	txns := []model.Transaction{
		{
			ID:          model.NewID(),
			Type:        model.TypeExpense,
			AmountCents: 1000,
			DateISO:     "2024-06-05T08:00:00Z",
		},
	}

	m := MonthlyTotals(txns, model.DefaultRule(), 2024, time.June)

	assert.Equal(t, int64(1000), m.ExpenseCents)
	assert.Equal(t, int64(0), m.Uncategorized.BudgetCents)
	assert.Equal(t, int64(1000), m.Uncategorized.SpentCents)
	assert.Equal(t, int64(-1000), m.Uncategorized.RemainingCents)
}

func TestMonthlyTotalsZeroIncome(t *testing.T) {
	txns := []model.Transaction{
		expense(2500, model.BucketLeisure, "2024-06-20T18:00:00Z"),
	}

	m := MonthlyTotals(txns, model.DefaultRule(), 2024, time.June)

	assert.Equal(t, int64(0), m.IncomeCents)
	assert.Equal(t, int64(0), m.Leisure.BudgetCents)
	assert.Equal(t, int64(-2500), m.Leisure.RemainingCents)
}

func TestMonthlyTotalsFiltersByMonth(t *testing.T) {
	txns := []model.Transaction{
		income(100000, "2024-05-31T23:59:59Z"),
		income(40000, "2024-06-01T00:00:00Z"),
		expense(500, model.BucketSavings, "2024-07-01T00:00:00Z"),
		{ID: model.NewID(), Type: model.TypeExpense, AmountCents: 100, DateISO: "not a date"},
	}

	m := MonthlyTotals(txns, model.DefaultRule(), 2024, time.June)

	assert.Equal(t, int64(40000), m.IncomeCents)
	assert.Equal(t, int64(0), m.ExpenseCents)
}

func TestMonthlyTotalsRoundsBudgets(t *testing.T) {
	// 3 cents of income at 50% rounds half-up to 2.
	txns := []model.Transaction{income(3, "2024-06-01T00:00:00Z")}
	rule := model.Rule{Necessities: 50, Leisure: 30, Savings: 20}

	m := MonthlyTotals(txns, rule, 2024, time.June)

	assert.Equal(t, int64(2), m.Necessities.BudgetCents)
	assert.Equal(t, int64(1), m.Leisure.BudgetCents)
	assert.Equal(t, int64(1), m.Savings.BudgetCents)
}
