package store_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/joshsymonds/bucketwise/internal/common"
	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/joshsymonds/bucketwise/internal/storage"
	"github.com/joshsymonds/bucketwise/internal/store"
	"github.com/joshsymonds/bucketwise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportRejectsSchemaMismatch(t *testing.T) {
	st := testutil.SetupTestStore(t)
	ctx := context.Background()

	_, err := st.AddTransaction(ctx, store.TransactionDraft{
		Type:        model.TypeIncome,
		AmountCents: 100000,
		Description: "Paycheck",
	})
	require.NoError(t, err)
	before := st.State()

	tests := []struct {
		name    string
		payload string
		wantGot int
	}{
		{
			name:    "newer schema",
			payload: `{"schema_version": 99, "transactions": []}`,
			wantGot: 99,
		},
		{
			name:    "missing schema version",
			payload: `{"transactions": []}`,
			wantGot: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := st.Import(ctx, []byte(tt.payload), model.StrategyReplace)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrSchemaMismatch)

			var schemaErr *common.SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.wantGot, schemaErr.Got)
			assert.Equal(t, model.CurrentSchemaVersion, schemaErr.Want)

			// A rejected import must not touch state.
			assert.Equal(t, before.Transactions, st.State().Transactions)
		})
	}
}

func TestImportRejectsMalformedPayload(t *testing.T) {
	st := testutil.SetupTestStore(t)

	err := st.Import(context.Background(), []byte("not json"), model.StrategyReplace)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrCorruptData)
}

func TestImportRejectsUnknownStrategy(t *testing.T) {
	st := testutil.SetupTestStore(t)

	err := st.Import(context.Background(), []byte(`{"schema_version": 1}`), model.ImportStrategy("upsert"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidStrategy)
}

func TestExportImportReplaceRoundTrip(t *testing.T) {
	ctx := context.Background()

	source := testutil.SetupTestStore(t)
	cat, err := source.AddCategory(ctx, "Groceries Abroad", model.BucketNecessities)
	require.NoError(t, err)
	_, err = source.AddTransaction(ctx, store.TransactionDraft{
		Type:        model.TypeExpense,
		AmountCents: 4200,
		Description: "Market run",
		CategoryID:  &cat.ID,
	})
	require.NoError(t, err)
	_, err = source.AddRecurring(ctx, store.RecurringDraft{
		Description:        "Rent",
		DefaultAmountCents: 120000,
	})
	require.NoError(t, err)

	payload, err := json.Marshal(source.Export())
	require.NoError(t, err)

	dest := testutil.SetupTestStore(t)
	_, err = dest.AddTransaction(ctx, store.TransactionDraft{
		Type:        model.TypeExpense,
		AmountCents: 999,
		Description: "doomed by replace",
	})
	require.NoError(t, err)

	require.NoError(t, dest.Import(ctx, payload, model.StrategyReplace))

	want := source.State()
	got := dest.State()
	assert.Equal(t, want.Settings, got.Settings)
	assert.Equal(t, want.Categories, got.Categories)
	assert.Equal(t, want.Transactions, got.Transactions)
	assert.Equal(t, want.Recurring, got.Recurring)
}

func TestImportEmptyStrategyDefaultsToReplace(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	_, err := st.AddTransaction(ctx, store.TransactionDraft{
		Type:        model.TypeExpense,
		AmountCents: 500,
	})
	require.NoError(t, err)

	payload := `{"schema_version": 1, "transactions": [], "categories": [], "recurring": []}`
	require.NoError(t, st.Import(ctx, []byte(payload), ""))
	assert.Empty(t, st.State().Transactions)
}

func TestImportMergeKeepsCurrentOnCollision(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	kept, err := st.AddTransaction(ctx, store.TransactionDraft{
		Type:        model.TypeExpense,
		AmountCents: 1000,
		Description: "only local",
		DateISO:     "2024-06-03T00:00:00Z",
	})
	require.NoError(t, err)
	shared, err := st.AddTransaction(ctx, store.TransactionDraft{
		Type:        model.TypeExpense,
		AmountCents: 2000,
		Description: "local version",
		DateISO:     "2024-06-02T00:00:00Z",
	})
	require.NoError(t, err)

	imported := model.Snapshot{
		SchemaVersion: model.CurrentSchemaVersion,
		Settings:      st.State().Settings,
		Transactions: []model.Transaction{
			{
				ID:          shared.ID,
				Type:        model.TypeExpense,
				AmountCents: 9999,
				Description: "imported version",
				DateISO:     "2024-06-02T00:00:00Z",
			},
			{
				ID:          model.NewID(),
				Type:        model.TypeExpense,
				AmountCents: 3000,
				Description: "only imported",
				DateISO:     "2024-06-01T00:00:00Z",
			},
		},
	}
	payload, err := json.Marshal(imported)
	require.NoError(t, err)

	require.NoError(t, st.Import(ctx, payload, model.StrategyMerge))

	state := st.State()
	require.Len(t, state.Transactions, 3)

	byID := make(map[string]model.Transaction, len(state.Transactions))
	for _, txn := range state.Transactions {
		byID[txn.ID] = txn
	}
	assert.Equal(t, "only local", byID[kept.ID].Description)
	assert.Equal(t, "local version", byID[shared.ID].Description,
		"the existing record wins an id collision")
	assert.Equal(t, int64(2000), byID[shared.ID].AmountCents)

	// Merge output stays in feed order.
	assertSorted(t, state.Transactions)
}

func TestImportNotifiesWithStrategy(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	var changes []model.Change
	unsubscribe := st.Subscribe(func(_ model.State, change model.Change) {
		changes = append(changes, change)
	})
	defer unsubscribe()

	payload := `{"schema_version": 1, "transactions": [], "categories": [], "recurring": []}`
	require.NoError(t, st.Import(ctx, []byte(payload), model.StrategyMerge))

	require.NotEmpty(t, changes)
	last := changes[len(changes)-1]
	assert.Equal(t, model.ChangeImport, last.Type)
	assert.Equal(t, model.StrategyMerge, last.Strategy)
}

func TestImportClearsCorruptKeys(t *testing.T) {
	ctx := context.Background()

	kv := testutil.SetupTestKV(t)
	require.NoError(t, kv.Set(ctx, storage.KeyTransactions, []byte("{broken")))

	st, err := store.Open(ctx, kv)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.Contains(t, st.State().CorruptKeys, "transactions")

	payload := `{"schema_version": 1, "transactions": [], "categories": [], "recurring": []}`
	require.NoError(t, st.Import(ctx, []byte(payload), model.StrategyReplace))
	assert.Empty(t, st.State().CorruptKeys)
}

func TestImportNormalizesUntrustedPayload(t *testing.T) {
	ctx := context.Background()
	st := testutil.SetupTestStore(t)

	// A fractional amount, a zero-amount entry, and an income carrying a
	// bucket: the normalizer repairs all three.
	payload := `{
		"schema_version": 1,
		"transactions": [
			{"id": "t-1", "type": "expense", "amount_cents": 12.5, "date_iso": "2024-06-01T00:00:00Z"},
			{"id": "t-2", "type": "expense", "amount_cents": 0, "date_iso": "2024-06-01T00:00:00Z"},
			{"id": "t-3", "type": "income", "amount_cents": 100, "bucket": "leisure", "date_iso": "2024-06-02T00:00:00Z"}
		],
		"categories": [],
		"recurring": []
	}`
	require.NoError(t, st.Import(ctx, []byte(payload), model.StrategyReplace))

	state := st.State()
	require.Len(t, state.Transactions, 2, "zero-amount entries are dropped")

	byID := make(map[string]model.Transaction)
	for _, txn := range state.Transactions {
		byID[txn.ID] = txn
	}
	assert.Equal(t, int64(12), byID["t-1"].AmountCents, "fractional cents truncate")
	assert.Nil(t, byID["t-3"].Bucket, "income never carries a bucket")
}
