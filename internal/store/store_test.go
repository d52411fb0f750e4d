package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/joshsymonds/bucketwise/internal/storage"
	"github.com/joshsymonds/bucketwise/internal/store"
	"github.com/joshsymonds/bucketwise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSeedsStarterCategoriesOnFirstRun(t *testing.T) {
	st := testutil.SetupTestStore(t)

	state := st.State()
	assert.NotEmpty(t, state.Categories)
	assert.Empty(t, state.Transactions)
	assert.Empty(t, state.CorruptKeys)
	assert.Equal(t, model.DefaultSettings(), state.Settings)
}

func TestStatePersistsAcrossReopen(t *testing.T) {
	kv := testutil.SetupTestKV(t)
	ctx := context.Background()

	st, err := store.Open(ctx, kv)
	require.NoError(t, err)

	txn, err := st.AddTransaction(ctx, store.TransactionDraft{
		Type:        model.TypeIncome,
		AmountCents: 5000,
		Description: "paycheck",
	})
	require.NoError(t, err)

	reopened, err := store.Open(ctx, kv)
	require.NoError(t, err)

	state := reopened.State()
	require.Len(t, state.Transactions, 1)
	assert.Equal(t, txn, state.Transactions[0])
	assert.Equal(t, st.State().Categories, state.Categories,
		"seeding happens once; reopen loads the same categories")
}

func TestOpenFlagsCorruptKeys(t *testing.T) {
	kv := testutil.SetupTestKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, storage.KeyTransactions, []byte("{not json")))
	require.NoError(t, kv.Set(ctx, storage.KeySettings, []byte(`{"currency":"EUR"}`)))

	st, err := store.Open(ctx, kv)
	require.NoError(t, err, "corruption must not block startup")

	state := st.State()
	assert.Equal(t, []string{storage.KeyTransactions}, state.CorruptKeys)
	assert.Empty(t, state.Transactions, "corrupt collection falls back to defaults")
	assert.Equal(t, "EUR", state.Settings.Currency, "intact keys still load")

	// The corrupt bytes are left in place for manual recovery.
	raw, present, err := kv.Get(ctx, storage.KeyTransactions)
	require.NoError(t, err)
	assert.True(t, present)
	assert.Equal(t, []byte("{not json"), raw)
}

func TestSubscribeReceivesInitAndMutations(t *testing.T) {
	st := testutil.SetupTestStore(t)
	ctx := context.Background()

	var changes []model.Change
	var lastState model.State
	unsubscribe := st.Subscribe(func(state model.State, change model.Change) {
		changes = append(changes, change)
		lastState = state
	})

	require.Len(t, changes, 1, "subscription delivers an initial snapshot")
	assert.Equal(t, model.ChangeInit, changes[0].Type)

	txn, err := st.AddTransaction(ctx, store.TransactionDraft{
		Type:        model.TypeIncome,
		AmountCents: 100,
	})
	require.NoError(t, err)

	require.Len(t, changes, 2)
	assert.Equal(t, model.ChangeTransactionAdd, changes[1].Type)
	assert.Equal(t, txn.ID, changes[1].ID)
	require.Len(t, lastState.Transactions, 1)

	unsubscribe()
	_, err = st.AddTransaction(ctx, store.TransactionDraft{Type: model.TypeIncome, AmountCents: 100})
	require.NoError(t, err)
	assert.Len(t, changes, 2, "unsubscribed listeners stop receiving changes")
}

func TestSubscriberSnapshotIsIsolated(t *testing.T) {
	st := testutil.SetupTestStore(t)
	ctx := context.Background()

	_, err := st.AddTransaction(ctx, store.TransactionDraft{Type: model.TypeIncome, AmountCents: 500})
	require.NoError(t, err)

	state := st.State()
	state.Transactions[0].AmountCents = 999999
	state.Categories[0].Name = "mutated"

	fresh := st.State()
	assert.Equal(t, int64(500), fresh.Transactions[0].AmountCents)
	assert.NotEqual(t, "mutated", fresh.Categories[0].Name)
}

func TestSetMonthNotifiesWithoutPersisting(t *testing.T) {
	st := testutil.SetupTestStore(t)

	var got []model.Change
	st.Subscribe(func(_ model.State, change model.Change) {
		got = append(got, change)
	})

	st.SetMonth(2023, time.February)

	state := st.State()
	assert.Equal(t, 2023, state.ViewYear)
	assert.Equal(t, time.February, state.ViewMonth)
	require.Len(t, got, 2)
	assert.Equal(t, model.ChangeMonth, got[1].Type)
}

func TestResetRestoresDefaults(t *testing.T) {
	st := testutil.SetupTestStore(t)
	ctx := context.Background()

	_, err := st.AddTransaction(ctx, store.TransactionDraft{Type: model.TypeIncome, AmountCents: 100})
	require.NoError(t, err)
	_, err = st.SaveSettings(ctx, store.SettingsPatch{Currency: strPtr("EUR")})
	require.NoError(t, err)

	var resetSeen bool
	st.Subscribe(func(_ model.State, change model.Change) {
		if change.Type == model.ChangeReset {
			resetSeen = true
		}
	})

	require.NoError(t, st.Reset(ctx))

	state := st.State()
	assert.Empty(t, state.Transactions)
	assert.Empty(t, state.Recurring)
	assert.NotEmpty(t, state.Categories, "reset re-seeds the starter set")
	assert.Equal(t, model.DefaultSettings(), state.Settings)
	assert.True(t, resetSeen)
}

func TestSaveSettings(t *testing.T) {
	st := testutil.SetupTestStore(t)
	ctx := context.Background()

	rule := model.Rule{Necessities: 40, Leisure: 40, Savings: 20}
	seven := 7
	s, err := st.SaveSettings(ctx, store.SettingsPatch{
		Currency:       strPtr("GBP"),
		Rule:           &rule,
		FirstDayOfWeek: &seven,
	})
	require.NoError(t, err)

	assert.Equal(t, "GBP", s.Currency)
	assert.Equal(t, rule, s.Rule)
	assert.Equal(t, 1, s.FirstDayOfWeek, "anything but exactly 0 collapses to 1")
	assert.Equal(t, model.CurrentSchemaVersion, s.SchemaVersion)
	assert.Equal(t, "en-US", s.Locale, "unpatched fields survive")

	zero := 0
	s, err = st.SaveSettings(ctx, store.SettingsPatch{FirstDayOfWeek: &zero})
	require.NoError(t, err)
	assert.Equal(t, 0, s.FirstDayOfWeek)
	assert.Equal(t, "GBP", s.Currency)
}

func strPtr(s string) *string { return &s }
