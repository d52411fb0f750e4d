package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshsymonds/bucketwise/internal/common"
	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/joshsymonds/bucketwise/internal/normalize"
	"github.com/joshsymonds/bucketwise/internal/storage"
)

// TransactionDraft is the partial input AddTransaction completes into a full
// transaction.
type TransactionDraft struct {
	Type        model.TransactionType
	AmountCents int64
	Description string
	CategoryID  *string
	Bucket      *model.Bucket
	// DateISO defaults to the current time when empty.
	DateISO string
}

// TransactionUpdate merges field-by-field onto an existing transaction. Nil
// pointers leave the field alone; the Clear flags set the nullable fields to
// null explicitly.
type TransactionUpdate struct {
	Type          *model.TransactionType
	AmountCents   *int64
	Description   *string
	DateISO       *string
	CategoryID    *string
	ClearCategory bool
	Bucket        *model.Bucket
	ClearBucket   bool
}

// AddTransaction builds a full transaction from the draft, inserts it in
// sort order, persists, and returns it. The bucket resolves from the
// explicit value, else from the referenced category, else stays null; income
// never carries a category or bucket.
func (s *Store) AddTransaction(ctx context.Context, draft TransactionDraft) (model.Transaction, error) {
	if draft.AmountCents <= 0 {
		return model.Transaction{}, fmt.Errorf("%w: got %d", common.ErrInvalidAmount, draft.AmountCents)
	}

	s.mu.Lock()

	txn := model.Transaction{
		ID:          model.NewID(),
		Type:        model.TypeExpense,
		AmountCents: draft.AmountCents,
		Description: draft.Description,
		DateISO:     draft.DateISO,
	}
	if draft.Type == model.TypeIncome {
		txn.Type = model.TypeIncome
	}
	if txn.DateISO == "" {
		txn.DateISO = normalize.NowISO()
	}
	if txn.Type == model.TypeExpense {
		txn.CategoryID = cloneStringPtr(draft.CategoryID)
		txn.Bucket = resolveBucket(draft.Bucket, draft.CategoryID, s.state.Categories)
	}

	txns := append(model.CloneTransactions(s.state.Transactions), txn)
	model.SortTransactions(txns)

	if err := s.persist(ctx, storage.KeyTransactions, txns); err != nil {
		s.mu.Unlock()
		return model.Transaction{}, err
	}
	s.state.Transactions = txns
	state := s.state.Clone()
	s.mu.Unlock()

	slog.Debug("added transaction", "id", txn.ID, "type", txn.Type, "amount_cents", txn.AmountCents)
	s.notify(state, model.Change{Type: model.ChangeTransactionAdd, ID: txn.ID})
	return txn, nil
}

// UpdateTransaction merges upd onto the transaction with the given id and
// re-derives bucket/category consistency: an expense re-resolves its bucket,
// an income has bucket and category forcibly cleared. Returns nil (and no
// error) when the id does not exist.
func (s *Store) UpdateTransaction(ctx context.Context, id string, upd TransactionUpdate) (*model.Transaction, error) {
	if upd.AmountCents != nil && *upd.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: got %d", common.ErrInvalidAmount, *upd.AmountCents)
	}

	s.mu.Lock()

	idx := -1
	for i := range s.state.Transactions {
		if s.state.Transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, nil
	}

	txn := s.state.Transactions[idx]
	if upd.Type != nil {
		txn.Type = model.TypeExpense
		if *upd.Type == model.TypeIncome {
			txn.Type = model.TypeIncome
		}
	}
	if upd.AmountCents != nil {
		txn.AmountCents = *upd.AmountCents
	}
	if upd.Description != nil {
		txn.Description = *upd.Description
	}
	if upd.DateISO != nil && *upd.DateISO != "" {
		txn.DateISO = *upd.DateISO
	}
	if upd.ClearCategory {
		txn.CategoryID = nil
	} else if upd.CategoryID != nil {
		txn.CategoryID = cloneStringPtr(upd.CategoryID)
	}

	if txn.Type == model.TypeIncome {
		txn.CategoryID = nil
		txn.Bucket = nil
	} else {
		explicit := txn.Bucket
		if upd.ClearBucket {
			explicit = nil
		} else if upd.Bucket != nil {
			explicit = upd.Bucket
		}
		txn.Bucket = resolveBucket(explicit, txn.CategoryID, s.state.Categories)
	}

	txns := model.CloneTransactions(s.state.Transactions)
	txns[idx] = txn
	model.SortTransactions(txns)

	if err := s.persist(ctx, storage.KeyTransactions, txns); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state.Transactions = txns
	state := s.state.Clone()
	s.mu.Unlock()

	slog.Debug("updated transaction", "id", id)
	s.notify(state, model.Change{Type: model.ChangeTransactionUpdate, ID: id})
	return &txn, nil
}

// DeleteTransaction removes and returns the transaction with the given id,
// or nil when absent. The store keeps no history: undo is the caller
// re-adding a copy, which gets a fresh id.
func (s *Store) DeleteTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	s.mu.Lock()

	idx := -1
	for i := range s.state.Transactions {
		if s.state.Transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, nil
	}

	removed := s.state.Transactions[idx]
	txns := make([]model.Transaction, 0, len(s.state.Transactions)-1)
	txns = append(txns, s.state.Transactions[:idx]...)
	txns = append(txns, s.state.Transactions[idx+1:]...)

	if err := s.persist(ctx, storage.KeyTransactions, txns); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state.Transactions = txns
	state := s.state.Clone()
	s.mu.Unlock()

	slog.Debug("deleted transaction", "id", id)
	s.notify(state, model.Change{Type: model.ChangeTransactionDelete, ID: id})
	return &removed, nil
}

// resolveBucket picks an expense's bucket: the explicit value when valid,
// else the referenced category's bucket, else null.
func resolveBucket(explicit *model.Bucket, categoryID *string, cats []model.Category) *model.Bucket {
	if explicit != nil && explicit.Valid() {
		b := *explicit
		return &b
	}
	if categoryID != nil {
		if cat := model.FindCategory(cats, *categoryID); cat != nil {
			b := cat.Bucket
			return &b
		}
	}
	return nil
}

func cloneStringPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
