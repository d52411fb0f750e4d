package store

import (
	"context"
	"log/slog"

	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/joshsymonds/bucketwise/internal/storage"
)

// RecurringDraft is the input for a new recurring template. A zero default
// amount is legitimate: it marks a template that asks for the amount on each
// use.
type RecurringDraft struct {
	Description        string
	DefaultAmountCents int64
	CategoryID         *string
}

// RecurringUpdate merges field-by-field onto an existing template.
type RecurringUpdate struct {
	Description        *string
	DefaultAmountCents *int64
	CategoryID         *string
	ClearCategory      bool
}

// AddRecurring creates a recurring expense template. Negative amounts are
// coerced to zero rather than rejected.
func (s *Store) AddRecurring(ctx context.Context, draft RecurringDraft) (model.RecurringTemplate, error) {
	s.mu.Lock()

	tpl := model.RecurringTemplate{
		ID:                 model.NewID(),
		Description:        draft.Description,
		DefaultAmountCents: clampCents(draft.DefaultAmountCents),
		CategoryID:         cloneStringPtr(draft.CategoryID),
	}

	templates := append(model.CloneRecurring(s.state.Recurring), tpl)
	if err := s.persist(ctx, storage.KeyRecurring, templates); err != nil {
		s.mu.Unlock()
		return model.RecurringTemplate{}, err
	}
	s.state.Recurring = templates
	state := s.state.Clone()
	s.mu.Unlock()

	slog.Debug("added recurring template", "id", tpl.ID)
	s.notify(state, model.Change{Type: model.ChangeRecurringAdd, ID: tpl.ID})
	return tpl, nil
}

// UpdateRecurring merges upd onto the template with the given id. Returns
// nil when the id does not exist.
func (s *Store) UpdateRecurring(ctx context.Context, id string, upd RecurringUpdate) (*model.RecurringTemplate, error) {
	s.mu.Lock()

	idx := -1
	for i := range s.state.Recurring {
		if s.state.Recurring[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, nil
	}

	tpl := s.state.Recurring[idx]
	if upd.Description != nil {
		tpl.Description = *upd.Description
	}
	if upd.DefaultAmountCents != nil {
		tpl.DefaultAmountCents = clampCents(*upd.DefaultAmountCents)
	}
	if upd.ClearCategory {
		tpl.CategoryID = nil
	} else if upd.CategoryID != nil {
		tpl.CategoryID = cloneStringPtr(upd.CategoryID)
	}

	templates := model.CloneRecurring(s.state.Recurring)
	templates[idx] = tpl

	if err := s.persist(ctx, storage.KeyRecurring, templates); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state.Recurring = templates
	state := s.state.Clone()
	s.mu.Unlock()

	slog.Debug("updated recurring template", "id", id)
	s.notify(state, model.Change{Type: model.ChangeRecurringUpdate, ID: id})
	return &tpl, nil
}

// DeleteRecurring removes and returns the template with the given id, or
// nil when absent.
func (s *Store) DeleteRecurring(ctx context.Context, id string) (*model.RecurringTemplate, error) {
	s.mu.Lock()

	idx := -1
	for i := range s.state.Recurring {
		if s.state.Recurring[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, nil
	}

	removed := s.state.Recurring[idx]
	templates := make([]model.RecurringTemplate, 0, len(s.state.Recurring)-1)
	templates = append(templates, s.state.Recurring[:idx]...)
	templates = append(templates, s.state.Recurring[idx+1:]...)

	if err := s.persist(ctx, storage.KeyRecurring, templates); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state.Recurring = templates
	state := s.state.Clone()
	s.mu.Unlock()

	slog.Debug("deleted recurring template", "id", id)
	s.notify(state, model.Change{Type: model.ChangeRecurringDelete, ID: id})
	return &removed, nil
}

func clampCents(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
