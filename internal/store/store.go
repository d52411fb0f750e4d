// Package store implements the ledger's domain store: it owns the four
// normalized in-memory collections, applies mutations, persists after every
// change, and notifies subscribers with immutable state snapshots.
//
// Every operation is synchronous and runs normalize → mutate → persist →
// notify to completion before returning. Notifications are delivered after
// the store's lock is released, so a subscriber may itself call back into
// the store; it will simply observe state newer than the change it was told
// about.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/joshsymonds/bucketwise/internal/normalize"
	"github.com/joshsymonds/bucketwise/internal/storage"
)

// Subscriber receives the full post-mutation state and a description of the
// change that produced it.
type Subscriber func(state model.State, change model.Change)

// Store is the domain store. Construct one per process with Open; it has no
// hidden shared state.
type Store struct {
	kv storage.KV

	mu      sync.Mutex
	state   model.State
	subs    map[int]Subscriber
	nextSub int
}

// Open loads and normalizes all persisted collections from kv. Keys that
// fail to deserialize are flagged in State.CorruptKeys and fall back to
// defaults; they do not block startup. A database with no categories key at
// all is treated as a first run and seeded with the starter set.
func Open(ctx context.Context, kv storage.KV) (*Store, error) {
	now := time.Now()
	s := &Store{
		kv:   kv,
		subs: make(map[int]Subscriber),
		state: model.State{
			ViewYear:  now.Year(),
			ViewMonth: now.Month(),
		},
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads, normalizes, and installs all four collections.
func (s *Store) load(ctx context.Context) error {
	rawSettings, _, err := s.loadKey(ctx, storage.KeySettings)
	if err != nil {
		return err
	}
	rawCategories, categoriesPresent, err := s.loadKey(ctx, storage.KeyCategories)
	if err != nil {
		return err
	}
	rawTransactions, _, err := s.loadKey(ctx, storage.KeyTransactions)
	if err != nil {
		return err
	}
	rawRecurring, _, err := s.loadKey(ctx, storage.KeyRecurring)
	if err != nil {
		return err
	}

	s.state.Settings = normalize.Settings(rawSettings)
	s.state.Categories = normalize.Categories(rawCategories)
	s.state.Transactions = normalize.Transactions(rawTransactions)
	s.state.Recurring = normalize.Recurring(rawRecurring)
	model.SortTransactions(s.state.Transactions)

	if !categoriesPresent {
		s.state.Categories = model.StarterCategories()
		if err := s.persist(ctx, storage.KeyCategories, s.state.Categories); err != nil {
			return err
		}
		slog.Info("seeded starter categories", "count", len(s.state.Categories))
	}

	slog.Debug("loaded ledger state",
		"categories", len(s.state.Categories),
		"transactions", len(s.state.Transactions),
		"recurring", len(s.state.Recurring),
		"corrupt_keys", len(s.state.CorruptKeys))
	return nil
}

// loadKey reads one persisted key and decodes it into a raw JSON value.
// A missing key returns (nil, false, nil); a key whose bytes are not valid
// JSON is recorded as corrupt and returns nil so the caller falls back to
// defaults. The stored bytes are left untouched for manual recovery.
func (s *Store) loadKey(ctx context.Context, key string) (any, bool, error) {
	data, present, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !present {
		return nil, false, nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		slog.Warn("persisted key is corrupt, falling back to defaults", "key", key, "error", err)
		s.state.CorruptKeys = append(s.state.CorruptKeys, key)
		return nil, true, nil
	}
	return raw, true, nil
}

// persist serializes value and writes it under key.
func (s *Store) persist(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}

// Subscribe registers fn and invokes it once, synchronously, with the
// current state. The returned function unregisters it. No ordering is
// guaranteed between subscribers.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	state := s.state.Clone()
	s.mu.Unlock()

	fn(state, model.Change{Type: model.ChangeInit})

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close releases the underlying persistence adapter.
func (s *Store) Close() error {
	return s.kv.Close()
}

// State returns a snapshot of the current state.
func (s *Store) State() model.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SetMonth changes the month the collaborator is viewing. The selection is
// notified but never persisted.
func (s *Store) SetMonth(year int, month time.Month) {
	s.mu.Lock()
	s.state.ViewYear = year
	s.state.ViewMonth = month
	state := s.state.Clone()
	s.mu.Unlock()

	s.notify(state, model.Change{Type: model.ChangeMonth})
}

// Reset clears all persisted collections, restores default settings, and
// re-seeds the starter categories.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()

	next := model.State{
		Settings:   model.DefaultSettings(),
		Categories: model.StarterCategories(),
		ViewYear:   s.state.ViewYear,
		ViewMonth:  s.state.ViewMonth,
	}
	if err := s.persistAll(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	state := s.state.Clone()
	s.mu.Unlock()

	slog.Info("ledger reset")
	s.notify(state, model.Change{Type: model.ChangeReset})
	return nil
}

// persistAll writes all four collections from next.
func (s *Store) persistAll(ctx context.Context, next model.State) error {
	if err := s.persist(ctx, storage.KeySettings, next.Settings); err != nil {
		return err
	}
	if err := s.persist(ctx, storage.KeyCategories, next.Categories); err != nil {
		return err
	}
	if err := s.persist(ctx, storage.KeyTransactions, next.Transactions); err != nil {
		return err
	}
	return s.persist(ctx, storage.KeyRecurring, next.Recurring)
}

// notify delivers a change to every subscriber. Callers must not hold the
// store lock.
func (s *Store) notify(state model.State, change model.Change) {
	s.mu.Lock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(state, change)
	}
}
