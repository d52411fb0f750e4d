package store

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joshsymonds/bucketwise/internal/model"
	"github.com/joshsymonds/bucketwise/internal/storage"
)

// CategoryUpdate merges field-by-field onto an existing category.
type CategoryUpdate struct {
	Name     *string
	Bucket   *model.Bucket
	Archived *bool
}

// AddCategory creates a category. The name is trimmed and defaults to
// "Untitled" when empty; an invalid bucket defaults to necessities.
func (s *Store) AddCategory(ctx context.Context, name string, bucket model.Bucket) (model.Category, error) {
	s.mu.Lock()

	cat := model.Category{
		ID:     model.NewID(),
		Name:   cleanCategoryName(name),
		Bucket: bucket,
	}
	if !cat.Bucket.Valid() {
		cat.Bucket = model.BucketNecessities
	}

	cats := append(model.CloneCategories(s.state.Categories), cat)
	if err := s.persist(ctx, storage.KeyCategories, cats); err != nil {
		s.mu.Unlock()
		return model.Category{}, err
	}
	s.state.Categories = cats
	state := s.state.Clone()
	s.mu.Unlock()

	slog.Debug("added category", "id", cat.ID, "name", cat.Name, "bucket", cat.Bucket)
	s.notify(state, model.Change{Type: model.ChangeCategoryAdd, ID: cat.ID})
	return cat, nil
}

// UpdateCategory merges upd onto the category with the given id, applying
// the same name and bucket repairs as AddCategory. Returns nil when the id
// does not exist.
func (s *Store) UpdateCategory(ctx context.Context, id string, upd CategoryUpdate) (*model.Category, error) {
	s.mu.Lock()

	idx := -1
	for i := range s.state.Categories {
		if s.state.Categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return nil, nil
	}

	cat := s.state.Categories[idx]
	if upd.Name != nil {
		cat.Name = cleanCategoryName(*upd.Name)
	}
	if upd.Bucket != nil {
		cat.Bucket = *upd.Bucket
		if !cat.Bucket.Valid() {
			cat.Bucket = model.BucketNecessities
		}
	}
	if upd.Archived != nil {
		cat.Archived = *upd.Archived
	}

	cats := model.CloneCategories(s.state.Categories)
	cats[idx] = cat

	if err := s.persist(ctx, storage.KeyCategories, cats); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.state.Categories = cats
	state := s.state.Clone()
	s.mu.Unlock()

	slog.Debug("updated category", "id", id)
	s.notify(state, model.Change{Type: model.ChangeCategoryUpdate, ID: id})
	return &cat, nil
}

// ArchiveCategory flips the archived flag. Categories are never deleted:
// archiving keeps historical transactions' references valid while hiding the
// category from pickers for new ones.
func (s *Store) ArchiveCategory(ctx context.Context, id string, archived bool) (*model.Category, error) {
	return s.UpdateCategory(ctx, id, CategoryUpdate{Archived: &archived})
}

func cleanCategoryName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.DefaultCategoryName
	}
	return name
}
