package model

// DefaultCategoryName is used when a category has no usable name.
const DefaultCategoryName = "Untitled"

// Category is a named expense classification. Categories are never deleted,
// only archived: archived categories stay valid as references from
// historical transactions but are excluded from pickers for new ones.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Bucket   Bucket `json:"bucket"`
	Archived bool   `json:"archived"`
}

// CloneCategories returns a copy of the slice.
func CloneCategories(cats []Category) []Category {
	if cats == nil {
		return nil
	}
	out := make([]Category, len(cats))
	copy(out, cats)
	return out
}

// FindCategory returns the category with the given id, or nil.
func FindCategory(cats []Category, id string) *Category {
	for i := range cats {
		if cats[i].ID == id {
			return &cats[i]
		}
	}
	return nil
}

// StarterCategories returns the fixed set the ledger is seeded with on first
// run and after a reset. Ids are generated fresh on every call.
func StarterCategories() []Category {
	starters := []struct {
		name   string
		bucket Bucket
	}{
		{"Rent & Utilities", BucketNecessities},
		{"Groceries", BucketNecessities},
		{"Transport", BucketNecessities},
		{"Dining Out", BucketLeisure},
		{"Entertainment", BucketLeisure},
		{"Investments", BucketSavings},
		{"Emergency Fund", BucketSavings},
	}

	cats := make([]Category, 0, len(starters))
	for _, s := range starters {
		cats = append(cats, Category{
			ID:     NewID(),
			Name:   s.name,
			Bucket: s.bucket,
		})
	}
	return cats
}
