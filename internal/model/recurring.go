package model

// RecurringTemplate is a reusable expense blueprint: description, default
// amount, and optional category, used to create expense transactions without
// re-entering the details. A zero DefaultAmountCents is legitimate and means
// "ask for the amount each time".
type RecurringTemplate struct {
	ID                 string  `json:"id"`
	Description        string  `json:"description"`
	DefaultAmountCents int64   `json:"default_amount_cents"`
	CategoryID         *string `json:"category_id"`
}

// CloneRecurring returns a copy of the slice.
func CloneRecurring(templates []RecurringTemplate) []RecurringTemplate {
	if templates == nil {
		return nil
	}
	out := make([]RecurringTemplate, len(templates))
	copy(out, templates)
	return out
}
