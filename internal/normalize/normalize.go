package normalize

import (
	"log/slog"
	"time"

	"github.com/joshsymonds/bucketwise/internal/model"
)

// Settings builds well-formed settings from an arbitrary raw value,
// shallow-merging recognized fields over the defaults. The schema version is
// always forced to the current one regardless of what was stored.
func Settings(raw any) model.Settings {
	s := model.DefaultSettings()

	obj, ok := asObject(raw)
	if !ok {
		return s
	}

	if v, ok := asString(obj["currency"]); ok && v != "" {
		s.Currency = v
	}
	if v, ok := asString(obj["locale"]); ok && v != "" {
		s.Locale = v
	}
	if rule, ok := asObject(obj["rule"]); ok {
		if n, ok := asNumber(rule["necessities"]); ok {
			s.Rule.Necessities = int(n)
		}
		if n, ok := asNumber(rule["leisure"]); ok {
			s.Rule.Leisure = int(n)
		}
		if n, ok := asNumber(rule["savings"]); ok {
			s.Rule.Savings = int(n)
		}
	}
	if v, present := obj["firstDayOfWeek"]; present {
		// 0 only when exactly 0; every other value collapses to 1.
		if n, ok := asNumber(v); ok && n == 0 {
			s.FirstDayOfWeek = 0
		} else {
			s.FirstDayOfWeek = 1
		}
	}
	if v, present := obj["showAdvancedCharts"]; present {
		s.ShowAdvancedCharts = truthy(v)
	}
	if v, present := obj["hapticFeedback"]; present {
		s.HapticFeedback = truthy(v)
	}

	s.SchemaVersion = model.CurrentSchemaVersion
	return s
}

// Categories builds a category list from an arbitrary raw value. Non-object
// entries are dropped; missing ids are generated, invalid buckets default to
// necessities, and non-string names default to "Untitled".
func Categories(raw any) []model.Category {
	list, ok := asList(raw)
	if !ok {
		return []model.Category{}
	}

	cats := make([]model.Category, 0, len(list))
	for _, entry := range list {
		obj, ok := asObject(entry)
		if !ok {
			continue
		}

		cat := model.Category{
			Name:   model.DefaultCategoryName,
			Bucket: model.BucketNecessities,
		}
		if id, ok := asString(obj["id"]); ok && id != "" {
			cat.ID = id
		} else {
			cat.ID = model.NewID()
		}
		if name, ok := asString(obj["name"]); ok {
			cat.Name = name
		}
		if s, ok := asString(obj["bucket"]); ok {
			if b, ok := model.ParseBucket(s); ok {
				cat.Bucket = b
			}
		}
		cat.Archived = truthy(obj["archived"])

		cats = append(cats, cat)
	}
	return cats
}

// Transactions builds the transaction collection from an arbitrary raw
// value. Records that coerce to a zero amount are dropped entirely: the
// collection invariant is that every present transaction has a strictly
// positive amount.
func Transactions(raw any) []model.Transaction {
	list, ok := asList(raw)
	if !ok {
		return []model.Transaction{}
	}

	dropped := 0
	txns := make([]model.Transaction, 0, len(list))
	for _, entry := range list {
		obj, ok := asObject(entry)
		if !ok {
			continue
		}

		txn := model.Transaction{Type: model.TypeExpense}
		if id, ok := asString(obj["id"]); ok && id != "" {
			txn.ID = id
		} else {
			txn.ID = model.NewID()
		}
		if t, ok := asString(obj["type"]); ok && model.TransactionType(t) == model.TypeIncome {
			txn.Type = model.TypeIncome
		}
		txn.AmountCents = asCents(obj["amount_cents"])
		if desc, ok := asString(obj["description"]); ok {
			txn.Description = desc
		}
		if txn.Type == model.TypeExpense {
			if id, ok := asString(obj["category_id"]); ok && id != "" {
				txn.CategoryID = &id
			}
			if s, ok := asString(obj["bucket"]); ok {
				if b, ok := model.ParseBucket(s); ok {
					txn.Bucket = &b
				}
			}
		}
		if date, ok := asString(obj["date_iso"]); ok && date != "" {
			txn.DateISO = date
		} else {
			txn.DateISO = NowISO()
		}

		if txn.AmountCents == 0 {
			dropped++
			continue
		}
		txns = append(txns, txn)
	}

	if dropped > 0 {
		slog.Warn("dropped zero-amount transactions during normalization", "count", dropped)
	}
	return txns
}

// Recurring builds the recurring template collection from an arbitrary raw
// value. Unlike transactions, a zero default amount is kept: it marks
// templates that ask for the amount on each use.
func Recurring(raw any) []model.RecurringTemplate {
	list, ok := asList(raw)
	if !ok {
		return []model.RecurringTemplate{}
	}

	templates := make([]model.RecurringTemplate, 0, len(list))
	for _, entry := range list {
		obj, ok := asObject(entry)
		if !ok {
			continue
		}

		tpl := model.RecurringTemplate{}
		if id, ok := asString(obj["id"]); ok && id != "" {
			tpl.ID = id
		} else {
			tpl.ID = model.NewID()
		}
		if desc, ok := asString(obj["description"]); ok {
			tpl.Description = desc
		}
		tpl.DefaultAmountCents = asCents(obj["default_amount_cents"])
		if id, ok := asString(obj["category_id"]); ok && id != "" {
			tpl.CategoryID = &id
		}

		templates = append(templates, tpl)
	}
	return templates
}

// NowISO returns the current time as the canonical DateISO string.
func NowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
