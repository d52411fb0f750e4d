package model

// CurrentSchemaVersion tags persisted and exported data. Imports whose
// schema_version differs are rejected in full.
const CurrentSchemaVersion = 1

// Rule is the percentage split of income across the three buckets. The UI
// keeps the three values summing to 100; the store does not enforce it.
type Rule struct {
	Necessities int `json:"necessities"`
	Leisure     int `json:"leisure"`
	Savings     int `json:"savings"`
}

// Settings is the process-wide ledger configuration. Field names on the wire
// follow the persisted JSON layout, camelCase and snake_case mixed as found
// in existing data files.
type Settings struct {
	Currency           string `json:"currency"`
	Locale             string `json:"locale"`
	Rule               Rule   `json:"rule"`
	FirstDayOfWeek     int    `json:"firstDayOfWeek"`
	ShowAdvancedCharts bool   `json:"showAdvancedCharts"`
	HapticFeedback     bool   `json:"hapticFeedback"`
	SchemaVersion      int    `json:"schema_version"`
}

// DefaultRule is the classic 50/30/20 split.
func DefaultRule() Rule {
	return Rule{Necessities: 50, Leisure: 30, Savings: 20}
}

// DefaultSettings returns the settings a fresh ledger starts with.
func DefaultSettings() Settings {
	return Settings{
		Currency:       "USD",
		Locale:         "en-US",
		Rule:           DefaultRule(),
		FirstDayOfWeek: 1,
		SchemaVersion:  CurrentSchemaVersion,
	}
}

// Percent returns the rule percentage for the given bucket, or 0 for any
// value outside the three rule buckets.
func (r Rule) Percent(b Bucket) int {
	switch b {
	case BucketNecessities:
		return r.Necessities
	case BucketLeisure:
		return r.Leisure
	case BucketSavings:
		return r.Savings
	default:
		return 0
	}
}
