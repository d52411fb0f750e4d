// Package model defines the domain entities of the budgeting ledger.
package model

// Bucket is one of the three budget buckets an expense is classified into.
type Bucket string

const (
	// BucketNecessities covers essential spending (rent, groceries, bills).
	BucketNecessities Bucket = "necessities"
	// BucketLeisure covers discretionary spending.
	BucketLeisure Bucket = "leisure"
	// BucketSavings covers money set aside.
	BucketSavings Bucket = "savings"
)

// Buckets lists the valid buckets in rule order.
var Buckets = []Bucket{BucketNecessities, BucketLeisure, BucketSavings}

// ParseBucket returns the bucket matching s, or false if s is not a valid
// bucket value.
func ParseBucket(s string) (Bucket, bool) {
	switch Bucket(s) {
	case BucketNecessities, BucketLeisure, BucketSavings:
		return Bucket(s), true
	default:
		return "", false
	}
}

// Valid reports whether b is one of the three defined buckets.
func (b Bucket) Valid() bool {
	_, ok := ParseBucket(string(b))
	return ok
}

// Title returns the display name of the bucket.
func (b Bucket) Title() string {
	switch b {
	case BucketNecessities:
		return "Necessities"
	case BucketLeisure:
		return "Leisure"
	case BucketSavings:
		return "Savings"
	default:
		return "Uncategorized"
	}
}
