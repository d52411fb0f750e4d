// Package normalize coerces raw, untrusted values read from storage or an
// import payload into well-typed domain entities. It never fails: invalid
// fields are repaired to defaults and unrecoverable records are dropped, so
// hand-edited or corrupted data degrades instead of crashing the ledger.
package normalize

import "math"

// asObject returns v as a JSON object, or false.
func asObject(v any) (map[string]any, bool) {
	obj, ok := v.(map[string]any)
	return obj, ok
}

// asList returns v as a JSON array, or false.
func asList(v any) ([]any, bool) {
	list, ok := v.([]any)
	return list, ok
}

// asString returns v if it is a string.
func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asNumber returns v as a float64 if it is any numeric type. JSON decoding
// into any only ever produces float64, but values that pass through Go code
// (re-normalization, tests) may carry native integer types.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// asCents coerces v to a non-negative truncated integer number of cents.
// Non-numbers, non-finite values, and negatives all coerce to 0.
func asCents(v any) int64 {
	n, ok := asNumber(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return int64(n)
}

// truthy applies loose boolean coercion: false, nil, zero, and the empty
// string are false; everything else is true. Persisted data predating strict
// typing stored flags as 0/1 or "" in places, so plain type assertion is not
// enough here.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case nil:
		return false
	default:
		if n, ok := asNumber(v); ok {
			return n != 0
		}
		return true
	}
}
