// Package report computes derived views over the ledger's collections:
// monthly bucket totals, per-category spend, and paginated activity feeds.
// Everything here is a pure function of the state it is handed.
package report

import "strings"

// cursorSep joins the two cursor components in the external string form.
// It is not escaped: ids generated by this application are UUIDs and cannot
// contain it, but a hand-imported id containing "|" will not round-trip
// through a cursor and pagination restarts from the top for it.
const cursorSep = "|"

// Cursor identifies a position in the globally sorted transaction list: the
// last-seen record's date and id. Externally it travels as a single opaque
// string; internally it stays structured.
type Cursor struct {
	DateISO string
	ID      string
}

// String encodes the cursor into its external form.
func (c Cursor) String() string {
	return c.DateISO + cursorSep + c.ID
}

// ParseCursor decodes an external cursor string. It returns ok=false for an
// empty or malformed token, which callers treat as "start from the top".
func ParseCursor(s string) (Cursor, bool) {
	if s == "" {
		return Cursor{}, false
	}
	parts := strings.SplitN(s, cursorSep, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Cursor{}, false
	}
	return Cursor{DateISO: parts[0], ID: parts[1]}, true
}
