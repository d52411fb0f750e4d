package model

import "github.com/google/uuid"

// NewID returns a fresh entity id. UUIDv7 ids embed a millisecond timestamp
// in their high bits, so their string forms sort lexicographically in
// creation order — the property the transaction sort order relies on for
// tie-breaking.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
