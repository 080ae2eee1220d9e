// Package identity assigns stable identifiers to task records.
//
// Identifiers are random UUIDs assigned once at creation. The bin only
// reveals its membership after a full fetch, so no counter-based scheme is
// possible; random assignment keeps IDs valid across deletes and reorders,
// which positional identity cannot.
package identity

import "github.com/google/uuid"

// NewID returns a new globally unique task identifier. Collision probability
// is negligible for the collection sizes this tracker holds.
func NewID() string {
	return uuid.NewString()
}
