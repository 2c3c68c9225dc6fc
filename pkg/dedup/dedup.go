package dedup

import (
	"context"

	"github.com/dmitrymomot/gallerykit/pkg/fingerprint"
)

// Index maps content fingerprints to the storage name of the first artifact
// stored with that fingerprint, enforcing at-most-one stored copy per
// distinct byte sequence.
//
// Add is the atomic check-then-insert at the heart of duplicate detection:
// concurrent Adds of the same fingerprint must resolve to exactly one
// winner, with every loser receiving the winner's storage name. The
// orchestrator reserves a fingerprint before writing bytes and rolls the
// reservation back with Remove if persistence fails, so the index never
// points at an artifact that was not durably written.
type Index interface {
	// Add inserts the fingerprint→name mapping if absent. It returns the
	// previously stored name and added=false when the fingerprint is
	// already present, or the given name and added=true when the insert
	// won.
	Add(ctx context.Context, fp fingerprint.Fingerprint, storageName string) (existing string, added bool, err error)

	// Lookup returns the storage name mapped to the fingerprint, if any.
	Lookup(ctx context.Context, fp fingerprint.Fingerprint) (string, bool, error)

	// Remove deletes a mapping. Used only to roll back a reservation whose
	// persistence failed; there is no user-facing delete path.
	Remove(ctx context.Context, fp fingerprint.Fingerprint) error

	// Len reports the number of indexed artifacts.
	Len(ctx context.Context) (int, error)
}
