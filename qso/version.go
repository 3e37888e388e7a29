package qso

import (
	"time"

	"github.com/google/uuid"
)

// ID identifies one logical QSO across its entire version history.
// IDs are strictly increasing, assigned once at creation, and never
// reused for a different logical QSO.
type ID int64

// Version is one immutable row of QSO history.
//
// The pair (ID, Modified) is the primary key of the log: no two versions
// of the same QSO share a Modified timestamp, and the ordering of
// Modified timestamps reflects the order in which mutations were applied.
type Version struct {
	// ID of the logical QSO this version belongs to.
	ID ID

	// Modified is the version timestamp, assigned by the mutation
	// gateway at append time.
	Modified time.Time

	// ModifiedBy records who performed the mutation.
	ModifiedBy string

	// OpID is a unique operation id assigned per mutation, for
	// correlating retries and audit queries across the log.
	OpID uuid.UUID

	// Fields is the full contact payload, or nil for a tombstone.
	Fields *Fields
}

// Tombstone reports whether this version marks the QSO as deleted.
// A version with no fields, or with its key fields (contact time and
// callsign) missing, counts as a tombstone.
func (v Version) Tombstone() bool {
	return v.Fields == nil || !v.Fields.HasKeyFields()
}
