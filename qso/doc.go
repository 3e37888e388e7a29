// Package qso defines the domain types for the versioned QSO log.
//
// A logical QSO is identified by an ID that is assigned once and never
// reused. Its history is a sequence of immutable Versions, each carrying
// either a full set of contact Fields or no fields at all (a tombstone,
// which marks the QSO as deleted as of that version).
//
// The current state of a QSO is the Version with the largest Modified
// timestamp. A QSO is live when that version has a callsign and a contact
// timestamp; otherwise it is deleted. Deletion is itself a version, never
// a removal of history.
package qso
