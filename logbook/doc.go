// Package logbook is the mutation gateway for the QSO version log: the
// only sanctioned write path.
//
// Create, Update, Delete and Revive each translate into exactly one
// append against the store. The gateway owns id allocation, version
// timestamp generation and tombstone construction; callers never touch
// raw history directly. All failures are surfaced to the caller - the
// gateway performs no silent recovery, and a retried Update or Delete
// always computes a fresh version timestamp.
package logbook
