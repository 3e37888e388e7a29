// Package store provides SQLite-backed durable storage for the QSO
// version log.
//
// The store is a faithful append-only ledger:
//   - Append is the only mutation; history rows are never updated or
//     removed, and a duplicate (qsoid, modified) key is a hard
//     VERSION_CONFLICT error rather than a silent overwrite.
//   - CurrentLive and CurrentDeleted are pure read-side projections that
//     resolve, per qsoid, the version with the maximum modified
//     timestamp. Every qsoid with history appears in exactly one of the
//     two sets.
//   - The Sequence issues monotonically increasing QSO ids, initialized
//     at Open from the durable high-water mark.
//
// The store does not interpret field payloads beyond the NULL-ness of
// the key columns. Writers are expected to go through package logbook,
// which owns timestamp generation and the create/update/delete protocol.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
