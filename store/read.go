package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/la1k/qsolog/qso"
)

// latestJoin resolves, per qsoid, the row with the maximum modified
// timestamp. The (qsoid, modified) primary key guarantees the join
// matches exactly one row per qsoid.
const latestJoin = `
	FROM qso_log q
	JOIN (
		SELECT qsoid, MAX(modified) AS modified
		FROM qso_log
		GROUP BY qsoid
	) latest ON q.qsoid = latest.qsoid AND q.modified = latest.modified`

// History returns every recorded version of one qso, oldest first.
// Returns an empty slice (not nil) for a qsoid with no history; raw
// history reads do not distinguish "never created" from "no rows".
func (s *Store) History(ctx context.Context, id qso.ID) ([]qso.Version, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+versionColumns+`
		FROM qso_log
		WHERE qsoid = ?
		ORDER BY modified ASC
	`, int64(id))
	if err != nil {
		return nil, newUnavailableError("read history", err)
	}
	defer rows.Close()

	return collectVersions(rows)
}

// ReadAll returns the entire version log with deterministic ordering:
// qsoid ascending, then modified ascending.
func (s *Store) ReadAll(ctx context.Context) ([]qso.Version, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+versionColumns+`
		FROM qso_log
		ORDER BY qsoid ASC, modified ASC
	`)
	if err != nil {
		return nil, newUnavailableError("read log", err)
	}
	defer rows.Close()

	return collectVersions(rows)
}

// CurrentLive returns the current version of every live qso: for each
// qsoid the version with the maximum modified timestamp, retained only
// when its call and contact timestamp are populated.
//
// This is a pure projection recomputed on every call; it always
// reflects the most recently committed appends.
func (s *Store) CurrentLive(ctx context.Context) ([]qso.Version, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+qualifiedVersionColumns+latestJoin+`
		WHERE q.call IS NOT NULL AND q.timestamp IS NOT NULL
		ORDER BY q.qsoid ASC
	`)
	if err != nil {
		return nil, newUnavailableError("read live qsos", err)
	}
	defer rows.Close()

	return collectVersions(rows)
}

// CurrentDeleted returns the ids of every qso whose current version is
// a tombstone. Together with CurrentLive this partitions all qsoids
// that have at least one version: each appears in exactly one of the
// two sets.
func (s *Store) CurrentDeleted(ctx context.Context) ([]qso.ID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT q.qsoid`+latestJoin+`
		WHERE q.call IS NULL OR q.timestamp IS NULL
		ORDER BY q.qsoid ASC
	`)
	if err != nil {
		return nil, newUnavailableError("read deleted qsos", err)
	}
	defer rows.Close()

	ids := []qso.ID{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan deleted qsoid: %w", err)
		}
		ids = append(ids, qso.ID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted qsoids: %w", err)
	}

	return ids, nil
}

// LookupID resolves the id of the live qso matching a contact timestamp
// and callsign, the natural key upstream contest loggers use when they
// reference a previously submitted contact. Returns a RECORD_NOT_FOUND
// error when no live qso matches.
func (s *Store) LookupID(ctx context.Context, contactTime time.Time, call string) (qso.ID, error) {
	key := (qso.Fields{Time: contactTime, Call: call}).Canonical()

	var id int64
	err := s.db.QueryRowContext(ctx, `
		SELECT q.qsoid`+latestJoin+`
		WHERE q.timestamp = ? AND q.call = ?
		ORDER BY q.qsoid ASC
		LIMIT 1
	`, key.Time.Format(contactTimeFormat), key.Call).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &StoreError{
			Code:    ErrCodeNotFound,
			Message: fmt.Sprintf("no live qso at %s with call %s", key.Time.Format(contactTimeFormat), key.Call),
		}
	}
	if err != nil {
		return 0, newUnavailableError("lookup qsoid", err)
	}

	return qso.ID(id), nil
}

// MaxModified returns the current maximum version timestamp for a qso.
// Returns a RECORD_NOT_FOUND error when the qsoid has no history.
func (s *Store) MaxModified(ctx context.Context, id qso.ID) (time.Time, error) {
	var max sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(modified) FROM qso_log WHERE qsoid = ?
	`, int64(id)).Scan(&max)
	if err != nil {
		return time.Time{}, newUnavailableError("read max modified", err)
	}
	if !max.Valid {
		return time.Time{}, NotFoundError(id)
	}
	return time.Unix(0, max.Int64).UTC(), nil
}

// qualifiedVersionColumns is versionColumns with the q alias, for the
// latestJoin queries.
const qualifiedVersionColumns = `q.qsoid, q.modified, q.modified_by, q.op_id,
	q.contestname, q.timestamp, q.band, q.rxfreq, q.txfreq,
	q.countryprefix, q.operator, q.mode, q.call, q.snt, q.rcv, q.comment, q.continent`

// collectVersions drains rows into a slice. Returns an empty slice
// instead of nil when there are no rows.
func collectVersions(rows *sql.Rows) ([]qso.Version, error) {
	versions := []qso.Version{}
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate versions: %w", err)
	}
	return versions, nil
}
