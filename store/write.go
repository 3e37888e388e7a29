package store

import (
	"context"
	"errors"
	"fmt"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/la1k/qsolog/qso"
)

// Append inserts one version row into the log. This is the only
// mutation the store exposes; there is no update-in-place and no row
// deletion.
//
// A duplicate (qsoid, modified) key is rejected with a VERSION_CONFLICT
// error rather than silently ignored: it indicates a defect in version
// timestamp generation or two writers racing on the same qso, and the
// caller must regenerate a fresh timestamp before retrying.
func (s *Store) Append(ctx context.Context, v qso.Version) error {
	args, err := versionArgs(v)
	if err != nil {
		return fmt.Errorf("append version: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO qso_log
		(qsoid, modified, modified_by, op_id,
		 contestname, timestamp, band, rxfreq, txfreq,
		 countryprefix, operator, mode, call, snt, rcv, comment, continent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, args...)
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.Code == sqlite3.ErrConstraint {
			return newConflictError(v.ID, err)
		}
		return newUnavailableError("append", err)
	}

	return nil
}
