package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/la1k/qsolog/qso"
)

// contactTimeFormat is how contact timestamps are stored. RFC 3339 with
// nanoseconds is lossless and sorts lexicographically for UTC values.
const contactTimeFormat = time.RFC3339Nano

// versionArgs flattens a version into the qso_log column values, in
// schema order. Empty field values become NULL so that the liveness
// criterion (call and timestamp non-NULL) holds at the SQL level too;
// a tombstone version stores NULL in every field column.
func versionArgs(v qso.Version) ([]any, error) {
	if v.ID <= 0 {
		return nil, fmt.Errorf("marshal version: qsoid must be positive, got %d", v.ID)
	}
	if v.Modified.IsZero() {
		return nil, fmt.Errorf("marshal version: modified timestamp is not set")
	}

	args := make([]any, 0, 17)
	args = append(args,
		int64(v.ID),
		v.Modified.UTC().UnixNano(),
		v.ModifiedBy,
		v.OpID.String(),
	)

	f := v.Fields
	if f == nil {
		f = &qso.Fields{}
	}
	args = append(args,
		nullString(f.Contest),
		nullTime(f.Time),
		nullString(f.Band),
		nullInt64(f.RxFreqHz),
		nullInt64(f.TxFreqHz),
		nullString(f.CountryPrefix),
		nullString(f.Operator),
		nullString(f.Mode),
		nullString(f.Call),
		nullString(f.Sent),
		nullString(f.Rcvd),
		nullString(f.Comment),
		nullString(f.Continent),
	)
	return args, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt64(n int64) any {
	if n == 0 {
		return nil
	}
	return n
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(contactTimeFormat)
}

// versionColumns is the SELECT list matching scanVersion, in schema order.
const versionColumns = `qsoid, modified, modified_by, op_id,
	contestname, timestamp, band, rxfreq, txfreq,
	countryprefix, operator, mode, call, snt, rcv, comment, continent`

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanVersion reads one qso_log row back into a Version. A row whose
// field columns are all NULL comes back with Fields == nil.
func scanVersion(row rowScanner) (qso.Version, error) {
	var (
		id         int64
		modified   int64
		modifiedBy string
		opID       string

		contest, contactTime, band          sql.NullString
		rxFreq, txFreq                      sql.NullInt64
		countryPrefix, operator, mode, call sql.NullString
		sent, rcvd, comment, continent      sql.NullString
	)

	err := row.Scan(
		&id, &modified, &modifiedBy, &opID,
		&contest, &contactTime, &band, &rxFreq, &txFreq,
		&countryPrefix, &operator, &mode, &call,
		&sent, &rcvd, &comment, &continent,
	)
	if err != nil {
		return qso.Version{}, err
	}

	v := qso.Version{
		ID:         qso.ID(id),
		Modified:   time.Unix(0, modified).UTC(),
		ModifiedBy: modifiedBy,
	}

	v.OpID, err = uuid.Parse(opID)
	if err != nil {
		return qso.Version{}, fmt.Errorf("bad op_id %q: %w", opID, err)
	}

	hasFields := contest.Valid || contactTime.Valid || band.Valid ||
		rxFreq.Valid || txFreq.Valid || countryPrefix.Valid ||
		operator.Valid || mode.Valid || call.Valid ||
		sent.Valid || rcvd.Valid || comment.Valid || continent.Valid
	if !hasFields {
		return v, nil
	}

	f := &qso.Fields{
		Contest:       contest.String,
		Band:          band.String,
		RxFreqHz:      rxFreq.Int64,
		TxFreqHz:      txFreq.Int64,
		CountryPrefix: countryPrefix.String,
		Operator:      operator.String,
		Mode:          mode.String,
		Call:          call.String,
		Sent:          sent.String,
		Rcvd:          rcvd.String,
		Comment:       comment.String,
		Continent:     continent.String,
	}
	if contactTime.Valid {
		f.Time, err = time.Parse(contactTimeFormat, contactTime.String)
		if err != nil {
			return qso.Version{}, fmt.Errorf("bad contact timestamp %q: %w", contactTime.String, err)
		}
		f.Time = f.Time.UTC()
	}
	v.Fields = f

	return v, nil
}
