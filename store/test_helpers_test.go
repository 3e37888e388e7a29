package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/la1k/qsolog/qso"
)

// createTestStore creates a fresh on-disk store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testTime is the contact timestamp used by test versions.
var testTime = time.Date(2019, 8, 10, 13, 30, 0, 0, time.UTC)

// makeVersion creates a live test version with minimal required fields.
func makeVersion(id qso.ID, modified time.Time, call string) qso.Version {
	return qso.Version{
		ID:         id,
		Modified:   modified,
		ModifiedBy: "LA9SSA",
		OpID:       uuid.New(),
		Fields: &qso.Fields{
			Contest:  "NRAU-Baltic",
			Time:     testTime,
			Band:     "20m",
			RxFreqHz: 14200000,
			TxFreqHz: 14200000,
			Operator: "LA9SSA",
			Mode:     "SSB",
			Call:     call,
			Sent:     "59",
			Rcvd:     "59",
		},
	}
}

// makeTombstone creates a tombstone test version.
func makeTombstone(id qso.ID, modified time.Time) qso.Version {
	return qso.Version{
		ID:         id,
		Modified:   modified,
		ModifiedBy: "LA9SSA",
		OpID:       uuid.New(),
	}
}
