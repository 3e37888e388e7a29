package store

import (
	"database/sql"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/la1k/qsolog/qso"
)

// Sequence issues unique, strictly increasing QSO ids.
//
// The sequence is seeded once at Open from the highest qsoid present in
// the log, so ids survive restarts and are never reassigned to a
// different logical QSO. Gaps are acceptable; reuse is not.
//
// Thread-safety: Sequence is safe for concurrent use (atomic operations).
type Sequence struct {
	last atomic.Int64
}

// newSequenceAt creates a sequence whose next issued id is start+1.
func newSequenceAt(start int64) *Sequence {
	s := &Sequence{}
	s.last.Store(start)
	return s
}

// loadSequence seeds a Sequence from the durable high-water mark.
func loadSequence(db *sql.DB) (*Sequence, error) {
	var max int64
	if err := db.QueryRow("SELECT COALESCE(MAX(qsoid), 0) FROM qso_log").Scan(&max); err != nil {
		return nil, fmt.Errorf("query id high-water mark: %w", err)
	}
	return newSequenceAt(max), nil
}

// Next returns the next QSO id. Calls are linearizable - each call
// returns a unique, increasing value, even under concurrent callers.
//
// Fails only when the id space is exhausted, which is fatal to the
// store as a whole.
func (s *Sequence) Next() (qso.ID, error) {
	for {
		cur := s.last.Load()
		if cur == math.MaxInt64 {
			return 0, &StoreError{
				Code:    ErrCodeIDExhausted,
				Message: "qso id space exhausted",
			}
		}
		if s.last.CompareAndSwap(cur, cur+1) {
			return qso.ID(cur + 1), nil
		}
	}
}

// Current returns the most recently issued id without consuming one.
// Returns 0 if no id has ever been issued.
func (s *Sequence) Current() qso.ID {
	return qso.ID(s.last.Load())
}

// NextID allocates a new QSO id from the store's sequence.
func (s *Store) NextID() (qso.ID, error) {
	return s.seq.Next()
}

// Sequence exposes the store's id sequence, mainly for inspection.
func (s *Store) Sequence() *Sequence {
	return s.seq
}
