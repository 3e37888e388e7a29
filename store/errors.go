package store

import (
	"errors"
	"fmt"

	"github.com/la1k/qsolog/qso"
)

// StoreError represents a failure of a log store or gateway operation.
//
// Store errors include:
//   - Version conflict: an append collided with an existing
//     (qsoid, modified) key, which signals a timestamp-generation defect
//     or a racing writer
//   - Record not found: an update/delete referenced a qsoid with no history
//   - ID exhausted: the identifier space ran out (fatal to the store)
//   - Unavailable: a transient backing-store failure; callers may retry,
//     but must regenerate a fresh version timestamp first
type StoreError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// QSOID identifies the affected logical QSO, if any.
	QSOID qso.ID

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeVersionConflict indicates an append with a duplicate
	// (qsoid, modified) key.
	ErrCodeVersionConflict ErrorCode = "VERSION_CONFLICT"

	// ErrCodeNotFound indicates a mutation referenced an unknown qsoid.
	ErrCodeNotFound ErrorCode = "RECORD_NOT_FOUND"

	// ErrCodeIDExhausted indicates the id space is exhausted.
	ErrCodeIDExhausted ErrorCode = "ID_EXHAUSTED"

	// ErrCodeUnavailable indicates a transient backing-store failure.
	ErrCodeUnavailable ErrorCode = "STORE_UNAVAILABLE"
)

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.QSOID != 0 {
		return fmt.Sprintf("%s: %s (qsoid=%d)", e.Code, e.Message, e.QSOID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsVersionConflict returns true if the error is a version conflict.
// Uses errors.As to handle wrapped errors.
func IsVersionConflict(err error) bool {
	return hasCode(err, ErrCodeVersionConflict)
}

// IsNotFound returns true if the error is a record-not-found error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsExhausted returns true if the error is an id-exhaustion error.
func IsExhausted(err error) bool {
	return hasCode(err, ErrCodeIDExhausted)
}

// IsUnavailable returns true if the error is a transient
// backing-store failure.
func IsUnavailable(err error) bool {
	return hasCode(err, ErrCodeUnavailable)
}

func hasCode(err error, code ErrorCode) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// newConflictError creates a StoreError for a duplicate version key.
func newConflictError(id qso.ID, cause error) *StoreError {
	return &StoreError{
		Code:    ErrCodeVersionConflict,
		Message: "version timestamp already exists for this qso",
		QSOID:   id,
		Err:     cause,
	}
}

// NotFoundError creates a StoreError for an unknown qsoid. Exposed so
// the mutation gateway can report not-found conditions it detects
// itself in the same taxonomy.
func NotFoundError(id qso.ID) *StoreError {
	return &StoreError{
		Code:    ErrCodeNotFound,
		Message: "no versions recorded for this qso",
		QSOID:   id,
	}
}

// newUnavailableError wraps a transient backing-store failure.
func newUnavailableError(op string, cause error) *StoreError {
	return &StoreError{
		Code:    ErrCodeUnavailable,
		Message: fmt.Sprintf("backing store failed during %s", op),
		Err:     cause,
	}
}
