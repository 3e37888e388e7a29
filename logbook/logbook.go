package logbook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/la1k/qsolog/qso"
	"github.com/la1k/qsolog/store"
)

// versionBump is how far past the current maximum a version timestamp
// is pushed when the wall clock has not advanced. Two mutations of the
// same qso within the clock's resolution would otherwise collide on the
// (qsoid, modified) key.
const versionBump = time.Microsecond

// Logbook translates create/update/delete intents into log appends.
//
// Update and Delete read the qso's current maximum version timestamp
// and then append a strictly greater one; that read-then-append is
// serialized per qso id. The store's primary key remains the backstop
// that rejects a colliding writer outside this process.
type Logbook struct {
	store  *store.Store
	now    func() time.Time
	logger *slog.Logger

	mu      sync.Mutex
	idLocks map[qso.ID]*sync.Mutex
}

// Option configures a Logbook.
type Option func(*Logbook)

// WithClock replaces the wall clock used for version timestamps.
// Used by tests for deterministic histories.
func WithClock(now func() time.Time) Option {
	return func(lb *Logbook) {
		lb.now = now
	}
}

// WithLogger sets the logger for mutation events.
func WithLogger(logger *slog.Logger) Option {
	return func(lb *Logbook) {
		lb.logger = logger
	}
}

// New creates a logbook writing through the given store.
// By default mutations are logged via slog at info level to a discarded
// handler; pass WithLogger to surface them.
func New(s *store.Store, opts ...Option) *Logbook {
	lb := &Logbook{
		store:   s,
		now:     time.Now,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		idLocks: make(map[qso.ID]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(lb)
	}
	return lb
}

// Create records a new QSO and returns its assigned id.
// Fields are canonicalized before storage.
func (lb *Logbook) Create(ctx context.Context, fields qso.Fields, author string) (qso.ID, error) {
	id, err := lb.store.NextID()
	if err != nil {
		return 0, fmt.Errorf("create qso: %w", err)
	}

	f := fields.Canonical()
	v := qso.Version{
		ID:         id,
		Modified:   lb.now().UTC(),
		ModifiedBy: author,
		OpID:       uuid.New(),
		Fields:     &f,
	}
	if err := lb.store.Append(ctx, v); err != nil {
		return 0, fmt.Errorf("create qso: %w", err)
	}

	lb.logger.Info("qso created",
		"qsoid", int64(id),
		"call", f.Call,
		"author", author,
		"op_id", v.OpID.String())
	return id, nil
}

// Update appends a new version of an existing QSO with the given
// fields. The qso must have at least one prior version, but it need not
// be live: updating a deleted qso revives it, since liveness is purely
// a function of the latest version's fields.
func (lb *Logbook) Update(ctx context.Context, id qso.ID, fields qso.Fields, author string) error {
	unlock := lb.lockID(id)
	defer unlock()

	max, err := lb.store.MaxModified(ctx, id)
	if err != nil {
		return fmt.Errorf("update qso %d: %w", id, err)
	}

	f := fields.Canonical()
	v := qso.Version{
		ID:         id,
		Modified:   lb.timestampAfter(max),
		ModifiedBy: author,
		OpID:       uuid.New(),
		Fields:     &f,
	}
	if err := lb.store.Append(ctx, v); err != nil {
		return fmt.Errorf("update qso %d: %w", id, err)
	}

	lb.logger.Info("qso updated",
		"qsoid", int64(id),
		"call", f.Call,
		"author", author,
		"op_id", v.OpID.String())
	return nil
}

// Delete appends a tombstone for an existing QSO. Deleting an
// already-deleted qso appends another tombstone, which leaves the
// live/deleted partition unchanged but still grows history.
func (lb *Logbook) Delete(ctx context.Context, id qso.ID, author string) error {
	unlock := lb.lockID(id)
	defer unlock()

	max, err := lb.store.MaxModified(ctx, id)
	if err != nil {
		return fmt.Errorf("delete qso %d: %w", id, err)
	}

	v := qso.Version{
		ID:         id,
		Modified:   lb.timestampAfter(max),
		ModifiedBy: author,
		OpID:       uuid.New(),
	}
	if err := lb.store.Append(ctx, v); err != nil {
		return fmt.Errorf("delete qso %d: %w", id, err)
	}

	lb.logger.Info("qso deleted",
		"qsoid", int64(id),
		"author", author,
		"op_id", v.OpID.String())
	return nil
}

// Revive undoes the deletion of a QSO by re-appending its most recent
// live version. Has no effect on qsos that are currently live. Needed
// because some contest loggers delete and then re-submit a contact when
// editing it.
func (lb *Logbook) Revive(ctx context.Context, id qso.ID, author string) error {
	unlock := lb.lockID(id)
	defer unlock()

	history, err := lb.store.History(ctx, id)
	if err != nil {
		return fmt.Errorf("revive qso %d: %w", id, err)
	}
	if len(history) == 0 {
		return fmt.Errorf("revive qso %d: %w", id, store.NotFoundError(id))
	}

	latest := history[len(history)-1]
	if !latest.Tombstone() {
		return nil
	}

	// Walk back to the most recent live version. A qso that has only
	// ever held tombstones has nothing to restore.
	var fields *qso.Fields
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].Tombstone() {
			f := *history[i].Fields
			fields = &f
			break
		}
	}
	if fields == nil {
		return nil
	}

	v := qso.Version{
		ID:         id,
		Modified:   lb.timestampAfter(latest.Modified),
		ModifiedBy: author,
		OpID:       uuid.New(),
		Fields:     fields,
	}
	if err := lb.store.Append(ctx, v); err != nil {
		return fmt.Errorf("revive qso %d: %w", id, err)
	}

	lb.logger.Info("qso revived",
		"qsoid", int64(id),
		"call", fields.Call,
		"author", author,
		"op_id", v.OpID.String())
	return nil
}

// timestampAfter returns a version timestamp strictly greater than
// prev: the current wall-clock time, bumped just past prev when the
// clock has not advanced beyond it.
func (lb *Logbook) timestampAfter(prev time.Time) time.Time {
	t := lb.now().UTC()
	if !t.After(prev) {
		t = prev.Add(versionBump)
	}
	return t
}

// lockID serializes mutations of one qso id.
func (lb *Logbook) lockID(id qso.ID) func() {
	lb.mu.Lock()
	l, ok := lb.idLocks[id]
	if !ok {
		l = &sync.Mutex{}
		lb.idLocks[id] = l
	}
	lb.mu.Unlock()

	l.Lock()
	return l.Unlock
}
