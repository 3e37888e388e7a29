package logbook

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/la1k/qsolog/qso"
	"github.com/la1k/qsolog/store"
)

// stepClock hands out wall-clock readings one minute apart, so golden
// histories are stable across runs.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.t
	c.t = c.t.Add(time.Minute)
	return t
}

// dumpState renders the raw log plus both resolver projections as
// plain text. Operation ids are random per run and deliberately left
// out.
func dumpState(t *testing.T, s *store.Store) []byte {
	t.Helper()
	ctx := context.Background()

	all, err := s.ReadAll(ctx)
	require.NoError(t, err)
	live, err := s.CurrentLive(ctx)
	require.NoError(t, err)
	deleted, err := s.CurrentDeleted(ctx)
	require.NoError(t, err)

	var b strings.Builder
	b.WriteString("log:\n")
	for _, v := range all {
		b.WriteString(formatVersion(v))
	}
	b.WriteString("live:\n")
	for _, v := range live {
		b.WriteString(formatVersion(v))
	}
	b.WriteString("deleted:\n")
	for _, id := range deleted {
		fmt.Fprintf(&b, "qsoid=%d\n", int64(id))
	}
	return []byte(b.String())
}

func formatVersion(v qso.Version) string {
	if v.Tombstone() {
		return fmt.Sprintf("qsoid=%d modified=%s by=%s tombstone\n",
			int64(v.ID), v.Modified.Format(time.RFC3339Nano), v.ModifiedBy)
	}
	return fmt.Sprintf("qsoid=%d modified=%s by=%s call=%s band=%s mode=%s time=%s\n",
		int64(v.ID), v.Modified.Format(time.RFC3339Nano), v.ModifiedBy,
		v.Fields.Call, v.Fields.Band, v.Fields.Mode,
		v.Fields.Time.Format(time.RFC3339Nano))
}

// TestGolden_Lifecycle pins the exact log and resolver state produced
// by a create/update/create/delete sequence.
func TestGolden_Lifecycle(t *testing.T) {
	s := createTestStore(t)
	clock := &stepClock{t: time.Date(2019, 8, 10, 13, 30, 0, 0, time.UTC)}
	lb := New(s, WithClock(clock.Now))
	ctx := context.Background()

	first := qso.Fields{
		Time:     time.Date(2019, 8, 10, 12, 0, 0, 0, time.UTC),
		Band:     "20m",
		Mode:     "ssb",
		Call:     "la1k",
		Operator: "LA9SSA",
	}
	id1, err := lb.Create(ctx, first, "LA9SSA")
	require.NoError(t, err)

	second := first
	second.Band = "40m"
	require.NoError(t, lb.Update(ctx, id1, second, "LA9SSA"))

	other := qso.Fields{
		Time:     time.Date(2019, 8, 10, 12, 5, 0, 0, time.UTC),
		Band:     "70cm",
		Mode:     "FM",
		Call:     "LA3WUA",
		Operator: "LA3WUA",
	}
	_, err = lb.Create(ctx, other, "LA3WUA")
	require.NoError(t, err)

	require.NoError(t, lb.Delete(ctx, id1, "LA9SSA"))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "lifecycle", dumpState(t, s))
}
