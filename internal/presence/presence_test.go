package presence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/selfremember/internal/platform"
	"github.com/ayoisaiah/selfremember/internal/session"
	"github.com/ayoisaiah/selfremember/internal/testutil"
)

var start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeSource struct {
	mu   sync.Mutex
	snap session.Snapshot
}

func (f *fakeSource) Snapshot() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.snap
}

func (f *fakeSource) set(fn func(s *session.Snapshot)) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fn(&f.snap)
}

type recorder struct {
	mu       sync.Mutex
	requests []Request
}

func (r *recorder) add(req Request) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, req)
}

func (r *recorder) kinds() []Kind {
	r.mu.Lock()
	defer r.mu.Unlock()

	kinds := make([]Kind, 0, len(r.requests))
	for _, req := range r.requests {
		kinds = append(kinds, req.Kind)
	}

	return kinds
}

type fakeIdle struct {
	err error
	d   time.Duration
	n   int
}

func (f *fakeIdle) IdleDuration() (time.Duration, error) {
	f.n++

	return f.d, f.err
}

type fixture struct {
	monitor *Monitor
	source  *fakeSource
	rec     *recorder
	now     time.Time
}

func newFixture(idle platform.IdleProvider) *fixture {
	f := &fixture{
		source: &fakeSource{},
		rec:    &recorder{},
		now:    start,
	}

	f.source.snap.Session = session.Session{
		ID:           "a",
		State:        session.Running,
		LastActiveAt: start,
	}

	f.monitor = New(Options{
		Source:  f.source,
		Request: f.rec.add,
		Idle:    idle,
		Clock:   func() time.Time { return f.now },
		Logger:  testutil.DiscardLogger(),
	})

	return f
}

func TestPauseRequestedOncePerEpisode(t *testing.T) {
	f := newFixture(nil)

	f.now = start.Add(300 * time.Second)
	f.monitor.Poll()
	assert.Empty(t, f.rec.kinds(), "exactly the threshold is not idle")

	for i := 1; i <= 10; i++ {
		f.now = start.Add(300*time.Second + time.Duration(i)*time.Second)
		f.monitor.Poll()
	}

	require.Len(t, f.rec.requests, 1)

	req := f.rec.requests[0]
	assert.Equal(t, RequestPause, req.Kind)
	assert.Equal(t, "a", req.SessionID)
	assert.Equal(t, 301*time.Second, req.IdleFor)
}

func TestNoRequestUnlessRunning(t *testing.T) {
	for _, state := range []session.State{session.Idle, session.Paused} {
		f := newFixture(nil)
		f.source.set(func(s *session.Snapshot) { s.State = state })

		f.now = start.Add(time.Hour)
		f.monitor.Poll()

		assert.Empty(t, f.rec.kinds(), state)
	}
}

func TestNewEpisodeAfterResume(t *testing.T) {
	f := newFixture(nil)

	f.now = start.Add(301 * time.Second)
	f.monitor.Poll()

	// the owner paused, the user came back and resumed
	resumed := start.Add(20 * time.Minute)
	f.source.set(func(s *session.Snapshot) { s.LastActiveAt = resumed })

	f.now = resumed.Add(10 * time.Second)
	f.monitor.Poll()

	f.now = resumed.Add(301 * time.Second)
	f.monitor.Poll()

	assert.Equal(t, []Kind{RequestPause, RequestPause}, f.rec.kinds())
}

func TestNewEpisodeForNewSession(t *testing.T) {
	f := newFixture(nil)

	f.now = start.Add(301 * time.Second)
	f.monitor.Poll()

	f.source.set(func(s *session.Snapshot) { s.ID = "b" })
	f.monitor.Poll()

	assert.Equal(t, []Kind{RequestPause, RequestPause}, f.rec.kinds())
}

func TestSystemActivityPreventsPause(t *testing.T) {
	idle := &fakeIdle{d: 2 * time.Second}
	f := newFixture(idle)

	f.now = start.Add(10 * time.Minute)
	f.monitor.Poll()

	require.Len(t, f.rec.requests, 1)
	assert.Equal(t, RequestActivity, f.rec.requests[0].Kind)

	// desktop input older than the session's own record is not forwarded
	f.source.set(func(s *session.Snapshot) { s.LastActiveAt = f.now })
	f.monitor.Poll()

	assert.Len(t, f.rec.requests, 1)
}

func TestSystemIdleStillPauses(t *testing.T) {
	idle := &fakeIdle{d: 10 * time.Minute}
	f := newFixture(idle)

	f.now = start.Add(10 * time.Minute)
	f.monitor.Poll()

	assert.Equal(t, []Kind{RequestPause}, f.rec.kinds())
}

func TestUnsupportedIdleIsDisabled(t *testing.T) {
	idle := &fakeIdle{err: platform.ErrIdleUnsupported}
	f := newFixture(idle)

	f.now = start.Add(time.Minute)
	f.monitor.Poll()
	f.monitor.Poll()

	assert.Equal(t, 1, idle.n)
	assert.Nil(t, f.monitor.idle)
}

func TestIdleErrorsFallBackToSession(t *testing.T) {
	idle := &fakeIdle{err: errors.New("no display")}
	f := newFixture(idle)

	f.now = start.Add(301 * time.Second)
	f.monitor.Poll()

	assert.Equal(t, []Kind{RequestPause}, f.rec.kinds())
	assert.NotNil(t, f.monitor.idle)
}

func TestRunStopsWithContext(t *testing.T) {
	source := &fakeSource{}
	source.snap.Session = session.Session{
		ID:           "a",
		State:        session.Running,
		LastActiveAt: time.Now().Add(-time.Hour),
	}

	requests := make(chan Request, 1)

	m := New(Options{
		Source:   source,
		Request:  func(r Request) { requests <- r },
		Interval: 5 * time.Millisecond,
		Logger:   testutil.DiscardLogger(),
	})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})

	go func() {
		m.Run(ctx)
		close(done)
	}()

	select {
	case r := <-requests:
		assert.Equal(t, RequestPause, r.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("no pause request")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not stop")
	}
}
