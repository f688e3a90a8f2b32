package calendar

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/selfremember/internal/session"
)

// Kind classifies a Result.
type Kind int

const (
	// Linked reports the event created for a session.
	Linked Kind = iota + 1
	CreateFailed
	PatchFailed
	UpdateFailed
)

func (k Kind) String() string {
	switch k {
	case Linked:
		return "linked"
	case CreateFailed:
		return "create failed"
	case PatchFailed:
		return "patch failed"
	case UpdateFailed:
		return "update failed"
	default:
		return "unknown"
	}
}

// Result is the outcome of a calendar call.
type Result struct {
	Err       error
	SessionID string
	Ref       string
	Kind      Kind
}

// BridgeOptions configures a Bridge.
type BridgeOptions struct {
	// Service may be nil, which disables the bridge.
	Service Service
	// Report receives every Result. It is called from the bridge's
	// goroutines.
	Report         func(Result)
	Logger         *slog.Logger
	Timeout        time.Duration
	UpdateOnResume bool
}

// Bridge translates session lifecycle calls into calendar requests. None of
// its methods block on the network.
type Bridge struct {
	svc            Service
	report         func(Result)
	log            *slog.Logger
	refs           map[string]string
	creating       map[string]*pendingEnd
	wg             sync.WaitGroup
	timeout        time.Duration
	mu             sync.Mutex
	updateOnResume bool
}

// pendingEnd holds an end time that arrived while the create call for the
// same session was still in flight.
type pendingEnd struct {
	at    time.Time
	ended bool
}

// NewBridge returns a bridge. A zero timeout defaults to 15 seconds.
func NewBridge(opts BridgeOptions) *Bridge {
	b := &Bridge{
		svc:            opts.Service,
		report:         opts.Report,
		log:            opts.Logger,
		timeout:        opts.Timeout,
		updateOnResume: opts.UpdateOnResume,
		refs:           make(map[string]string),
		creating:       make(map[string]*pendingEnd),
	}

	if b.timeout <= 0 {
		b.timeout = 15 * time.Second
	}

	if b.report == nil {
		b.report = func(Result) {}
	}

	if b.log == nil {
		b.log = slog.Default()
	}

	return b
}

// Enabled reports whether a service is configured.
func (b *Bridge) Enabled() bool {
	return b.svc != nil
}

// SessionStarted books an event for s.
func (b *Bridge) SessionStarted(s session.Snapshot) {
	if b.svc == nil {
		return
	}

	b.mu.Lock()
	b.creating[s.ID] = &pendingEnd{}
	b.mu.Unlock()

	e := Event{
		Summary:     s.Aim,
		Description: s.Aim,
		Start:       s.StartedAt,
		End:         s.StartedAt.Add(time.Duration(s.Total) * time.Second),
	}

	b.goWithTimeout(func(ctx context.Context) {
		ref, err := b.svc.Create(ctx, e)

		b.mu.Lock()
		pending := b.creating[s.ID]
		delete(b.creating, s.ID)

		if err == nil && !pending.ended {
			b.refs[s.ID] = ref
		}
		b.mu.Unlock()

		if err != nil {
			b.log.Warn(
				"creating calendar event failed",
				slog.String("session_id", s.ID),
				slog.Any("error", err),
			)

			b.report(Result{Kind: CreateFailed, SessionID: s.ID, Err: err})

			return
		}

		if pending.ended {
			// the session finished before the event existed
			b.patch(ctx, s.ID, ref, pending.at)
			return
		}

		b.log.Debug(
			"calendar event created",
			slog.String("session_id", s.ID),
			slog.String("event_ref", ref),
		)

		b.report(Result{Kind: Linked, SessionID: s.ID, Ref: ref})
	})
}

// SessionResumed moves the booked end of s to reflect the time lost while
// paused. It does nothing unless UpdateOnResume is set.
func (b *Bridge) SessionResumed(s session.Snapshot, at time.Time) {
	if b.svc == nil || !b.updateOnResume {
		return
	}

	ref := b.ref(s)
	if ref == "" {
		return
	}

	e := Event{
		Summary:     s.Aim,
		Description: s.Aim,
		Start:       s.StartedAt,
		End:         at.Add(time.Duration(s.Remaining) * time.Second),
	}

	b.goWithTimeout(func(ctx context.Context) {
		err := b.svc.Update(ctx, ref, e)
		if err == nil {
			return
		}

		b.log.Warn(
			"updating calendar event failed",
			slog.String("session_id", s.ID),
			slog.String("event_ref", ref),
			slog.Any("error", err),
		)

		b.report(Result{Kind: UpdateFailed, SessionID: s.ID, Ref: ref, Err: err})
	})
}

// SessionEnded sets the end of the event booked for s. If the event is
// still being created, the end is applied once it exists.
func (b *Bridge) SessionEnded(s session.Snapshot, end time.Time) {
	if b.svc == nil {
		return
	}

	b.mu.Lock()

	ref := s.EventRef
	if ref == "" {
		ref = b.refs[s.ID]
	}

	delete(b.refs, s.ID)

	if pending, ok := b.creating[s.ID]; ok && ref == "" {
		pending.ended = true
		pending.at = end
		b.mu.Unlock()

		return
	}

	b.mu.Unlock()

	if ref == "" {
		return
	}

	b.goWithTimeout(func(ctx context.Context) {
		b.patch(ctx, s.ID, ref, end)
	})
}

// Wait blocks until every call in flight has returned or ctx is done.
func (b *Bridge) Wait(ctx context.Context) error {
	done := make(chan struct{})

	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bridge) patch(ctx context.Context, id, ref string, end time.Time) {
	err := b.svc.Patch(ctx, ref, end)
	if err == nil {
		b.log.Debug(
			"calendar event closed",
			slog.String("session_id", id),
			slog.String("event_ref", ref),
		)

		return
	}

	b.log.Warn(
		"patching calendar event failed",
		slog.String("session_id", id),
		slog.String("event_ref", ref),
		slog.Any("error", err),
	)

	b.report(Result{Kind: PatchFailed, SessionID: id, Ref: ref, Err: err})
}

func (b *Bridge) ref(s session.Snapshot) string {
	if s.EventRef != "" {
		return s.EventRef
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	return b.refs[s.ID]
}

func (b *Bridge) goWithTimeout(fn func(ctx context.Context)) {
	b.wg.Add(1)

	go func() {
		defer b.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
		defer cancel()

		fn(ctx)
	}()
}
