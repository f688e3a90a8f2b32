// Package presence watches for a user who has walked away from a running
// session. The monitor never changes session state itself; it asks the
// owner of the session to pause.
package presence

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ayoisaiah/selfremember/internal/platform"
	"github.com/ayoisaiah/selfremember/internal/session"
)

// Defaults applied by New.
const (
	DefaultThreshold = 300 * time.Second
	DefaultInterval  = time.Second
)

// Kind distinguishes the requests sent by the monitor.
type Kind int

const (
	// RequestPause asks for a running session to be paused.
	RequestPause Kind = iota + 1
	// RequestActivity reports input seen elsewhere on the desktop.
	RequestActivity
)

func (k Kind) String() string {
	switch k {
	case RequestPause:
		return "pause"
	case RequestActivity:
		return "activity"
	default:
		return "unknown"
	}
}

// Request is delivered to the session owner.
type Request struct {
	At        time.Time
	SessionID string
	Kind      Kind
	IdleFor   time.Duration
}

// Source exposes the latest published session state.
type Source interface {
	Snapshot() session.Snapshot
}

// Options configures a Monitor.
type Options struct {
	Source  Source
	Request func(Request)
	// Idle is optional. When set, input anywhere on the desktop counts as
	// presence.
	Idle      platform.IdleProvider
	Clock     func() time.Time
	Logger    *slog.Logger
	Threshold time.Duration
	Interval  time.Duration
}

// Monitor polls the session at a fixed interval.
type Monitor struct {
	source    Source
	request   func(Request)
	idle      platform.IdleProvider
	clock     func() time.Time
	log       *slog.Logger
	episode   episode
	threshold time.Duration
	interval  time.Duration
}

// episode identifies one stretch of inactivity.
type episode struct {
	lastActive time.Time
	sessionID  string
}

// New returns a monitor. Zero durations take the package defaults.
func New(opts Options) *Monitor {
	m := &Monitor{
		source:    opts.Source,
		request:   opts.Request,
		idle:      opts.Idle,
		clock:     opts.Clock,
		log:       opts.Logger,
		threshold: opts.Threshold,
		interval:  opts.Interval,
	}

	if m.threshold <= 0 {
		m.threshold = DefaultThreshold
	}

	if m.interval <= 0 {
		m.interval = DefaultInterval
	}

	if m.clock == nil {
		m.clock = time.Now
	}

	if m.log == nil {
		m.log = slog.Default()
	}

	if m.request == nil {
		m.request = func(Request) {}
	}

	return m
}

// Run polls until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Poll()
		}
	}
}

// Poll checks the session once.
func (m *Monitor) Poll() {
	s := m.source.Snapshot()
	if s.State != session.Running {
		return
	}

	now := m.clock()

	if m.systemActive(now, s) {
		return
	}

	idleFor := now.Sub(s.LastActiveAt)
	if idleFor <= m.threshold {
		return
	}

	ep := episode{sessionID: s.ID, lastActive: s.LastActiveAt}
	if ep == m.episode {
		return
	}

	m.episode = ep

	m.log.Debug(
		"requesting idle pause",
		slog.String("session_id", s.ID),
		slog.Duration("idle", idleFor),
	)

	m.request(Request{
		Kind:      RequestPause,
		SessionID: s.ID,
		IdleFor:   idleFor,
		At:        now,
	})
}

// systemActive reports whether the desktop has seen input within the
// threshold, and forwards input newer than the session's own record.
func (m *Monitor) systemActive(now time.Time, s session.Snapshot) bool {
	if m.idle == nil {
		return false
	}

	d, err := m.idle.IdleDuration()
	if errors.Is(err, platform.ErrIdleUnsupported) {
		m.log.Warn("system idle detection disabled", slog.Any("error", err))

		m.idle = nil

		return false
	}

	if err != nil {
		m.log.Debug("reading system idle time failed", slog.Any("error", err))

		return false
	}

	if d > m.threshold {
		return false
	}

	if now.Add(-d).Sub(s.LastActiveAt) >= m.interval {
		m.request(Request{
			Kind:      RequestActivity,
			SessionID: s.ID,
			At:        now,
		})
	}

	return true
}
