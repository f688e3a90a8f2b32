package session

import (
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type (
	// Quotes supplies remembrance prompts.
	Quotes interface {
		Random() string
	}

	// Cues plays a short sound. Implementations must not block.
	Cues interface {
		Play(cue Cue)
	}

	// Calendar mirrors the session lifecycle on a remote calendar.
	// Implementations must not block.
	Calendar interface {
		SessionStarted(s Snapshot)
		SessionResumed(s Snapshot, at time.Time)
		SessionEnded(s Snapshot, end time.Time)
	}

	// Notifier surfaces a message outside the application window.
	// Implementations must not block.
	Notifier interface {
		Notify(title, message string)
	}
)

// Options configures a Controller. Nil collaborators are replaced with
// no-ops.
type Options struct {
	Quotes   Quotes
	Cues     Cues
	Calendar Calendar
	Notifier Notifier
	Clock    func() time.Time
	NewID    func() string
	Logger   *slog.Logger
}

// Controller is the session state machine. Its transition methods must be
// called from a single goroutine. Snapshot and Subscribe may be called from
// any goroutine.
type Controller struct {
	quotes    Quotes
	cues      Cues
	calendar  Calendar
	notifier  Notifier
	clock     func() time.Time
	newID     func() string
	log       *slog.Logger
	published atomic.Pointer[Snapshot]
	listeners []chan Event
	prompt    string
	sess      Session
	mu        sync.Mutex
}

// NewController returns an idle controller.
func NewController(opts Options) *Controller {
	c := &Controller{
		quotes:   opts.Quotes,
		cues:     opts.Cues,
		calendar: opts.Calendar,
		notifier: opts.Notifier,
		clock:    opts.Clock,
		newID:    opts.NewID,
		log:      opts.Logger,
	}

	if c.quotes == nil {
		c.quotes = noop{}
	}

	if c.cues == nil {
		c.cues = noop{}
	}

	if c.calendar == nil {
		c.calendar = noop{}
	}

	if c.notifier == nil {
		c.notifier = noop{}
	}

	if c.clock == nil {
		c.clock = time.Now
	}

	if c.newID == nil {
		c.newID = uuid.NewString
	}

	if c.log == nil {
		c.log = slog.Default()
	}

	c.sess.State = Idle
	c.prompt = c.quotes.Random()
	c.publish()

	return c
}

// Snapshot returns the state published after the last transition.
func (c *Controller) Snapshot() Snapshot {
	return *c.published.Load()
}

// Subscribe registers an observer channel. An observer that falls behind
// loses its oldest buffered events, so the latest transition always
// arrives.
func (c *Controller) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}

	ch := make(chan Event, buffer)

	c.mu.Lock()
	c.listeners = append(c.listeners, ch)
	c.mu.Unlock()

	return ch
}

// Close closes every observer channel.
func (c *Controller) Close() {
	c.mu.Lock()
	listeners := c.listeners
	c.listeners = nil
	c.mu.Unlock()

	for _, ch := range listeners {
		close(ch)
	}
}

// Start begins a new session. An empty aim defaults to DefaultAim and an
// unknown duration label to FallbackSeconds. Starting while a session is
// active returns ErrAlreadyRunning and changes nothing.
func (c *Controller) Start(aim, label string) (Event, error) {
	if c.sess.Active() {
		return Event{}, ErrAlreadyRunning
	}

	aim = strings.TrimSpace(aim)
	if aim == "" {
		aim = DefaultAim
	}

	total, known := DurationFor(label)
	if !known {
		c.log.Warn(
			"unrecognised duration, using the fallback",
			slog.String("label", label),
			slog.Int("seconds", total),
		)
	}

	now := c.clock()

	c.sess = Session{
		ID:           c.newID(),
		Aim:          aim,
		State:        Running,
		Total:        total,
		Remaining:    total,
		StartedAt:    now,
		LastActiveAt: now,
	}
	c.prompt = c.quotes.Random()

	c.log.Info(
		"session started",
		slog.String("session_id", c.sess.ID),
		slog.String("aim", aim),
		slog.Int("seconds", total),
	)

	c.cues.Play(CueStart)

	ev := c.emit(Event{Type: EventStarted, At: now})

	c.calendar.SessionStarted(ev.Snapshot)

	return ev, nil
}

// Tick advances a running session by one second. The tick that brings the
// remaining time to zero ends the session.
func (c *Controller) Tick() (Event, error) {
	if c.sess.State != Running {
		return Event{}, ErrNotRunning
	}

	if c.sess.Remaining > 0 {
		c.sess.Remaining--
		c.sess.Elapsed++
	}

	if c.sess.Remaining == 0 {
		return c.expire(), nil
	}

	return c.emit(Event{Type: EventTick, At: c.clock()}), nil
}

// Pause suspends a running session. The caller stops the countdown.
func (c *Controller) Pause() (Event, error) {
	if err := c.requireRunning(); err != nil {
		return Event{}, err
	}

	c.sess.State = Paused

	c.log.Info("session paused", slog.String("session_id", c.sess.ID))

	return c.emit(Event{Type: EventPaused, At: c.clock()}), nil
}

// RequestIdlePause pauses a running session on behalf of the presence
// monitor and notifies the user. Requests that arrive after the session has
// already left the running state are ignored.
func (c *Controller) RequestIdlePause(idleFor time.Duration) (Event, error) {
	if err := c.requireRunning(); err != nil {
		return Event{}, err
	}

	c.sess.State = Paused

	c.log.Info(
		"session paused after inactivity",
		slog.String("session_id", c.sess.ID),
		slog.Duration("idle", idleFor),
	)

	c.notifier.Notify(
		"Session Paused",
		"You have been inactive for too long. Session paused.",
	)

	return c.emit(Event{Type: EventIdlePaused, At: c.clock()}), nil
}

// Resume continues a paused session. The caller restarts the countdown.
func (c *Controller) Resume() (Event, error) {
	if !c.sess.Active() {
		return Event{}, ErrNoActiveSession
	}

	if c.sess.State != Paused {
		return Event{}, ErrNotPaused
	}

	now := c.clock()

	c.sess.State = Running
	c.advanceActivity(now)

	c.log.Info("session resumed", slog.String("session_id", c.sess.ID))

	c.cues.Play(CueResume)

	ev := c.emit(Event{Type: EventResumed, At: now})

	c.calendar.SessionResumed(ev.Snapshot, now)

	return ev, nil
}

// Stop ends the active session early.
func (c *Controller) Stop() (Event, error) {
	if !c.sess.Active() {
		return Event{}, ErrNoActiveSession
	}

	now := c.clock()

	ended := c.end()

	c.log.Info(
		"session stopped",
		slog.String("session_id", ended.ID),
		slog.Int("elapsed", ended.Elapsed),
	)

	c.cues.Play(CueStop)
	c.calendar.SessionEnded(ended, now)

	c.reset()
	c.prompt = c.quotes.Random()

	return c.emit(Event{Type: EventStopped, At: now, Ended: ended}), nil
}

// RecordActivity marks the user as present.
func (c *Controller) RecordActivity() {
	if c.advanceActivity(c.clock()) {
		c.publish()
	}
}

// LinkEvent records the calendar event created for session id. It fails if
// that session has ended or is already linked.
func (c *Controller) LinkEvent(id, ref string) (Event, error) {
	if !c.sess.Active() || c.sess.ID != id {
		return Event{}, ErrSessionGone.Fmt(id)
	}

	if c.sess.EventRef != "" {
		return Event{}, ErrAlreadyLinked.Fmt(c.sess.EventRef)
	}

	c.sess.EventRef = ref

	c.log.Debug(
		"session linked to calendar event",
		slog.String("session_id", id),
		slog.String("event_ref", ref),
	)

	return c.emit(Event{Type: EventLinked, At: c.clock()}), nil
}

// RefreshPrompt picks a new remembrance prompt for display.
func (c *Controller) RefreshPrompt() Event {
	c.prompt = c.quotes.Random()

	return c.emit(Event{Type: EventPrompt, At: c.clock(), Prompt: c.prompt})
}

func (c *Controller) requireRunning() error {
	if !c.sess.Active() {
		return ErrNoActiveSession
	}

	if c.sess.State != Running {
		return ErrNotRunning
	}

	return nil
}

func (c *Controller) expire() Event {
	now := c.clock()

	ended := c.end()

	c.log.Info(
		"session completed",
		slog.String("session_id", ended.ID),
		slog.Int("elapsed", ended.Elapsed),
	)

	c.cues.Play(CueEnd)

	remembrance := c.quotes.Random()

	msg := "Your session has ended."
	if remembrance != "" {
		msg += "\n\n" + remembrance
	}

	c.notifier.Notify("Time's Up", msg)
	c.calendar.SessionEnded(ended, now)

	c.reset()
	c.prompt = remembrance

	return c.emit(Event{
		Type:   EventExpired,
		At:     now,
		Ended:  ended,
		Prompt: remembrance,
	})
}

// end marks the session as ended and returns a copy of it.
func (c *Controller) end() Snapshot {
	c.sess.State = Ended

	return c.snapshot()
}

func (c *Controller) reset() {
	c.sess = Session{State: Idle}
}

func (c *Controller) advanceActivity(now time.Time) bool {
	if !now.After(c.sess.LastActiveAt) {
		return false
	}

	c.sess.LastActiveAt = now

	return true
}

func (c *Controller) snapshot() Snapshot {
	return Snapshot{Session: c.sess, Prompt: c.prompt}
}

func (c *Controller) publish() Snapshot {
	s := c.snapshot()
	c.published.Store(&s)

	return s
}

func (c *Controller) emit(ev Event) Event {
	ev.Snapshot = c.publish()

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ch := range c.listeners {
		select {
		case ch <- ev:
			continue
		default:
		}

		select {
		case <-ch:
		default:
		}

		select {
		case ch <- ev:
		default:
		}
	}

	return ev
}

type noop struct{}

func (noop) Random() string { return "" }
func (noop) Play(Cue) {}
func (noop) SessionStarted(Snapshot) {}
func (noop) SessionResumed(Snapshot, time.Time) {}
func (noop) SessionEnded(Snapshot, time.Time) {}
func (noop) Notify(string, string) {}
