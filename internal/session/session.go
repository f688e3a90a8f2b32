// Package session implements the focus session state machine. A Controller
// owns the only Session and is driven by a single goroutine; other
// goroutines observe it through published snapshots and events.
package session

import "time"

// State is the lifecycle state of a session.
type State string

const (
	Idle    State = "idle"
	Running State = "running"
	Paused  State = "paused"
	// Ended is transient: a session that ends is reset to Idle within the
	// same transition.
	Ended State = "ended"
)

// DefaultAim is used when a session is started without an aim.
const DefaultAim = "Engaged in activity"

// Session represents one timed focus interval.
type Session struct {
	StartedAt    time.Time `json:"started_at"`
	LastActiveAt time.Time `json:"last_active_at"`
	ID           string    `json:"id"`
	Aim          string    `json:"aim"`
	State        State     `json:"state"`
	EventRef     string    `json:"event_ref,omitempty"`
	Total        int       `json:"total_seconds"`
	Remaining    int       `json:"remaining_seconds"`
	Elapsed      int       `json:"elapsed_seconds"`
}

// Active reports whether the session is running or paused.
func (s Session) Active() bool {
	return s.State == Running || s.State == Paused
}

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	Session
	Prompt string `json:"prompt"`
}

// Cue identifies a sound played on a transition.
type Cue string

const (
	CueStart  Cue = "start"
	CueEnd    Cue = "end"
	CueResume Cue = "resume"
	CueStop   Cue = "stop"
)

// EventType identifies a controller transition.
type EventType string

const (
	EventStarted    EventType = "started"
	EventTick       EventType = "tick"
	EventPaused     EventType = "paused"
	EventIdlePaused EventType = "idle_paused"
	EventResumed    EventType = "resumed"
	EventStopped    EventType = "stopped"
	EventExpired    EventType = "expired"
	EventLinked     EventType = "linked"
	EventPrompt     EventType = "prompt"
)

// Event describes a transition. Ended holds the session as it was when it
// finished and is only set for EventStopped and EventExpired.
type Event struct {
	At       time.Time
	Type     EventType
	Prompt   string
	Snapshot Snapshot
	Ended    Snapshot
}
