package session

import "github.com/ayoisaiah/selfremember/internal/apperr"

// These errors report operations that were ignored. None of them leave the
// controller in a different state.
var (
	ErrAlreadyRunning = &apperr.Error{
		Message: "a session is already running",
	}

	ErrNoActiveSession = &apperr.Error{
		Message: "no session is active",
	}

	ErrNotRunning = &apperr.Error{
		Message: "the session is not running",
	}

	ErrNotPaused = &apperr.Error{
		Message: "the session is not paused",
	}

	ErrSessionGone = &apperr.Error{
		Message: "session %s is no longer active",
	}

	ErrAlreadyLinked = &apperr.Error{
		Message: "session is already linked to calendar event %s",
	}
)
