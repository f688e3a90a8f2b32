// Package platform reports how long the machine has gone without user
// input. Not every desktop exposes this, so callers must treat
// ErrIdleUnsupported as a permanent condition.
package platform

import (
	"errors"
	"time"
)

// ErrIdleUnsupported is returned when the OS idle time cannot be read.
var ErrIdleUnsupported = errors.New("system idle time is not available on this platform")

// IdleProvider returns the duration since the last keyboard or mouse input
// anywhere on the desktop.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}

// NewIdleProvider returns the provider for the current platform.
func NewIdleProvider() IdleProvider {
	return newIdleProvider()
}

type unsupported struct{}

func (unsupported) IdleDuration() (time.Duration, error) {
	return 0, ErrIdleUnsupported
}
