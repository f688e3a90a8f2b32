// Package calendar mirrors focus sessions as Google Calendar events.
package calendar

import (
	"context"
	"time"
)

// Event is the calendar entry booked for a session.
type Event struct {
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
}

// Service is the remote calendar.
type Service interface {
	// Create books e and returns a reference to the new event.
	Create(ctx context.Context, e Event) (string, error)
	// Patch moves the end of the event to end.
	Patch(ctx context.Context, ref string, end time.Time) error
	// Update replaces the event with e.
	Update(ctx context.Context, ref string, e Event) error
}
