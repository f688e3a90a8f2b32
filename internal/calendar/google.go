package calendar

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Scope is the only permission requested from the user.
const Scope = gcal.CalendarEventsScope

const reminderMethod = "popup"

// GoogleOptions configures a GoogleService.
type GoogleOptions struct {
	CalendarID string
	// TimeZone is an IANA name. Empty leaves the zone to the calendar.
	TimeZone        string
	ReminderMinutes int
}

// GoogleService books events with the Google Calendar API.
type GoogleService struct {
	events *gcal.EventsService
	opts   GoogleOptions
}

// NewGoogleService returns a service authorised by ts. Extra client
// options are appended after the token source.
func NewGoogleService(
	ctx context.Context,
	ts oauth2.TokenSource,
	opts GoogleOptions,
	clientOpts ...option.ClientOption,
) (*GoogleService, error) {
	if ts != nil {
		clientOpts = append([]option.ClientOption{option.WithTokenSource(ts)}, clientOpts...)
	}

	srv, err := gcal.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errNewService.Wrap(err)
	}

	if opts.CalendarID == "" {
		opts.CalendarID = "primary"
	}

	return &GoogleService{
		events: srv.Events,
		opts:   opts,
	}, nil
}

func (g *GoogleService) Create(ctx context.Context, e Event) (string, error) {
	created, err := g.events.Insert(g.opts.CalendarID, g.buildEvent(e)).
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	return created.Id, nil
}

func (g *GoogleService) Patch(ctx context.Context, ref string, end time.Time) error {
	patch := &gcal.Event{
		End: g.dateTime(end),
	}

	_, err := g.events.Patch(g.opts.CalendarID, ref, patch).
		Context(ctx).
		Do()

	return err
}

func (g *GoogleService) Update(ctx context.Context, ref string, e Event) error {
	_, err := g.events.Update(g.opts.CalendarID, ref, g.buildEvent(e)).
		Context(ctx).
		Do()

	return err
}

func (g *GoogleService) buildEvent(e Event) *gcal.Event {
	return &gcal.Event{
		Summary:     e.Summary,
		Description: e.Description,
		Start:       g.dateTime(e.Start),
		End:         g.dateTime(e.End),
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{
					Method:  reminderMethod,
					Minutes: int64(g.opts.ReminderMinutes),
				},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

func (g *GoogleService) dateTime(t time.Time) *gcal.EventDateTime {
	dt := &gcal.EventDateTime{
		DateTime: t.Format(time.RFC3339),
	}

	if g.opts.TimeZone == "" {
		return dt
	}

	if loc, err := time.LoadLocation(g.opts.TimeZone); err == nil {
		dt.DateTime = t.In(loc).Format(time.RFC3339)
	}

	dt.TimeZone = g.opts.TimeZone

	return dt
}
