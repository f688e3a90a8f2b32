package config

import (
	"strings"
	"time"

	"github.com/ayoisaiah/selfremember/internal/session"
)

var (
	minIdleTimeout = 1 * time.Minute
	maxIdleTimeout = 2 * time.Hour

	minPollInterval = 100 * time.Millisecond
	maxPollInterval = 30 * time.Second

	// Google Calendar accepts reminders up to four weeks ahead.
	minReminder = 0
	maxReminder = 40320

	logLevels = []string{"debug", "info", "warn", "error"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := validateDuration(c.Session.DefaultDuration); err != nil {
		return err
	}

	if c.CLI.Duration != "" {
		if err := validateDuration(c.CLI.Duration); err != nil {
			return err
		}
	}

	if err := c.validatePresence(); err != nil {
		return err
	}

	if err := c.validateCalendar(); err != nil {
		return err
	}

	if err := c.validateSounds(); err != nil {
		return err
	}

	for _, l := range logLevels {
		if strings.EqualFold(c.Log.Level, l) {
			return nil
		}
	}

	return errInvalidLogLevel.Fmt(c.Log.Level)
}

func validateDuration(label string) error {
	if _, known := session.DurationFor(label); !known {
		return errUnknownDuration.Fmt(label, strings.Join(session.Labels(), ", "))
	}

	return nil
}

func (c *Config) validatePresence() error {
	p := c.Presence

	if p.IdleTimeout < minIdleTimeout || p.IdleTimeout > maxIdleTimeout {
		return errInvalidIdleTimeout.Fmt(minIdleTimeout, maxIdleTimeout, p.IdleTimeout)
	}

	if p.PollInterval < minPollInterval || p.PollInterval > maxPollInterval {
		return errInvalidPollInterval.Fmt(minPollInterval, maxPollInterval, p.PollInterval)
	}

	return nil
}

func (c *Config) validateCalendar() error {
	cal := c.Calendar

	if cal.ReminderMinutes < minReminder || cal.ReminderMinutes > maxReminder {
		return errInvalidReminder.Fmt(minReminder, maxReminder, cal.ReminderMinutes)
	}

	if cal.Timeout <= 0 {
		return errInvalidTimeout.Fmt(cal.Timeout)
	}

	if cal.TimeZone != "" {
		if _, err := time.LoadLocation(cal.TimeZone); err != nil {
			return errInvalidTimeZone.Fmt(cal.TimeZone).Wrap(err)
		}
	}

	return nil
}

func (c *Config) validateSounds() error {
	cues := []struct {
		name, value string
	}{
		{"start", c.Sound.Start},
		{"end", c.Sound.End},
		{"resume", c.Sound.Resume},
		{"stop", c.Sound.Stop},
	}

	for _, cue := range cues {
		if _, err := ResolveSound(cue.name, cue.value); err != nil {
			return err
		}
	}

	return nil
}
