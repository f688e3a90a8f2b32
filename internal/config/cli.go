package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Aim           string
	Duration      string
	IdleTimeout   string
	SessionCmd    string
	NoCalendar    bool
	DisableNotify bool
	NoSound       bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Aim:           ctx.String("aim"),
			Duration:      ctx.String("duration"),
			IdleTimeout:   ctx.String("idle-timeout"),
			SessionCmd:    ctx.String("session-cmd"),
			NoCalendar:    ctx.Bool("no-calendar"),
			DisableNotify: ctx.Bool("disable-notification"),
			NoSound:       ctx.Bool("no-sound"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	c.CLI.Aim = strings.TrimSpace(opts.Aim)
	c.CLI.Duration = strings.TrimSpace(opts.Duration)

	if opts.IdleTimeout != "" {
		d, err := parseDuration(opts.IdleTimeout)
		if err != nil {
			return errInvalidCLIDuration.Fmt(opts.IdleTimeout).Wrap(err)
		}

		c.Presence.IdleTimeout = d
	}

	if opts.SessionCmd != "" {
		c.Settings.Cmd = opts.SessionCmd
	}

	if opts.NoCalendar {
		c.Calendar.Enabled = false
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.NoSound {
		c.Sound.Enabled = false
	}

	return nil
}

// parseDuration accepts Go duration strings, or a bare number of minutes.
func parseDuration(s string) (time.Duration, error) {
	dur, err := time.ParseDuration(s)
	if err == nil {
		return dur, nil
	}

	return time.ParseDuration(s + "m")
}
