// Package config loads, merges and validates selfremember settings from the
// config file, the first-run prompt and command-line flags
package config

import (
	"fmt"
	"io"
	"os"
	"time"
)

type (
	// Config holds all configuration settings.
	Config struct {
		Session       SessionConfig      `mapstructure:"session"`
		Presence      PresenceConfig     `mapstructure:"presence"`
		Sound         SoundConfig        `mapstructure:"sound"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Calendar      CalendarConfig     `mapstructure:"calendar"`
		Display       DisplayConfig      `mapstructure:"display"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Log           LogConfig          `mapstructure:"log"`
		CLI           CLIConfig          `mapstructure:"-"`

		prompt *PromptOptions
	}

	// SessionConfig holds the defaults offered when a session is started.
	SessionConfig struct {
		DefaultDuration string `mapstructure:"default_duration"`
		DefaultAim      string `mapstructure:"default_aim"`
	}

	// PresenceConfig controls the idle detection.
	PresenceConfig struct {
		IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
		PollInterval time.Duration `mapstructure:"poll_interval"`
		SystemIdle   bool          `mapstructure:"system_idle"`
	}

	// SoundConfig names the sound played for each cue. An empty value plays
	// the system beep and "off" silences the cue.
	SoundConfig struct {
		Start   string `mapstructure:"start"`
		End     string `mapstructure:"end"`
		Resume  string `mapstructure:"resume"`
		Stop    string `mapstructure:"stop"`
		Enabled bool   `mapstructure:"enabled"`
	}

	// NotificationConfig holds notification settings.
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// CalendarConfig holds the Google Calendar integration settings.
	CalendarConfig struct {
		CalendarID      string        `mapstructure:"calendar_id"`
		TimeZone        string        `mapstructure:"time_zone"`
		ClientSecret    string        `mapstructure:"client_secret"`
		ReminderMinutes int           `mapstructure:"reminder_minutes"`
		Timeout         time.Duration `mapstructure:"timeout"`
		Enabled         bool          `mapstructure:"enabled"`
		UpdateOnResume  bool          `mapstructure:"update_on_resume"`
	}

	// DisplayConfig holds display-related settings.
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		TwentyFourHour bool `mapstructure:"twenty_four_hour"`
	}

	// SettingsConfig holds miscellaneous settings.
	SettingsConfig struct {
		Cmd string `mapstructure:"cmd"`
	}

	// LogConfig holds logging settings.
	LogConfig struct {
		Level string `mapstructure:"level"`
	}

	// CLIConfig holds values that only come from the command line.
	CLIConfig struct {
		Aim      string
		Duration string
	}

	// Option is a function that modifies Config.
	Option func(*Config) error
)

const Version = "v0.3.0"

// SoundOff disables a cue.
const SoundOff = "off"

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config and applies options in order.
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// StartDuration returns the duration label a new session should use.
func (c *Config) StartDuration() string {
	if c.CLI.Duration != "" {
		return c.CLI.Duration
	}

	return c.Session.DefaultDuration
}

// StartAim returns the aim a new session is prefilled with.
func (c *Config) StartAim() string {
	if c.CLI.Aim != "" {
		return c.CLI.Aim
	}

	return c.Session.DefaultAim
}

func (c *Config) String() string {
	return fmt.Sprintf("%+v", *c)
}
