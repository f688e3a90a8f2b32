package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

const (
	keyDefaultDuration      = "session.default_duration"
	keyDefaultAim           = "session.default_aim"
	keyIdleTimeout          = "presence.idle_timeout"
	keyPollInterval         = "presence.poll_interval"
	keySystemIdle           = "presence.system_idle"
	keySoundEnabled         = "sound.enabled"
	keySoundStart           = "sound.start"
	keySoundEnd             = "sound.end"
	keySoundResume          = "sound.resume"
	keySoundStop            = "sound.stop"
	keyNotificationsEnabled = "notifications.enabled"
	keyCalendarEnabled      = "calendar.enabled"
	keyCalendarID           = "calendar.calendar_id"
	keyCalendarTimeZone     = "calendar.time_zone"
	keyCalendarReminder     = "calendar.reminder_minutes"
	keyCalendarTimeout      = "calendar.timeout"
	keyCalendarResume       = "calendar.update_on_resume"
	keyCalendarSecret       = "calendar.client_secret"
	keyDarkTheme            = "display.dark_theme"
	keyTwentyFourHour       = "display.twenty_four_hour"
	keySessionCmd           = "settings.cmd"
	keyLogLevel             = "log.level"
)

// Defaults mirrored by the generated config file.
const (
	DefaultDuration    = "15 min"
	DefaultAim         = "Engaged in activity"
	DefaultIdleTimeout = 5 * time.Minute
	DefaultReminder    = 5
)

// WithViperConfig returns an Option that loads configuration from the yaml
// file at configPath, writing a default file if none exists.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults and prompt values.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyDefaultDuration, DefaultDuration)
	v.SetDefault(keyDefaultAim, DefaultAim)
	v.SetDefault(keyIdleTimeout, DefaultIdleTimeout.String())
	v.SetDefault(keyPollInterval, time.Second.String())
	v.SetDefault(keySystemIdle, false)
	v.SetDefault(keySoundEnabled, true)
	v.SetDefault(keySoundStart, "")
	v.SetDefault(keySoundEnd, "")
	v.SetDefault(keySoundResume, "")
	v.SetDefault(keySoundStop, "")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keyCalendarEnabled, false)
	v.SetDefault(keyCalendarID, "primary")
	v.SetDefault(keyCalendarTimeZone, "")
	v.SetDefault(keyCalendarReminder, DefaultReminder)
	v.SetDefault(keyCalendarTimeout, (15 * time.Second).String())
	v.SetDefault(keyCalendarResume, false)
	v.SetDefault(keyCalendarSecret, "")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keySessionCmd, "")
	v.SetDefault(keyLogLevel, "info")

	if c.prompt != nil {
		v.Set(keyDefaultDuration, c.prompt.Duration)
		v.Set(keyCalendarEnabled, c.prompt.Calendar)
		v.Set(keyIdleTimeout, (time.Duration(c.prompt.IdleMinutes) * time.Minute).String())
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
