package config_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/selfremember/internal/config"
	"github.com/ayoisaiah/selfremember/internal/pathutil"
	"github.com/ayoisaiah/selfremember/internal/testutil"
)

// defaultConfig returns a new Config instance with default values.
func defaultConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			DefaultDuration: "15 min",
			DefaultAim:      "Engaged in activity",
		},
		Presence: config.PresenceConfig{
			IdleTimeout:  5 * time.Minute,
			PollInterval: time.Second,
		},
		Sound: config.SoundConfig{
			Enabled: true,
		},
		Notifications: config.NotificationConfig{
			Enabled: true,
		},
		Calendar: config.CalendarConfig{
			CalendarID:      "primary",
			ReminderMinutes: 5,
			Timeout:         15 * time.Second,
		},
		Display: config.DisplayConfig{
			DarkTheme: true,
		},
		Log: config.LogConfig{
			Level: "info",
		},
	}
}

func setOption(fn func(c *config.Config)) config.Option {
	return func(c *config.Config) error {
		fn(c)
		return nil
	}
}

func TestViperWriteConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	require.NoError(t, err)

	assert.Equal(t, defaultConfig(), cfg)

	b, err := os.ReadFile(configPath)
	require.NoError(t, err, "default config was not written")

	var written map[string]map[string]any

	require.NoError(t, yaml.Unmarshal(b, &written))

	assert.Equal(t, "15 min", written["session"]["default_duration"])
	assert.Equal(t, "5m0s", written["presence"]["idle_timeout"])
	assert.Equal(t, "primary", written["calendar"]["calendar_id"])
	assert.Equal(t, false, written["calendar"]["enabled"])
}

func TestViperReadConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")

	err := testutil.CopyFile("testdata/modified_config.yml", configPath)
	require.NoError(t, err)

	want := &config.Config{
		Session: config.SessionConfig{
			DefaultDuration: "25 min",
			DefaultAim:      "Writing the quarterly report",
		},
		Presence: config.PresenceConfig{
			IdleTimeout:  10 * time.Minute,
			PollInterval: 2 * time.Second,
			SystemIdle:   true,
		},
		Calendar: config.CalendarConfig{
			CalendarID:      "work@example.com",
			TimeZone:        "Europe/London",
			ReminderMinutes: 10,
			Timeout:         30 * time.Second,
			Enabled:         true,
			UpdateOnResume:  true,
		},
		Display: config.DisplayConfig{
			DarkTheme:      true,
			TwentyFourHour: true,
		},
		Log: config.LogConfig{
			Level: "debug",
		},
	}

	cfg, err := config.New(
		config.WithViperConfig(configPath),
	)
	require.NoError(t, err)

	assert.Equal(t, want, cfg)
	assert.Equal(t, "25 min", cfg.StartDuration())
	assert.Equal(t, "Writing the quarterly report", cfg.StartAim())
}

func TestValidation(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(c *config.Config)
		errMsg string
	}{
		{
			name:   "unknown duration label",
			modify: func(c *config.Config) { c.Session.DefaultDuration = "2 hours" },
			errMsg: `unknown session duration "2 hours"`,
		},
		{
			name:   "idle timeout too short",
			modify: func(c *config.Config) { c.Presence.IdleTimeout = 30 * time.Second },
			errMsg: "idle timeout must be between",
		},
		{
			name:   "poll interval too long",
			modify: func(c *config.Config) { c.Presence.PollInterval = time.Minute },
			errMsg: "poll interval must be between",
		},
		{
			name:   "negative reminder",
			modify: func(c *config.Config) { c.Calendar.ReminderMinutes = -1 },
			errMsg: "calendar reminder must be between",
		},
		{
			name:   "zero calendar timeout",
			modify: func(c *config.Config) { c.Calendar.Timeout = 0 },
			errMsg: "calendar timeout must be positive",
		},
		{
			name:   "unknown time zone",
			modify: func(c *config.Config) { c.Calendar.TimeZone = "Mars/Olympus" },
			errMsg: `unknown time zone "Mars/Olympus"`,
		},
		{
			name:   "unsupported sound format",
			modify: func(c *config.Config) { c.Sound.End = "gong.txt" },
			errMsg: "invalid sound file format: gong.txt",
		},
		{
			name:   "unknown log level",
			modify: func(c *config.Config) { c.Log.Level = "loud" },
			errMsg: `unknown log level "loud"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "config.yml")

			_, err := config.New(
				config.WithViperConfig(configPath),
				setOption(tc.modify),
			)

			assert.ErrorContains(t, err, tc.errMsg)
		})
	}
}

func TestResolveSound(t *testing.T) {
	require.NoError(t, pathutil.InitializeAt(t.TempDir()))

	soundsDir := pathutil.SoundsDir()
	require.NoError(t, os.MkdirAll(soundsDir, 0o755))

	chime := filepath.Join(soundsDir, "chime.wav")
	require.NoError(t, os.WriteFile(chime, []byte("RIFF"), 0o600))

	got, err := config.ResolveSound("end", "chime")
	require.NoError(t, err)
	assert.Equal(t, chime, got)

	got, err = config.ResolveSound("end", "chime.wav")
	require.NoError(t, err)
	assert.Equal(t, chime, got)

	got, err = config.ResolveSound("end", config.SoundOff)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = config.ResolveSound("start", "gong")
	assert.ErrorContains(t, err, "unknown start sound: gong")

	assert.Equal(t, []string{"chime"}, config.SoundOpts())
}

func TestCLIOverrides(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("aim", "", "")
	set.String("duration", "", "")
	set.String("idle-timeout", "", "")
	set.String("session-cmd", "", "")
	set.Bool("no-calendar", false, "")
	set.Bool("disable-notification", false, "")
	set.Bool("no-sound", false, "")

	require.NoError(t, set.Parse([]string{
		"--aim", " Deep work ",
		"--duration", "45 MIN",
		"--idle-timeout", "12",
		"--session-cmd", "notify-send done",
		"--no-calendar",
		"--no-sound",
	}))

	ctx := cli.NewContext(cli.NewApp(), set, nil)

	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, testutil.CopyFile("testdata/modified_config.yml", configPath))

	cfg, err := config.New(
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)
	require.NoError(t, err)

	assert.Equal(t, "Deep work", cfg.StartAim())
	assert.Equal(t, "45 MIN", cfg.StartDuration())
	assert.Equal(t, 12*time.Minute, cfg.Presence.IdleTimeout)
	assert.Equal(t, "notify-send done", cfg.Settings.Cmd)
	assert.False(t, cfg.Calendar.Enabled)
	assert.False(t, cfg.Sound.Enabled)
	assert.False(t, cfg.Notifications.Enabled)
}

func TestCLIRejectsBadDuration(t *testing.T) {
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("duration", "", "")

	require.NoError(t, set.Parse([]string{"--duration", "forever"}))

	ctx := cli.NewContext(cli.NewApp(), set, nil)

	_, err := config.New(
		config.WithViperConfig(filepath.Join(t.TempDir(), "config.yml")),
		config.WithCLIConfig(ctx),
	)

	assert.ErrorContains(t, err, `unknown session duration "forever"`)
}
