package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/ayoisaiah/selfremember/internal/session"
)

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Duration    string
	IdleMinutes int
	Calendar    bool
}

// WithPromptConfig returns an Option that asks for the main settings when no
// config file exists yet. The answers are written into the new file.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return fmt.Errorf("user prompt failed: %w", err)
		}

		c.prompt = &opts

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		Duration:    DefaultDuration,
		IdleMinutes: int(DefaultIdleTimeout.Minutes()),
	}

	_ = putils.BulletListFromString(`Follow the prompts below to configure selfremember for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'selfremember edit-config' to change any settings.`, " ").
		Render()

	durations := make([]huh.Option[string], 0, len(session.Labels()))
	for _, l := range session.Labels() {
		durations = append(durations, huh.NewOption(l, l).Selected(l == DefaultDuration))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Default session length").
				Options(durations...).
				Value(&opts.Duration),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Pause the session after this long without activity").
				Options(
					huh.NewOption("5 minutes", 5).Selected(true),
					huh.NewOption("10 minutes", 10),
					huh.NewOption("15 minutes", 15),
					huh.NewOption("30 minutes", 30),
				).
				Value(&opts.IdleMinutes),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Mirror each session on Google Calendar?").
				Affirmative("Yes").
				Negative("No").
				Value(&opts.Calendar),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, fmt.Errorf("form interaction failed: %w", err)
	}

	if opts.Calendar {
		pterm.Info.Println("Run 'selfremember auth' once to connect your calendar.")
	}

	return opts, nil
}
