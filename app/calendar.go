package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
	"golang.org/x/oauth2"

	"github.com/ayoisaiah/selfremember/internal/calendar"
	"github.com/ayoisaiah/selfremember/internal/config"
	"github.com/ayoisaiah/selfremember/internal/pathutil"
	"github.com/ayoisaiah/selfremember/report"
	"github.com/ayoisaiah/selfremember/store"
)

// consentTimeout bounds how long the consent flow waits for the browser.
const consentTimeout = 5 * time.Minute

func secretPath(cfg *config.Config) string {
	if cfg.Calendar.ClientSecret != "" {
		return cfg.Calendar.ClientSecret
	}

	return pathutil.ClientSecretPath()
}

// authorize runs the consent flow and saves the resulting token.
func authorize(ctx context.Context, oauthCfg *oauth2.Config, db store.DB) error {
	ctx, cancel := context.WithTimeout(ctx, consentTimeout)
	defer cancel()

	a := &calendar.Authorizer{
		Config: oauthCfg,
		Out:    config.Stdout,
	}

	tok, err := a.Authorize(ctx)
	if err != nil {
		return err
	}

	return calendar.SaveToken(db, tok)
}

// calendarService connects to Google Calendar, asking for consent when no
// token has been saved yet. Any failure disables the calendar for this run.
func calendarService(
	ctx context.Context,
	cfg *config.Config,
	db store.DB,
) calendar.Service {
	if !cfg.Calendar.Enabled {
		return nil
	}

	disable := func(err error) calendar.Service {
		slog.Warn("calendar disabled", slog.Any("error", err))
		report.Warn("Continuing without Google Calendar: %v", err)

		return nil
	}

	oauthCfg, err := calendar.OAuthConfig(secretPath(cfg))
	if err != nil {
		return disable(err)
	}

	ts, err := calendar.TokenSource(ctx, oauthCfg, db)
	if errors.Is(err, calendar.ErrNotAuthorised) {
		if err = authorize(ctx, oauthCfg, db); err == nil {
			ts, err = calendar.TokenSource(ctx, oauthCfg, db)
		}
	}

	if err != nil {
		return disable(err)
	}

	svc, err := calendar.NewGoogleService(ctx, ts, calendar.GoogleOptions{
		CalendarID:      cfg.Calendar.CalendarID,
		TimeZone:        cfg.Calendar.TimeZone,
		ReminderMinutes: cfg.Calendar.ReminderMinutes,
	})
	if err != nil {
		return disable(err)
	}

	return svc
}

// authAction handles the auth command which connects the calendar.
func authAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return err
	}

	oauthCfg, err := calendar.OAuthConfig(secretPath(cfg))
	if err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	if err := authorize(ctx.Context, oauthCfg, db); err != nil {
		return err
	}

	report.Success("Google Calendar connected")

	if !cfg.Calendar.Enabled {
		pterm.Info.Println(
			"Set calendar.enabled to true with 'selfremember edit-config' to record sessions",
		)
	}

	return nil
}

// logoutAction handles the logout command which forgets the saved token.
func logoutAction(_ *cli.Context) error {
	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	if err := db.DeleteCredential(calendar.Account); err != nil {
		return err
	}

	report.Success("Google Calendar credential removed")

	return nil
}
