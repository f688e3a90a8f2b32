package app

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/selfremember/internal/calendar"
	"github.com/ayoisaiah/selfremember/internal/notify"
	"github.com/ayoisaiah/selfremember/internal/pathutil"
	"github.com/ayoisaiah/selfremember/internal/platform"
	"github.com/ayoisaiah/selfremember/internal/presence"
	"github.com/ayoisaiah/selfremember/internal/session"
	"github.com/ayoisaiah/selfremember/internal/sound"
	"github.com/ayoisaiah/selfremember/report"
	"github.com/ayoisaiah/selfremember/store"
	"github.com/ayoisaiah/selfremember/timer"
)

const shutdownTimeout = 5 * time.Second

// defaultAction runs the interactive session screen.
func defaultAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, true)
	if err != nil {
		return err
	}

	// the open database doubles as the single-instance lock
	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer db.Close()

	logger := slog.Default()

	var p *tea.Program

	send := func(msg tea.Msg) {
		if p != nil {
			p.Send(msg)
		}
	}

	bridge := calendar.NewBridge(calendar.BridgeOptions{
		Service:        calendarService(ctx.Context, cfg, db),
		Report:         func(r calendar.Result) { send(r) },
		Logger:         logger,
		Timeout:        cfg.Calendar.Timeout,
		UpdateOnResume: cfg.Calendar.UpdateOnResume,
	})

	if bridge.Enabled() {
		logger.Info(
			"calendar sync enabled",
			slog.String("calendar_id", cfg.Calendar.CalendarID),
		)
	}

	ctrl := session.NewController(session.Options{
		Quotes:   loadQuotes(logger),
		Cues:     sound.New(cfg.Sound, logger),
		Calendar: bridge,
		Notifier: notify.New(cfg.Notifications.Enabled, "", logger),
		Logger:   logger,
	})

	statusDone := make(chan struct{})
	events := ctrl.Subscribe(16)

	go func() {
		timer.NewStatusWriter(pathutil.StatusFilePath(), logger).Run(events)
		close(statusDone)
	}()

	model := timer.New(timer.Options{
		Controller: ctrl,
		Config:     cfg,
		Logger:     logger,
		AutoStart:  cfg.CLI.Aim != "",
	})

	p = tea.NewProgram(model, tea.WithMouseAllMotion())

	var idle platform.IdleProvider
	if cfg.Presence.SystemIdle {
		idle = platform.NewIdleProvider()
	}

	monitor := presence.New(presence.Options{
		Source:    ctrl,
		Request:   func(r presence.Request) { send(r) },
		Idle:      idle,
		Logger:    logger,
		Threshold: cfg.Presence.IdleTimeout,
		Interval:  cfg.Presence.PollInterval,
	})

	monitorCtx, cancel := context.WithCancel(ctx.Context)

	go monitor.Run(monitorCtx)

	_, err = p.Run()

	cancel()

	waitCtx, cancelWait := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelWait()

	if werr := bridge.Wait(waitCtx); werr != nil {
		report.Warn("Some calendar updates did not finish: %v", werr)
	}

	ctrl.Close()
	<-statusDone

	return err
}
