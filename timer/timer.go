// Package timer is the interactive session screen. The Model owns the
// session controller: every transition happens inside Update, and the
// presence monitor and calendar bridge reach it through Program.Send.
package timer

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ayoisaiah/selfremember/internal/config"
	"github.com/ayoisaiah/selfremember/internal/countdown"
	"github.com/ayoisaiah/selfremember/internal/session"
	"github.com/ayoisaiah/selfremember/internal/ui"
)

const (
	padding  = 2
	maxWidth = 80
)

// Options configures a Model.
type Options struct {
	Controller *session.Controller
	Config     *config.Config
	// Countdown defaults to a one second driver.
	Countdown *countdown.Driver
	Logger    *slog.Logger
	// RunCmd runs the post-session command. It defaults to a shell-quoted
	// exec of the command line.
	RunCmd func(cmdline string) error
	// AutoStart begins a session with the configured aim and duration
	// instead of showing the form.
	AutoStart bool
}

// Model is the bubbletea model of the session screen.
type Model struct {
	ctrl     *session.Controller
	cfg      *config.Config
	driver   *countdown.Driver
	form     *huh.Form
	log      *slog.Logger
	runCmd   func(string) error
	style    ui.Style
	keys     keymap
	aim      string
	duration string
	warning  string
	help     help.Model
	progress progress.Model
	auto     bool
	quitting bool
}

// New returns a Model that shows the start form.
func New(opts Options) *Model {
	m := &Model{
		ctrl:     opts.Controller,
		cfg:      opts.Config,
		driver:   opts.Countdown,
		log:      opts.Logger,
		runCmd:   opts.RunCmd,
		auto:     opts.AutoStart,
		style:    ui.NewStyle(opts.Config.Display.DarkTheme),
		keys:     defaultKeymap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}

	if m.driver == nil {
		m.driver = countdown.New(time.Second)
	}

	if m.log == nil {
		m.log = slog.Default()
	}

	if m.runCmd == nil {
		m.runCmd = runSessionCmd
	}

	m.resetForm()

	return m
}

func (m *Model) Init() tea.Cmd {
	if m.auto {
		return m.start(m.cfg.StartAim(), m.cfg.StartDuration())
	}

	return m.form.Init()
}

// resetForm prepares the form for the next session.
func (m *Model) resetForm() {
	m.aim = m.cfg.StartAim()
	m.duration = m.cfg.StartDuration()

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What is your aim for this session?").
				Placeholder(session.DefaultAim).
				Value(&m.aim),
			huh.NewSelect[string]().
				Title("Duration").
				Options(huh.NewOptions(session.Labels()...)...).
				Value(&m.duration),
		),
	).WithShowHelp(true).WithWidth(maxWidth)
}

// start begins a session and returns the command for its first tick.
func (m *Model) start(aim, label string) tea.Cmd {
	ev, err := m.ctrl.Start(aim, label)
	if err != nil {
		m.warning = err.Error()
		return nil
	}

	m.form = nil
	m.warning = ""

	return m.driver.Start(ev.At)
}
