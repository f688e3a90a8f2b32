package timer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/selfremember/internal/calendar"
	"github.com/ayoisaiah/selfremember/internal/countdown"
	"github.com/ayoisaiah/selfremember/internal/presence"
	"github.com/ayoisaiah/selfremember/internal/session"
)

// sessionCmdMsg reports the exit of the post-session command.
type sessionCmdMsg struct {
	err error
}

// handleTick runs the controller for every second the driver reports.
func (m *Model) handleTick(msg countdown.TickMsg) (tea.Model, tea.Cmd) {
	due, next := m.driver.Handle(msg)

	for range due {
		ev, err := m.ctrl.Tick()
		if err != nil {
			m.driver.Stop()
			return m, nil
		}

		if ev.Type == session.EventExpired {
			return m, m.finish()
		}
	}

	return m, next
}

// finish shows the form again after a session expires and starts the
// post-session command.
func (m *Model) finish() tea.Cmd {
	m.driver.Stop()
	m.resetForm()

	cmds := []tea.Cmd{m.form.Init()}

	if cmdline := m.cfg.Settings.Cmd; cmdline != "" {
		run := m.runCmd
		cmds = append(cmds, func() tea.Msg {
			return sessionCmdMsg{err: run(cmdline)}
		})
	}

	return tea.Batch(cmds...)
}

func (m *Model) handlePresence(msg presence.Request) (tea.Model, tea.Cmd) {
	switch msg.Kind {
	case presence.RequestActivity:
		m.ctrl.RecordActivity()
	case presence.RequestPause:
		s := m.ctrl.Snapshot()

		// a request raised before a manual pause or a new session
		if msg.SessionID != s.ID {
			return m, nil
		}

		// input arrived after the monitor polled
		if s.LastActiveAt.After(msg.At.Add(-msg.IdleFor)) {
			return m, nil
		}

		_, err := m.ctrl.RequestIdlePause(msg.IdleFor)
		if err != nil {
			return m, nil
		}

		m.driver.Stop()
		m.warning = fmt.Sprintf(
			"Paused after %s of inactivity",
			msg.IdleFor.Round(time.Second),
		)
	}

	return m, nil
}

func (m *Model) handleCalendar(msg calendar.Result) (tea.Model, tea.Cmd) {
	if msg.Kind == calendar.Linked {
		_, err := m.ctrl.LinkEvent(msg.SessionID, msg.Ref)
		if err != nil {
			m.log.Debug(
				"calendar event not linked",
				slog.String("session_id", msg.SessionID),
				slog.String("event_ref", msg.Ref),
				slog.Any("error", err),
			)
		}

		return m, nil
	}

	m.warning = fmt.Sprintf("Calendar %s: %v", msg.Kind, msg.Err)

	return m, nil
}

// handleKeyPress applies the session key bindings.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.togglePlay):
		return m, m.togglePlay()

	case key.Matches(msg, m.keys.stop):
		return m, m.stop()

	case key.Matches(msg, m.keys.quote):
		m.ctrl.RefreshPrompt()

	case key.Matches(msg, m.keys.quit):
		return m.quit()
	}

	return m, nil
}

func (m *Model) togglePlay() tea.Cmd {
	if m.ctrl.Snapshot().State == session.Paused {
		ev, err := m.ctrl.Resume()
		if err != nil {
			return nil
		}

		m.warning = ""

		return m.driver.Start(ev.At)
	}

	if _, err := m.ctrl.Pause(); err != nil {
		return nil
	}

	m.driver.Stop()

	return nil
}

func (m *Model) stop() tea.Cmd {
	if _, err := m.ctrl.Stop(); err != nil {
		return nil
	}

	m.driver.Stop()
	m.warning = ""
	m.resetForm()

	return m.form.Init()
}

// quit ends the active session, if any, before leaving.
func (m *Model) quit() (tea.Model, tea.Cmd) {
	if m.ctrl.Snapshot().Active() {
		_, _ = m.ctrl.Stop()
		m.driver.Stop()
	}

	m.quitting = true

	return m, tea.Quit
}

// updateForm forwards msg to the start form while no session is active.
func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.start(m.aim, m.duration)
	case huh.StateAborted:
		return m.quit()
	}

	return m, cmd
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case countdown.TickMsg:
		return m.handleTick(msg)

	case presence.Request:
		return m.handlePresence(msg)

	case calendar.Result:
		return m.handleCalendar(msg)

	case sessionCmdMsg:
		if msg.err != nil {
			m.log.Warn("session command failed", slog.Any("error", msg.err))
			m.warning = "Session command failed: " + msg.err.Error()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)
		m.help.Width = msg.Width

	case tea.MouseMsg:
		m.ctrl.RecordActivity()
		return m, nil

	case tea.KeyMsg:
		m.ctrl.RecordActivity()

		if key.Matches(msg, m.keys.interrupt) {
			return m.quit()
		}

		if m.ctrl.Snapshot().Active() {
			return m.handleKeyPress(msg)
		}
	}

	if m.log.Enabled(context.Background(), slog.LevelDebug) {
		m.log.Debug("form message", slog.String("msg", spew.Sdump(msg)))
	}

	return m.updateForm(msg)
}
