package timer

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/selfremember/internal/session"
	"github.com/ayoisaiah/selfremember/internal/timeutil"
)

const appName = "selfremember"

func (m *Model) promptView(s session.Snapshot) string {
	if s.Prompt == "" {
		return ""
	}

	return "\n\n" + m.style.Prompt.Render(s.Prompt)
}

func (m *Model) warningView() string {
	if m.warning == "" {
		return ""
	}

	return "\n\n" + m.style.Warning.Render(m.warning)
}

func (m *Model) formView(s session.Snapshot) string {
	var b strings.Builder

	b.WriteString(m.style.Title.Render(appName))
	b.WriteString(m.promptView(s))
	b.WriteString("\n\n")
	b.WriteString(m.form.View())
	b.WriteString(m.warningView())

	return b.String()
}

func (m *Model) timerView(s session.Snapshot) string {
	var b strings.Builder

	b.WriteString(m.style.Title.Render(appName))
	b.WriteString(m.style.Main.Render(s.Aim))
	b.WriteString(" ")

	if s.State == session.Paused {
		b.WriteString(m.style.Paused.Render("[Paused]"))
	} else {
		end := timeutil.EndTime(time.Now(), s.Remaining)
		format := timeutil.ClockFormat(m.cfg.Display.TwentyFourHour)

		b.WriteString(m.style.Hint.Render("until " + end.Format(format)))
	}

	percent := 0.0
	if s.Total > 0 {
		percent = float64(s.Elapsed) / float64(s.Total)
	}

	b.WriteString("\n\n")
	b.WriteString(m.style.Secondary.Render(timeutil.FormatRemaining(s.Remaining)))
	b.WriteString("\n\n")
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString(m.promptView(s))
	b.WriteString(m.warningView())
	b.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		m.keys.togglePlay,
		m.keys.stop,
		m.keys.quote,
		m.keys.quit,
	}))

	return b.String()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	s := m.ctrl.Snapshot()

	if s.Active() {
		return m.style.Base.Render(m.timerView(s))
	}

	if m.form == nil {
		return ""
	}

	return m.style.Base.Render(m.formView(s))
}
