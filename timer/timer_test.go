package timer

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/selfremember/internal/calendar"
	"github.com/ayoisaiah/selfremember/internal/config"
	"github.com/ayoisaiah/selfremember/internal/countdown"
	"github.com/ayoisaiah/selfremember/internal/osutil"
	"github.com/ayoisaiah/selfremember/internal/presence"
	"github.com/ayoisaiah/selfremember/internal/quote"
	"github.com/ayoisaiah/selfremember/internal/session"
	"github.com/ayoisaiah/selfremember/internal/testutil"
	"github.com/ayoisaiah/selfremember/store"
)

type recorder struct {
	ran chan string
}

func (r *recorder) run(cmdline string) error {
	r.ran <- cmdline
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			DefaultDuration: "5 min",
			DefaultAim:      "Write the report",
		},
	}
}

func newModel(t *testing.T, cfg *config.Config, rec *recorder) *Model {
	t.Helper()

	ctrl := session.NewController(session.Options{
		Quotes: quote.New([]string{"Remember yourself"}),
		Logger: testutil.DiscardLogger(),
	})
	t.Cleanup(ctrl.Close)

	opts := Options{
		Controller: ctrl,
		Config:     cfg,
		Countdown:  countdown.New(5 * time.Millisecond),
		Logger:     testutil.DiscardLogger(),
	}

	if rec != nil {
		opts.RunCmd = rec.run
	}

	return New(opts)
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestAutoStart(t *testing.T) {
	cfg := testConfig()
	cfg.CLI.Aim = "Read"
	cfg.CLI.Duration = "25 min"

	m := newModel(t, cfg, nil)
	m.auto = true

	require.NotNil(t, m.Init())

	s := m.ctrl.Snapshot()

	assert.Equal(t, session.Running, s.State)
	assert.Equal(t, "Read", s.Aim)
	assert.Equal(t, 25*60, s.Total)
	assert.Nil(t, m.form)
	assert.True(t, m.driver.Running())
}

func TestFormPrefill(t *testing.T) {
	m := newModel(t, testConfig(), nil)

	assert.Equal(t, "Write the report", m.aim)
	assert.Equal(t, "5 min", m.duration)
	assert.NotNil(t, m.form)
	assert.Contains(t, m.View(), "Remember yourself")
}

func TestTogglePlay(t *testing.T) {
	m := newModel(t, testConfig(), nil)
	m.start("Write", "5 min")

	_, cmd := m.Update(keyPress('p'))
	assert.Nil(t, cmd)
	assert.Equal(t, session.Paused, m.ctrl.Snapshot().State)
	assert.False(t, m.driver.Running())
	assert.Contains(t, m.View(), "[Paused]")

	_, cmd = m.Update(keyPress('p'))
	assert.NotNil(t, cmd)
	assert.Equal(t, session.Running, m.ctrl.Snapshot().State)
	assert.True(t, m.driver.Running())
	assert.Contains(t, m.View(), "5:00 remaining")
}

func TestStopShowsForm(t *testing.T) {
	m := newModel(t, testConfig(), nil)
	m.start("Write", "5 min")

	m.Update(keyPress('s'))

	assert.Equal(t, session.Idle, m.ctrl.Snapshot().State)
	assert.False(t, m.driver.Running())
	assert.NotNil(t, m.form)
}

func TestQuitStopsActiveSession(t *testing.T) {
	m := newModel(t, testConfig(), nil)
	m.start("Write", "5 min")

	_, cmd := m.Update(keyPress('q'))
	require.NotNil(t, cmd)

	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, session.Idle, m.ctrl.Snapshot().State)
	assert.Empty(t, m.View())
}

func TestInterruptWhileIdle(t *testing.T) {
	m := newModel(t, testConfig(), nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)

	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestNewQuote(t *testing.T) {
	m := newModel(t, testConfig(), nil)
	m.start("Write", "5 min")

	events := m.ctrl.Subscribe(4)

	m.Update(keyPress('r'))

	ev := <-events
	assert.Equal(t, session.EventPrompt, ev.Type)
	assert.Equal(t, "Remember yourself", ev.Prompt)
}

func TestIdlePauseRequest(t *testing.T) {
	m := newModel(t, testConfig(), nil)
	m.start("Write", "5 min")

	s := m.ctrl.Snapshot()

	m.Update(presence.Request{
		At:        s.LastActiveAt.Add(6 * time.Minute),
		Kind:      presence.RequestPause,
		SessionID: "another-session",
		IdleFor:   6 * time.Minute,
	})
	assert.Equal(t, session.Running, m.ctrl.Snapshot().State)

	m.Update(presence.Request{
		At:        s.LastActiveAt.Add(6 * time.Minute),
		Kind:      presence.RequestPause,
		SessionID: s.ID,
		IdleFor:   6 * time.Minute,
	})

	assert.Equal(t, session.Paused, m.ctrl.Snapshot().State)
	assert.False(t, m.driver.Running())
	assert.Equal(t, "Paused after 6m0s of inactivity", m.warning)
}

func TestIdlePauseAfterActivityIgnored(t *testing.T) {
	m := newModel(t, testConfig(), nil)
	m.start("Write", "5 min")

	polled := m.ctrl.Snapshot()
	at := polled.LastActiveAt.Add(time.Millisecond)

	// the user comes back between the poll and the pause request
	time.Sleep(2 * time.Millisecond)
	m.Update(presence.Request{Kind: presence.RequestActivity})
	require.True(t, m.ctrl.Snapshot().LastActiveAt.After(polled.LastActiveAt))

	m.Update(presence.Request{
		At:        at,
		Kind:      presence.RequestPause,
		SessionID: polled.ID,
		IdleFor:   at.Sub(polled.LastActiveAt),
	})

	assert.Equal(t, session.Running, m.ctrl.Snapshot().State)
	assert.True(t, m.driver.Running())
	assert.Empty(t, m.warning)
}

func TestActivityRequest(t *testing.T) {
	m := newModel(t, testConfig(), nil)
	m.start("Write", "5 min")

	before := m.ctrl.Snapshot().LastActiveAt

	time.Sleep(2 * time.Millisecond)
	m.Update(presence.Request{Kind: presence.RequestActivity})

	assert.True(t, m.ctrl.Snapshot().LastActiveAt.After(before))
}

func TestCalendarResults(t *testing.T) {
	m := newModel(t, testConfig(), nil)
	m.start("Write", "5 min")

	id := m.ctrl.Snapshot().ID

	m.Update(calendar.Result{Kind: calendar.Linked, SessionID: "stale", Ref: "evt-0"})
	assert.Empty(t, m.ctrl.Snapshot().EventRef)

	m.Update(calendar.Result{Kind: calendar.Linked, SessionID: id, Ref: "evt-1"})
	assert.Equal(t, "evt-1", m.ctrl.Snapshot().EventRef)

	m.Update(calendar.Result{
		Kind:      calendar.PatchFailed,
		SessionID: id,
		Err:       errors.New("offline"),
	})
	assert.Equal(t, "Calendar patch failed: offline", m.warning)
	assert.Contains(t, m.View(), "offline")
}

// drain runs every command produced by cmd and forwards their messages.
func drain(cmd tea.Cmd, out chan<- tea.Msg) {
	if cmd == nil {
		return
	}

	go func() {
		msg := cmd()

		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				drain(c, out)
			}

			return
		}

		out <- msg
	}()
}

func TestTickToExpiry(t *testing.T) {
	cfg := testConfig()
	cfg.Settings.Cmd = "notify-send done"

	rec := &recorder{ran: make(chan string, 1)}
	m := newModel(t, cfg, rec)

	cmd := m.start("Write", "5 min")
	require.NotNil(t, cmd)

	for range 5*60 - 1 {
		_, err := m.ctrl.Tick()
		require.NoError(t, err)
	}

	_, next := m.Update(cmd())

	assert.Equal(t, session.Idle, m.ctrl.Snapshot().State)
	assert.False(t, m.driver.Running())
	assert.NotNil(t, m.form)

	msgs := make(chan tea.Msg, 8)
	drain(next, msgs)

	select {
	case got := <-rec.ran:
		assert.Equal(t, "notify-send done", got)
	case <-time.After(2 * time.Second):
		t.Fatal("session command did not run")
	}
}

func TestTickAdvancesCountdown(t *testing.T) {
	m := newModel(t, testConfig(), nil)

	cmd := m.start("Write", "5 min")

	_, next := m.Update(cmd())

	assert.NotNil(t, next)
	assert.Less(t, m.ctrl.Snapshot().Remaining, 5*60)
}

func TestStaleTickIgnored(t *testing.T) {
	m := newModel(t, testConfig(), nil)

	cmd := m.start("Write", "5 min")
	m.Update(keyPress('p'))

	_, next := m.Update(cmd())

	assert.Nil(t, next)
	assert.Equal(t, 5*60, m.ctrl.Snapshot().Remaining)
}

func TestSessionCmdFailure(t *testing.T) {
	m := newModel(t, testConfig(), nil)

	m.Update(sessionCmdMsg{err: errors.New("exit status 1")})

	assert.Equal(t, "Session command failed: exit status 1", m.warning)
}

func TestRunSessionCmd(t *testing.T) {
	if runtime.GOOS == osutil.Windows {
		t.Skip("relies on POSIX utilities")
	}

	assert.NoError(t, runSessionCmd("true"))
	assert.NoError(t, runSessionCmd(""))
	assert.Error(t, runSessionCmd("false"))
	assert.Error(t, runSessionCmd("echo 'unterminated"))
}

func runningEvent() session.Event {
	return session.Event{
		Type: session.EventTick,
		At:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Snapshot: session.Snapshot{
			Session: session.Session{
				ID:        "s1",
				Aim:       "Write the report",
				State:     session.Running,
				Total:     300,
				Remaining: 120,
				Elapsed:   180,
			},
			Prompt: "Remember yourself",
		},
	}
}

func TestStatusWriterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	w := NewStatusWriter(path, testutil.DiscardLogger())

	ev := runningEvent()
	require.NoError(t, w.write(ev))

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	var s Status
	require.NoError(t, json.Unmarshal(b, &s))

	assert.Equal(t, "Write the report", s.Aim)
	assert.Equal(t, session.Running, s.State)
	assert.Equal(t, 120, s.Session.Remaining)
	require.NotNil(t, s.EndTime)
	assert.True(t, ev.At.Add(2*time.Minute).Equal(*s.EndTime))
}

func TestStatusWriterRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	w := NewStatusWriter(path, testutil.DiscardLogger())

	events := make(chan session.Event)
	done := make(chan struct{})

	go func() {
		w.Run(events)
		close(done)
	}()

	// each send on the unbuffered channel waits for the previous event
	events <- runningEvent()
	events <- runningEvent()

	_, err := os.Stat(path)
	require.NoError(t, err)

	events <- session.Event{Type: session.EventStopped}
	events <- session.Event{Type: session.EventPrompt}

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	events <- runningEvent()
	close(events)
	<-done

	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStatusWriterTickBurst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	w := NewStatusWriter(path, testutil.DiscardLogger())

	ctrl := session.NewController(session.Options{
		Logger: testutil.DiscardLogger(),
	})

	events := ctrl.Subscribe(16)

	_, err := ctrl.Start("Write", "25 min")
	require.NoError(t, err)

	for range 25 * 60 {
		_, err = ctrl.Tick()
		require.NoError(t, err)
	}

	done := make(chan struct{})

	go func() {
		w.Run(events)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		if len(events) > 0 {
			return false
		}

		_, err := os.Stat(path)

		return errors.Is(err, os.ErrNotExist)
	}, time.Second, 5*time.Millisecond)

	ctrl.Close()
	<-done
}

func TestSecondsLeft(t *testing.T) {
	end := time.Date(2026, 3, 1, 9, 2, 0, 0, time.UTC)

	running := &Status{EndTime: &end}
	assert.Equal(t, 60, running.SecondsLeft(end.Add(-time.Minute)))
	assert.Equal(t, 0, running.SecondsLeft(end.Add(time.Minute)))

	paused := &Status{}
	paused.Session.Remaining = 42
	assert.Equal(t, 42, paused.SecondsLeft(end))
}

func TestReportStatus(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "selfremember.db")
	statusPath := filepath.Join(dir, "status.json")

	var buf bytes.Buffer

	require.NoError(t, ReportStatus(&buf, dbPath, statusPath))
	assert.Empty(t, buf.String(), "nothing runs without a database")

	db, err := store.NewClient(dbPath)
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, ReportStatus(&buf, dbPath, statusPath))
	assert.Empty(t, buf.String(), "no status file yet")

	ev := runningEvent()
	ev.Snapshot.State = session.Paused
	require.NoError(t, NewStatusWriter(statusPath, nil).write(ev))

	require.NoError(t, ReportStatus(&buf, dbPath, statusPath))
	assert.Contains(t, buf.String(), "Write the report: 2:00 remaining")
}
