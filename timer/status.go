package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ayoisaiah/selfremember/internal/osutil"
	"github.com/ayoisaiah/selfremember/internal/session"
	"github.com/ayoisaiah/selfremember/internal/timeutil"
	"github.com/ayoisaiah/selfremember/internal/ui"
	"github.com/ayoisaiah/selfremember/store"
)

// Status is the content of the status file.
type Status struct {
	UpdatedAt time.Time `json:"updated_at"`
	// EndTime is only set while the session is running.
	EndTime *time.Time `json:"end_time,omitempty"`
	session.Snapshot
}

// StatusWriter mirrors the active session into the status file.
type StatusWriter struct {
	log  *slog.Logger
	path string
}

// NewStatusWriter returns a writer for the file at path.
func NewStatusWriter(path string, logger *slog.Logger) *StatusWriter {
	if logger == nil {
		logger = slog.Default()
	}

	return &StatusWriter{path: path, log: logger}
}

// Run consumes events until the channel is closed, then removes the file.
func (w *StatusWriter) Run(events <-chan session.Event) {
	defer w.remove()

	for ev := range events {
		if !ev.Snapshot.Active() {
			w.remove()
			continue
		}

		if err := w.write(ev); err != nil {
			w.log.Warn(
				"writing status file failed",
				slog.String("path", w.path),
				slog.Any("error", err),
			)
		}
	}
}

func (w *StatusWriter) write(ev session.Event) error {
	s := Status{
		Snapshot:  ev.Snapshot,
		UpdatedAt: ev.At,
	}

	if s.State == session.Running {
		end := timeutil.EndTime(ev.At, s.Remaining)
		s.EndTime = &end
	}

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(w.path, b, osutil.FilePermission)
}

func (w *StatusWriter) remove() {
	err := os.Remove(w.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		w.log.Warn(
			"removing status file failed",
			slog.String("path", w.path),
			slog.Any("error", err),
		)
	}
}

// ReadStatus returns the status written by a running instance, or nil if
// no session is active.
func ReadStatus(dbPath, statusPath string) (*Status, error) {
	locked, err := store.Locked(dbPath)
	if err != nil {
		return nil, err
	}

	// no other instance holds the database, so nothing is running
	if !locked {
		return nil, nil
	}

	b, err := os.ReadFile(statusPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	var s Status

	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("reading status file: %w", err)
	}

	if !s.Active() {
		return nil, nil
	}

	return &s, nil
}

// SecondsLeft returns the seconds left at now.
func (s *Status) SecondsLeft(now time.Time) int {
	if s.EndTime == nil {
		return s.Session.Remaining
	}

	return max(int(s.EndTime.Sub(now).Seconds()), 0)
}

// ReportStatus prints the session of a running instance, if any.
func ReportStatus(w io.Writer, dbPath, statusPath string) error {
	s, err := ReadStatus(dbPath, statusPath)
	if err != nil || s == nil {
		return err
	}

	tag := ui.Green("[Running]")
	if s.State == session.Paused {
		tag = ui.Yellow("[Paused]")
	}

	_, err = fmt.Fprintf(
		w,
		"%s %s: %s\n",
		tag,
		s.Aim,
		timeutil.FormatRemaining(s.SecondsLeft(time.Now())),
	)

	return err
}
