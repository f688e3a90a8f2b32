// Package countdown drives a once-per-interval tick as bubbletea commands.
//
// Ticks are anchored to the wall clock at Start rather than chained off the
// previous tick, so a slow Update loop or a suspended process does not make
// the countdown drift: the next message reports every tick owed since the
// anchor.
package countdown

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID atomic.Int64

func nextID() int {
	return int(lastID.Add(1))
}

// TickMsg is sent when a tick is due.
type TickMsg struct {
	At  time.Time
	ID  int
	tag int
}

// Driver schedules ticks for one countdown. It is not safe for concurrent
// use; it belongs to the bubbletea model that owns it.
type Driver struct {
	anchor    time.Time
	now       func() time.Time
	interval  time.Duration
	id        int
	tag       int
	delivered int
	running   bool
}

// New returns a stopped driver that ticks every interval.
func New(interval time.Duration) *Driver {
	if interval <= 0 {
		interval = time.Second
	}

	return &Driver{
		id:       nextID(),
		interval: interval,
		now:      time.Now,
	}
}

// ID identifies the driver's messages.
func (d *Driver) ID() int {
	return d.id
}

// Running reports whether ticks are being scheduled.
func (d *Driver) Running() bool {
	return d.running
}

// Start anchors the countdown at now and schedules the first tick. Ticks
// scheduled by an earlier Start are discarded.
func (d *Driver) Start(now time.Time) tea.Cmd {
	d.tag++
	d.anchor = now
	d.delivered = 0
	d.running = true

	return d.schedule()
}

// Stop discards any scheduled tick.
func (d *Driver) Stop() {
	d.tag++
	d.running = false
}

// Handle accounts for msg and returns how many ticks are due together with
// the command that schedules the next one. Messages from another driver or
// from before the last Start or Stop report zero ticks and no command.
func (d *Driver) Handle(msg TickMsg) (due int, next tea.Cmd) {
	if !d.running || msg.ID != d.id || msg.tag != d.tag {
		return 0, nil
	}

	owed := int(msg.At.Sub(d.anchor) / d.interval)

	due = owed - d.delivered
	if due < 0 {
		due = 0
	}

	d.delivered += due

	return due, d.schedule()
}

func (d *Driver) schedule() tea.Cmd {
	id, tag := d.id, d.tag
	at := d.anchor.Add(time.Duration(d.delivered+1) * d.interval)

	return tea.Tick(at.Sub(d.now()), func(t time.Time) tea.Msg {
		return TickMsg{ID: id, tag: tag, At: t}
	})
}
