// Package notify shows desktop notifications.
package notify

import (
	"log/slog"

	"github.com/gen2brain/beeep"
)

// Notifier sends notifications in the background.
type Notifier struct {
	log     *slog.Logger
	send    func(title, message, icon string) error
	icon    string
	enabled bool
}

// New returns a notifier. icon may be empty.
func New(enabled bool, icon string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}

	return &Notifier{
		enabled: enabled,
		icon:    icon,
		log:     logger,
		send:    beeep.Notify,
	}
}

// Notify shows message without waiting for the desktop to respond.
func (n *Notifier) Notify(title, message string) {
	if !n.enabled {
		return
	}

	go func() {
		if err := n.send(title, message, n.icon); err != nil {
			n.log.Warn(
				"unable to display notification",
				slog.String("title", title),
				slog.Any("error", err),
			)
		}
	}()
}
