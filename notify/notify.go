package notify

import (
	"log/slog"

	"github.com/gregdel/pushover"

	"github.com/lunafay/turntable/config"
)

// Notifier sends best-effort push alerts to the owner. With no pushover
// credentials configured it quietly does nothing.
type Notifier struct {
	app       *pushover.Pushover
	recipient *pushover.Recipient
}

func New(cfg config.PushoverConfig) *Notifier {
	if cfg.Token == "" || cfg.Recipient == "" {
		return &Notifier{}
	}
	return &Notifier{
		app:       pushover.New(cfg.Token),
		recipient: pushover.NewRecipient(cfg.Recipient),
	}
}

// StorageFailure alerts the owner that a history append was lost. Failures
// here are only logged; alerting must never take down a request.
func (n *Notifier) StorageFailure(err error) {
	if n.app == nil {
		return
	}
	message := &pushover.Message{
		Title:   "Turntable failed to record a song",
		Message: err.Error(),
	}
	if _, err := n.app.SendMessage(message, n.recipient); err != nil {
		slog.With(slog.Any("error", err)).Error("Failed to send pushover alert")
	}
}
