package notification

import (
	"context"
	"log/slog"
)

// Delivery channels for protocol notifications.
const (
	KindEmail  = "EMAIL"
	KindSMS    = "SMS"
	KindSystem = "SYSTEM"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	Title       string
	Body        string
	Destination string
}

// Notifier delivers notifications to downstream channels. The terminal's
// channels are simulated; delivery failures are never fatal to the caller.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier writes notifications to the structured logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification",
		"kind", message.Kind,
		"title", message.Title,
		"destination", message.Destination,
		"body", message.Body,
	)
	return nil
}
