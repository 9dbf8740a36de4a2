// Package notify is the user-facing notification side channel. Success and
// failure toasts go through a Notifier so that callers never print directly.
package notify

import (
	"context"

	"github.com/avolkovx/userdesk/internal/logging"
)

// Notifier emits transient user-visible messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier renders notifications as log lines on the terminal.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(msg string) {
	n.log.Info(context.Background(), msg)
}

func (n *LogNotifier) Error(msg string) {
	n.log.Error(context.Background(), msg)
}
