package board

import "log/slog"

// Notifier tells the user that an action failed.
type Notifier interface {
	Alert(action string, err error)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(action string, err error)

func (f NotifierFunc) Alert(action string, err error) {
	f(action, err)
}

// LogNotifier records alerts in the structured log at warn level.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Alert(action string, err error) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("action failed", "action", action, "error", err)
}
