// Package notify delivers user-facing notifications.
//
// A Notification carries a fixed ID; posting a second notification with the
// same ID replaces the first rather than stacking beside it.
package notify

import (
	"context"
	"errors"
	"log/slog"
)

// Notification is a single user-facing message.
type Notification struct {
	ID      int    `json:"id"`
	Channel string `json:"channel"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

// Notifier posts notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier writes notifications to a slog logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs to logger, or to the default
// logger when nil.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify logs n at info level.
func (l *LogNotifier) Notify(ctx context.Context, n Notification) error {
	l.logger.InfoContext(ctx, n.Title,
		"notification_id", n.ID,
		"channel", n.Channel,
		"body", n.Body,
	)
	return nil
}

// Multi posts to every notifier, even after one fails.
type Multi []Notifier

// Notify posts n to each notifier and joins their errors.
func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, notifier := range m {
		if err := notifier.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
