// Package middleware wraps units of work with cross-cutting behaviour.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Operation is a unit of work run by a command or a scheduled task.
type Operation func(ctx context.Context) error

// Logging returns an Operation that logs every call to next with its name,
// duration and any error. Context errors are logged as warnings.
func Logging(name string, next Operation) Operation {
	return func(ctx context.Context) error {
		start := time.Now()

		err := next(ctx)

		duration := time.Since(start).Milliseconds()
		switch {
		case err == nil:
			slog.Debug("Operation completed",
				"operation", name,
				"duration_ms", duration,
			)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			slog.Warn("Operation interrupted",
				"operation", name,
				"error", err,
				"duration_ms", duration,
			)
		default:
			slog.Error("Operation failed",
				"operation", name,
				"error", err,
				"duration_ms", duration,
			)
		}

		return err
	}
}
