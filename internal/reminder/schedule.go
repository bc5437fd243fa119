// Package reminder runs the daily pending-orders reminder.
//
// Scheduling sits behind the Registrar interface. TimerScheduler is the
// in-process implementation; anything that can run a named periodic job
// (cron, systemd timers) can take its place.
package reminder

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Defaults for the daily reminder.
const (
	DefaultName   = "pending_orders_daily"
	DefaultPeriod = 24 * time.Hour
)

// DefaultAnchor is the local time of day the reminder fires.
var DefaultAnchor = TimeOfDay{Hour: 20, Minute: 0}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" in 24-hour form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}

	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: bad hour", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 || len(m) != 2 {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: bad minute", s)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On returns the anchor on the calendar day of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, day.Location())
}

// NextDelay returns how long to wait from now until the next occurrence of
// anchor: later today if it has not yet passed, otherwise tomorrow. At the
// anchor itself the delay is zero.
func NextDelay(now time.Time, anchor TimeOfDay) time.Duration {
	next := anchor.On(now)
	if now.After(next) {
		next = anchor.On(now.AddDate(0, 0, 1))
	}
	return next.Sub(now)
}
