package reminder

import (
	"context"
	"time"
)

// Policy decides what Register does when the name is already taken.
type Policy int

const (
	// KeepExisting leaves the registered task alone.
	KeepExisting Policy = iota
	// Replace cancels the registered task and registers the new one.
	Replace
)

// Job is the work run on each firing. A returned error marks the run failed.
type Job func(ctx context.Context) error

// TaskHandle refers to a registered task.
type TaskHandle interface {
	Name() string
	NextRun() time.Time
	Cancel()
}

// Registrar registers named periodic jobs. At most one task exists per name.
type Registrar interface {
	// Register schedules job to first run after initialDelay and every period
	// after that. The boolean reports whether a new task was created; with
	// KeepExisting and a taken name it is false and the existing handle is
	// returned.
	Register(name string, period, initialDelay time.Duration, policy Policy, job Job) (TaskHandle, bool)
}

// Schedule names a periodic job and when it first fires.
type Schedule struct {
	Name   string
	Anchor TimeOfDay
	Period time.Duration
}

// DefaultSchedule is the daily 20:00 pending-orders reminder.
func DefaultSchedule() Schedule {
	return Schedule{Name: DefaultName, Anchor: DefaultAnchor, Period: DefaultPeriod}
}

// Ensure registers job under s, first firing at the next anchor after now.
// A task already registered under the same name is kept.
func Ensure(r Registrar, s Schedule, now time.Time, job Job) (TaskHandle, bool) {
	return r.Register(s.Name, s.Period, NextDelay(now, s.Anchor), KeepExisting, job)
}
