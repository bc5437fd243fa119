package orders

import (
	"time"

	"github.com/printdesk/printdesk/internal/models"
)

// Urgency is the due-date tier shown next to an order.
type Urgency uint8

const (
	Normal Urgency = iota
	DueSoon
	DueToday
	Overdue
)

// DueSoonDays is the widest gap, in days, still reported as DueSoon.
const DueSoonDays = 3

func (u Urgency) String() string {
	switch u {
	case DueSoon:
		return "due_soon"
	case DueToday:
		return "due_today"
	case Overdue:
		return "overdue"
	default:
		return "normal"
	}
}

// Evaluate returns the urgency of a due date relative to today's calendar
// date. Paid and completed orders are always Normal. A due date that does not
// parse is Normal as well.
func Evaluate(dueDate string, fullyComplete bool, today time.Time) Urgency {
	if fullyComplete {
		return Normal
	}
	due, err := models.ParseDueDate(dueDate)
	if err != nil {
		return Normal
	}

	days := DaysBetween(today, due)
	switch {
	case days < 0:
		return Overdue
	case days == 0:
		return DueToday
	case days <= DueSoonDays:
		return DueSoon
	default:
		return Normal
	}
}

// UrgencyOf evaluates an order's due date.
func UrgencyOf(o models.Order, today time.Time) Urgency {
	return Evaluate(o.DueDate, o.FullyComplete(), today)
}

// DaysBetween counts calendar days from the date of from (in its own
// location) to the date of to. Clock time and DST shifts are ignored.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
