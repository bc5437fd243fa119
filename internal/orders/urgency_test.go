package orders

import (
	"testing"
	"time"

	"github.com/printdesk/printdesk/internal/models"
)

func TestEvaluate(t *testing.T) {
	today := time.Date(2025, time.June, 10, 15, 30, 0, 0, time.Local)

	tests := []struct {
		name          string
		dueDate       string
		fullyComplete bool
		want          Urgency
	}{
		{"due today", "2025-06-10", false, DueToday},
		{"one day late", "2025-06-09", false, Overdue},
		{"long overdue", "2024-12-31", false, Overdue},
		{"tomorrow", "2025-06-11", false, DueSoon},
		{"three days out", "2025-06-13", false, DueSoon},
		{"four days out", "2025-06-14", false, Normal},
		{"fully complete and overdue", "2025-06-01", true, Normal},
		{"fully complete and due today", "2025-06-10", true, Normal},
		{"unparsable", "next week", false, Normal},
		{"empty", "", false, Normal},
		{"unpadded", "2025-6-9", false, Overdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.dueDate, tt.fullyComplete, today)
			if got != tt.want {
				t.Errorf("Evaluate(%q, %v) = %v, want %v", tt.dueDate, tt.fullyComplete, got, tt.want)
			}
		})
	}
}

func TestUrgencyOf(t *testing.T) {
	today := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	o := models.Order{DueDate: "2025-06-09", Completed: true}
	if got := UrgencyOf(o, today); got != Overdue {
		t.Errorf("completed but unpaid order should still be Overdue, got %v", got)
	}

	o.AmountReceived = true
	if got := UrgencyOf(o, today); got != Normal {
		t.Errorf("paid and completed order should be Normal, got %v", got)
	}
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2025, time.March, 29, 23, 59, 0, 0, time.UTC)
	to := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	if got := DaysBetween(from, to); got != 3 {
		t.Errorf("DaysBetween = %d, want 3", got)
	}
	if got := DaysBetween(to, from); got != -3 {
		t.Errorf("DaysBetween reversed = %d, want -3", got)
	}
}
