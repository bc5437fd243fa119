package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// addedTimeLayouts lists the accepted forms of Order.AddedTime. Older rows may
// carry seconds.
var addedTimeLayouts = []string{
	AddedTimeLayout,
	"2006-01-02T15:04:05",
}

// ParseDueDate parses a due date of the form Y-M-D. Parts need not be
// zero-padded, but the date must exist on the calendar. The result is
// midnight UTC of that date.
func ParseDueDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid due date %q", s)
	}

	var ymd [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid due date %q: %w", s, err)
		}
		ymd[i] = n
	}

	t := time.Date(ymd[0], time.Month(ymd[1]), ymd[2], 0, 0, 0, 0, time.UTC)
	if t.Year() != ymd[0] || int(t.Month()) != ymd[1] || t.Day() != ymd[2] {
		return time.Time{}, fmt.Errorf("invalid due date %q: no such day", s)
	}
	return t, nil
}

// NormalizeDueDate rewrites a leniently typed due date in DueDateLayout form.
// Input that does not parse is returned trimmed but otherwise unchanged.
func NormalizeDueDate(s string) string {
	t, err := ParseDueDate(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return t.Format(DueDateLayout)
}

// IsCanonicalDueDate reports whether s is a real date already in
// DueDateLayout form. Stored due dates sort as text, so only this form is
// accepted on write.
func IsCanonicalDueDate(s string) bool {
	t, err := ParseDueDate(s)
	return err == nil && t.Format(DueDateLayout) == s
}

// ParseAddedTime parses an added-time stamp as a wall-clock time in loc.
func ParseAddedTime(s string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range addedTimeLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("invalid added time %q: %w", s, lastErr)
}

// FormatAddedTime renders t in AddedTimeLayout, dropping seconds.
func FormatAddedTime(t time.Time) string {
	return t.Truncate(time.Minute).Format(AddedTimeLayout)
}
