// Package format renders orders for display.
// Every function falls back to the raw value rather than failing.
package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/orders"
)

const (
	clockLayout   = "3:04 PM"
	dateLayout    = "02 Jan 2006"
	dueDateLayout = "Mon, 02 Jan 2006"
)

var printer = message.NewPrinter(language.English)

// Currency renders an amount in rupees with thousands separators,
// e.g. ₹1,234.50. Rounding is half away from zero and stays in decimal, so
// large amounts print exactly.
func Currency(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	sign := ""
	if rest, ok := strings.CutPrefix(fixed, "-"); ok {
		sign, fixed = "-", rest
	}

	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return "₹" + sign + whole + "." + frac
	}
	return "₹" + sign + printer.Sprintf("%d", n) + "." + frac
}

// AddedTime renders a stored added-time stamp relative to now:
// "Today, 3:04 PM", "Yesterday, 3:04 PM" or "02 Jan 2006, 3:04 PM".
func AddedTime(raw string, now time.Time) string {
	t, err := models.ParseAddedTime(raw, now.Location())
	if err != nil {
		return raw
	}

	clock := t.Format(clockLayout)
	switch orders.DaysBetween(t, now) {
	case 0:
		return "Today, " + clock
	case 1:
		return "Yesterday, " + clock
	default:
		return t.Format(dateLayout) + ", " + clock
	}
}

// DueDate renders a stored due date as "Mon, 02 Jan 2006".
func DueDate(raw string) string {
	t, err := models.ParseDueDate(raw)
	if err != nil {
		return raw
	}
	return t.Format(dueDateLayout)
}

// Status returns the badge text for a status.
func Status(s orders.Status) string {
	switch s {
	case orders.Pending:
		return "Pending"
	case orders.AmountReceived:
		return "Amount received"
	case orders.UnpaidComplete:
		return "Unpaid complete"
	case orders.FullyComplete:
		return "FULL ✓"
	default:
		return s.String()
	}
}

// Urgency returns a short marker for a due-date urgency. Normal is blank.
func Urgency(u orders.Urgency) string {
	switch u {
	case orders.Overdue:
		return "OVERDUE"
	case orders.DueToday:
		return "today"
	case orders.DueSoon:
		return "soon"
	default:
		return ""
	}
}

// Sides describes the print layout of an order.
func Sides(o models.Order) string {
	s := "Single sided"
	if o.DoubleSided {
		s = "Double sided"
	}
	if o.Spiral {
		s += ", spiral"
	}
	return s
}
