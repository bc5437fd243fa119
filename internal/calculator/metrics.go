package calculator

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/printdesk/printdesk/internal/models"
)

// MonthPrefixLayout formats the calendar month that AddedTime is matched
// against.
const MonthPrefixLayout = "2006-01"

// Metrics are the dashboard totals derived from the full order set.
type Metrics struct {
	TotalRevenue  decimal.Decimal // received amounts, all time
	MonthRevenue  decimal.Decimal // received amounts added in the current month
	TotalOrders   int
	PendingOrders int // orders not yet completed, paid or not
}

// Aggregate computes Metrics over orders as of now.
//
// Revenue counts only orders whose amount has been received. Month revenue
// matches AddedTime by its "YYYY-MM" prefix, so a malformed stamp simply does
// not match. The result does not depend on input order.
func Aggregate(orders []models.Order, now time.Time) Metrics {
	month := now.Format(MonthPrefixLayout)
	m := Metrics{
		TotalRevenue: decimal.Zero,
		MonthRevenue: decimal.Zero,
		TotalOrders:  len(orders),
	}

	for _, o := range orders {
		if !o.Completed {
			m.PendingOrders++
		}
		if !o.AmountReceived {
			continue
		}
		m.TotalRevenue = m.TotalRevenue.Add(o.Amount)
		if strings.HasPrefix(o.AddedTime, month) {
			m.MonthRevenue = m.MonthRevenue.Add(o.Amount)
		}
	}

	return m
}

// PendingCount returns the number of orders that are not completed.
func PendingCount(orders []models.Order) int {
	n := 0
	for _, o := range orders {
		if !o.Completed {
			n++
		}
	}
	return n
}
