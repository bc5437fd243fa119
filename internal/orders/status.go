// Package orders holds the pure rules applied to an order snapshot: status
// classification, list filtering and ordering, and due-date urgency.
package orders

import "github.com/printdesk/printdesk/internal/models"

// Status is the lifecycle state derived from an order's two flags.
type Status uint8

const (
	Pending Status = iota
	AmountReceived
	UnpaidComplete
	FullyComplete
)

// Statuses lists every status in declaration order.
var Statuses = []Status{Pending, AmountReceived, UnpaidComplete, FullyComplete}

var statusNames = [...]string{
	Pending:        "pending",
	AmountReceived: "amount_received",
	UnpaidComplete: "unpaid_complete",
	FullyComplete:  "fully_complete",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Rank is the list priority of a status; lower ranks are shown first.
// Only FullyComplete is pushed down. The other three share rank 0 even though
// they render differently.
func (s Status) Rank() int {
	if s == FullyComplete {
		return 1
	}
	return 0
}

// statusTable is indexed by [amountReceived][completed].
var statusTable = [2][2]Status{
	{Pending, UnpaidComplete},
	{AmountReceived, FullyComplete},
}

// Classify maps an order's flags to its status.
func Classify(o models.Order) Status {
	return statusTable[b2i(o.AmountReceived)][b2i(o.Completed)]
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
