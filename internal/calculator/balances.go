package calculator

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/printdesk/printdesk/internal/models"
)

// CustomerBalance is the amount a customer still owes across their orders.
type CustomerBalance struct {
	Customer string
	Owed     decimal.Decimal // sum of amounts not yet received
	Orders   int             // number of unpaid orders
}

// Outstanding groups unpaid orders by customer and returns the balances with
// the largest amount owed first. Names are matched after trimming and case
// folding, but the first spelling seen is the one reported. Ties are ordered
// by name so the result is stable.
func Outstanding(orders []models.Order) []CustomerBalance {
	// Track balances per customer
	balances := make(map[string]*CustomerBalance)
	var keys []string

	for _, o := range orders {
		if o.AmountReceived {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(o.Customer))
		bal, exists := balances[key]
		if !exists {
			bal = &CustomerBalance{Customer: strings.TrimSpace(o.Customer), Owed: decimal.Zero}
			balances[key] = bal
			keys = append(keys, key)
		}
		bal.Owed = bal.Owed.Add(o.Amount)
		bal.Orders++
	}

	result := make([]CustomerBalance, 0, len(keys))
	for _, k := range keys {
		result = append(result, *balances[k])
	}

	slices.SortFunc(result, func(a, b CustomerBalance) int {
		if c := b.Owed.Cmp(a.Owed); c != 0 {
			return c
		}
		return strings.Compare(a.Customer, b.Customer)
	})
	return result
}

// TotalOwed sums the balances.
func TotalOwed(balances []CustomerBalance) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b.Owed)
	}
	return total
}
