package calculator

import (
	"slices"
	"time"

	"github.com/printdesk/printdesk/internal/models"
)

// RecentLimit is how many orders the dashboard lists as recent.
const RecentLimit = 5

// Recent returns up to n orders, most recently added first. Orders whose
// added time does not parse come last.
func Recent(orders []models.Order, n int) []models.Order {
	type entry struct {
		order models.Order
		added time.Time
	}
	entries := make([]entry, len(orders))
	for i, o := range orders {
		t, err := models.ParseAddedTime(o.AddedTime, time.UTC)
		if err != nil {
			t = time.Time{}
		}
		entries[i] = entry{order: o, added: t}
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		return b.added.Compare(a.added)
	})

	if n < 0 {
		n = 0
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]models.Order, n)
	for i := range out {
		out[i] = entries[i].order
	}
	return out
}
