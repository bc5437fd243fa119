package orders

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/printdesk/printdesk/internal/models"
)

// Apply filters orders by query and returns them in display order:
// status rank ascending, then most recently added first. Orders with equal
// keys keep their input order. The input slice is left untouched.
//
// An order whose added time does not parse sorts as the oldest in its group.
func Apply(list []models.Order, query string) []models.Order {
	matched := Filter(list, query)

	type entry struct {
		order models.Order
		rank  int
		added time.Time
	}
	entries := make([]entry, len(matched))
	for i, o := range matched {
		entries[i] = entry{order: o, rank: Classify(o).Rank(), added: recency(o)}
	}

	slices.SortStableFunc(entries, func(a, b entry) int {
		if a.rank != b.rank {
			return a.rank - b.rank
		}
		return b.added.Compare(a.added)
	})

	out := make([]models.Order, len(entries))
	for i, e := range entries {
		out[i] = e.order
	}
	return out
}

// Filter keeps orders whose customer or file name contains query, ignoring
// case. An empty query keeps everything.
func Filter(list []models.Order, query string) []models.Order {
	out := make([]models.Order, 0, len(list))
	if query == "" {
		return append(out, list...)
	}

	folder := cases.Fold()
	needle := folder.String(query)
	for _, o := range list {
		if strings.Contains(folder.String(o.Customer), needle) ||
			strings.Contains(folder.String(o.FileName), needle) {
			out = append(out, o)
		}
	}
	return out
}

// recency is the sort key for added time. Parse failures map to the zero
// time, which precedes every valid stamp.
func recency(o models.Order) time.Time {
	t, err := models.ParseAddedTime(o.AddedTime, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
