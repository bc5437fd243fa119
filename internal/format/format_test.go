package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/orders"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "₹0.00"},
		{"5", "₹5.00"},
		{"1234.5", "₹1,234.50"},
		{"1234567.891", "₹1,234,567.89"},
		{"0.125", "₹0.13"},
		{"999.999", "₹1,000.00"},
		{"98765432109876.99", "₹98,765,432,109,876.99"},
		{"-1234.5", "₹-1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestAddedTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "today", raw: "2025-06-10T09:05", want: "Today, 9:05 AM"},
		{name: "yesterday", raw: "2025-06-09T21:30", want: "Yesterday, 9:30 PM"},
		{name: "older", raw: "2025-05-01T12:00", want: "01 May 2025, 12:00 PM"},
		{name: "with seconds", raw: "2025-06-10T13:15:42", want: "Today, 1:15 PM"},
		{name: "unparsable", raw: "last tuesday", want: "last tuesday"},
		{name: "empty", raw: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddedTime(tt.raw, now))
		})
	}
}

func TestDueDate(t *testing.T) {
	assert.Equal(t, "Tue, 10 Jun 2025", DueDate("2025-06-10"))
	assert.Equal(t, "Sun, 01 Jun 2025", DueDate("2025-6-1"))
	assert.Equal(t, "soon", DueDate("soon"))
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Pending", Status(orders.Pending))
	assert.Equal(t, "Amount received", Status(orders.AmountReceived))
	assert.Equal(t, "Unpaid complete", Status(orders.UnpaidComplete))
	assert.Equal(t, "FULL ✓", Status(orders.FullyComplete))

	assert.Equal(t, "OVERDUE", Urgency(orders.Overdue))
	assert.Equal(t, "today", Urgency(orders.DueToday))
	assert.Equal(t, "soon", Urgency(orders.DueSoon))
	assert.Empty(t, Urgency(orders.Normal))

	assert.Equal(t, "Double sided, spiral", Sides(models.Order{DoubleSided: true, Spiral: true}))
	assert.Equal(t, "Single sided", Sides(models.Order{}))
}
