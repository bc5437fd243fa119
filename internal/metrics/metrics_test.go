package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/printdesk/internal/calculator"
)

func TestObserve(t *testing.T) {
	c := New()
	c.Observe(calculator.Metrics{
		TotalRevenue:  decimal.RequireFromString("1234.50"),
		MonthRevenue:  decimal.RequireFromString("200"),
		TotalOrders:   7,
		PendingOrders: 3,
	})

	assert.Equal(t, 7.0, testutil.ToFloat64(c.OrdersTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.OrdersPending))
	assert.Equal(t, 1234.5, testutil.ToFloat64(c.RevenueTotal))
	assert.Equal(t, 200.0, testutil.ToFloat64(c.RevenueMonth))
}

func TestRevenueHelpDescribesReceivedAmounts(t *testing.T) {
	c := New()
	c.RevenueTotal.Set(12)
	c.RevenueMonth.Set(3)

	expected := `
# HELP printdesk_revenue_month Sum of amounts received for orders added this calendar month.
# TYPE printdesk_revenue_month gauge
printdesk_revenue_month 3
# HELP printdesk_revenue_total Sum of amounts received, all time.
# TYPE printdesk_revenue_total gauge
printdesk_revenue_total 12
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected),
		"printdesk_revenue_total", "printdesk_revenue_month"))
}

func TestReminderCounters(t *testing.T) {
	c := New()
	c.ReminderRuns.WithLabelValues(ResultNotified).Inc()
	c.ReminderRuns.WithLabelValues(ResultNotified).Inc()
	c.ReminderRuns.WithLabelValues(ResultIdle).Inc()
	c.ReminderNotifications.Inc()

	expected := `
# HELP printdesk_reminder_runs_total Reminder runs by result.
# TYPE printdesk_reminder_runs_total counter
printdesk_reminder_runs_total{result="idle"} 1
printdesk_reminder_runs_total{result="notified"} 2
`
	require.NoError(t, testutil.CollectAndCompare(c.ReminderRuns, strings.NewReader(expected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ReminderNotifications))
}

func TestRegistryIsPrivate(t *testing.T) {
	a, b := New(), New()
	a.OrdersTotal.Set(5)

	assert.Equal(t, 0.0, testutil.ToFloat64(b.OrdersTotal))
	count, err := testutil.GatherAndCount(a.Registry(), "printdesk_orders_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWriteTextfile(t *testing.T) {
	c := New()
	c.OrdersPending.Set(4)

	path := filepath.Join(t.TempDir(), "printdesk.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "printdesk_orders_pending 4")
}
