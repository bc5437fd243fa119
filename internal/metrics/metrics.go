// Package metrics exposes shop and reminder figures as Prometheus metrics.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/printdesk/printdesk/internal/calculator"
)

// Reminder run results.
const (
	ResultNotified = "notified"
	ResultIdle     = "idle"
	ResultError    = "error"
)

// Collectors holds every printdesk metric on a private registry.
type Collectors struct {
	registry *prometheus.Registry

	OrdersTotal   prometheus.Gauge
	OrdersPending prometheus.Gauge
	RevenueTotal  prometheus.Gauge
	RevenueMonth  prometheus.Gauge

	ReminderRuns          *prometheus.CounterVec
	ReminderNotifications prometheus.Counter
	ReminderDuration      prometheus.Histogram
}

// New creates the collectors and registers them on a fresh registry.
func New() *Collectors {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collectors{
		registry: registry,

		OrdersTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "printdesk_orders_total",
			Help: "Number of stored orders.",
		}),
		OrdersPending: factory.NewGauge(prometheus.GaugeOpts{
			Name: "printdesk_orders_pending",
			Help: "Number of orders not yet completed.",
		}),
		RevenueTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "printdesk_revenue_total",
			Help: "Sum of amounts received, all time.",
		}),
		RevenueMonth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "printdesk_revenue_month",
			Help: "Sum of amounts received for orders added this calendar month.",
		}),

		ReminderRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "printdesk_reminder_runs_total",
			Help: "Reminder runs by result.",
		},
			[]string{"result"},
		),
		ReminderNotifications: factory.NewCounter(prometheus.CounterOpts{
			Name: "printdesk_reminder_notifications_total",
			Help: "Pending-order notifications sent.",
		}),
		ReminderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "printdesk_reminder_run_duration_seconds",
			Help:    "Duration of reminder runs.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Registry returns the registry holding the collectors.
func (c *Collectors) Registry() *prometheus.Registry {
	return c.registry
}

// Observe records a dashboard aggregate.
func (c *Collectors) Observe(m calculator.Metrics) {
	total, _ := m.TotalRevenue.Float64()
	month, _ := m.MonthRevenue.Float64()

	c.OrdersTotal.Set(float64(m.TotalOrders))
	c.OrdersPending.Set(float64(m.PendingOrders))
	c.RevenueTotal.Set(total)
	c.RevenueMonth.Set(month)
}

// WriteTextfile writes every metric to path in the node-exporter textfile
// format. The file is replaced atomically.
func (c *Collectors) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
