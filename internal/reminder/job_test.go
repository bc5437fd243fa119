package reminder

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/printdesk/internal/metrics"
	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/notify"
)

type fakeLister struct {
	orders []models.Order
	err    error
	block  chan struct{}
}

func (f *fakeLister) ListOrders(ctx context.Context) ([]models.Order, error) {
	if f.block != nil {
		<-f.block
	}
	return f.orders, f.err
}

type fakeNotifier struct {
	sent []notify.Notification
	err  error
}

func (f *fakeNotifier) Notify(ctx context.Context, n notify.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, n)
	return nil
}

func order(completed bool) models.Order {
	return models.Order{
		Customer:  "c",
		Quantity:  1,
		Amount:    decimal.NewFromInt(10),
		DueDate:   "2025-06-12",
		AddedTime: "2025-06-01T10:00",
		Completed: completed,
	}
}

var jobNow = time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

func TestPendingJobRun(t *testing.T) {
	tests := []struct {
		name         string
		orders       []models.Order
		validateFunc func(t *testing.T, sent []notify.Notification, c *metrics.Collectors)
	}{
		{
			name:   "no orders",
			orders: nil,
			validateFunc: func(t *testing.T, sent []notify.Notification, c *metrics.Collectors) {
				assert.Empty(t, sent)
				assert.Equal(t, 1.0, testutil.ToFloat64(c.ReminderRuns.WithLabelValues(metrics.ResultIdle)))
			},
		},
		{
			name:   "all completed",
			orders: []models.Order{order(true), order(true)},
			validateFunc: func(t *testing.T, sent []notify.Notification, c *metrics.Collectors) {
				assert.Empty(t, sent)
				assert.Equal(t, 2.0, testutil.ToFloat64(c.OrdersTotal))
			},
		},
		{
			name:   "pending orders",
			orders: []models.Order{order(false), order(true), order(false)},
			validateFunc: func(t *testing.T, sent []notify.Notification, c *metrics.Collectors) {
				require.Len(t, sent, 1)
				assert.Equal(t, notify.Notification{
					ID:      2001,
					Channel: "pending_orders_channel",
					Title:   "Pending Orders",
					Body:    "You have 2 pending print orders.",
				}, sent[0])
				assert.Equal(t, 1.0, testutil.ToFloat64(c.ReminderNotifications))
				assert.Equal(t, 1.0, testutil.ToFloat64(c.ReminderRuns.WithLabelValues(metrics.ResultNotified)))
				assert.Equal(t, 2.0, testutil.ToFloat64(c.OrdersPending))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &fakeNotifier{}
			c := metrics.New()
			job := NewPendingJob(&fakeLister{orders: tt.orders}, notifier,
				WithMetrics(c, ""),
				WithClock(func() time.Time { return jobNow }),
			)

			require.NoError(t, job.Run(context.Background()))
			assert.Equal(t, Idle, job.State())
			tt.validateFunc(t, notifier.sent, c)
		})
	}
}

func TestPendingJobErrors(t *testing.T) {
	t.Run("store failure", func(t *testing.T) {
		c := metrics.New()
		notifier := &fakeNotifier{}
		job := NewPendingJob(&fakeLister{err: errors.New("disk gone")}, notifier, WithMetrics(c, ""))

		err := job.Run(context.Background())
		assert.ErrorContains(t, err, "disk gone")
		assert.Empty(t, notifier.sent)
		assert.Equal(t, Idle, job.State())
		assert.Equal(t, 1.0, testutil.ToFloat64(c.ReminderRuns.WithLabelValues(metrics.ResultError)))
	})

	t.Run("notifier failure", func(t *testing.T) {
		boom := errors.New("boom")
		job := NewPendingJob(&fakeLister{orders: []models.Order{order(false)}}, &fakeNotifier{err: boom})

		assert.ErrorIs(t, job.Run(context.Background()), boom)
		assert.Equal(t, Idle, job.State())
	})
}

func TestPendingJobRetrySendsAgain(t *testing.T) {
	notifier := &fakeNotifier{}
	job := NewPendingJob(&fakeLister{orders: []models.Order{order(false)}}, notifier)

	require.NoError(t, job.Run(context.Background()))
	require.NoError(t, job.Run(context.Background()))
	assert.Len(t, notifier.sent, 2)
}

func TestPendingJobRejectsOverlap(t *testing.T) {
	lister := &fakeLister{block: make(chan struct{})}
	job := NewPendingJob(lister, &fakeNotifier{})

	done := make(chan error, 1)
	go func() { done <- job.Run(context.Background()) }()

	require.Eventually(t, func() bool { return job.State() == Running }, waitFor, tick)
	assert.ErrorIs(t, job.Run(context.Background()), ErrRunInProgress)

	close(lister.block)
	require.NoError(t, <-done)
	assert.Equal(t, Idle, job.State())
}

func TestPendingJobWritesTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "printdesk.prom")
	job := NewPendingJob(&fakeLister{orders: []models.Order{order(false)}}, &fakeNotifier{},
		WithMetrics(metrics.New(), path),
	)

	require.NoError(t, job.Run(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `printdesk_reminder_runs_total{result="notified"} 1`)
}

func TestPendingJobUnderScheduler(t *testing.T) {
	notifier := notify.NewSlotNotifier(t.TempDir())
	job := NewPendingJob(&fakeLister{orders: []models.Order{order(false)}}, notifier)
	s := newTestScheduler(t)

	s.Register(DefaultName, time.Hour, 0, KeepExisting, job.Run)

	require.Eventually(t, func() bool {
		n, err := notifier.Read(NotificationID)
		return err == nil && n.Body == PendingMessage(1)
	}, waitFor, tick)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "unknown", State(9).String())
}
