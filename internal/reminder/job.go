package reminder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/printdesk/printdesk/internal/calculator"
	"github.com/printdesk/printdesk/internal/metrics"
	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/notify"
)

// Identity of the pending-orders notification. Reusing the ID means each
// day's reminder replaces the previous one.
const (
	NotificationID    = 2001
	NotificationTitle = "Pending Orders"
	ChannelID         = "pending_orders_channel"
)

// ErrRunInProgress is returned when Run is called while a run is active.
var ErrRunInProgress = errors.New("reminder run already in progress")

// State is the lifecycle state of a PendingJob.
type State int32

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// OrderLister is the read access the reminder needs.
type OrderLister interface {
	ListOrders(ctx context.Context) ([]models.Order, error)
}

// PendingMessage is the notification body for n pending orders.
func PendingMessage(n int) string {
	return fmt.Sprintf("You have %d pending print orders.", n)
}

// PendingJob notifies the user when any orders are not yet completed.
type PendingJob struct {
	orders   OrderLister
	notifier notify.Notifier
	metrics  *metrics.Collectors
	textfile string
	now      func() time.Time
	logger   *slog.Logger

	state atomic.Int32
}

// JobOption configures a PendingJob.
type JobOption func(*PendingJob)

// WithMetrics records each run on c. When textfile is not empty the
// metrics are written there after every run.
func WithMetrics(c *metrics.Collectors, textfile string) JobOption {
	return func(j *PendingJob) {
		j.metrics = c
		j.textfile = textfile
	}
}

// WithClock overrides the job's clock.
func WithClock(now func() time.Time) JobOption {
	return func(j *PendingJob) {
		j.now = now
	}
}

// WithJobLogger sets the job's logger.
func WithJobLogger(logger *slog.Logger) JobOption {
	return func(j *PendingJob) {
		j.logger = logger
	}
}

// NewPendingJob creates the pending-orders reminder job.
func NewPendingJob(orders OrderLister, notifier notify.Notifier, opts ...JobOption) *PendingJob {
	j := &PendingJob{
		orders:   orders,
		notifier: notifier,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// State reports whether a run is in progress.
func (j *PendingJob) State() State {
	return State(j.state.Load())
}

// Run reads all orders and, if any are pending, sends one notification.
// Failures are returned so the caller may retry; a retry after a sent
// notification sends it again.
func (j *PendingJob) Run(ctx context.Context) error {
	if !j.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return ErrRunInProgress
	}
	defer j.state.Store(int32(Idle))

	runID := uuid.New().String()
	logger := j.logger.With("run_id", runID)
	start := j.now()

	result, err := j.run(ctx, logger)
	if err != nil {
		result = metrics.ResultError
		logger.Error("Reminder run failed", "error", err)
	}
	j.record(result, j.now().Sub(start), logger)

	return err
}

func (j *PendingJob) run(ctx context.Context, logger *slog.Logger) (string, error) {
	orders, err := j.orders.ListOrders(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load orders: %w", err)
	}

	summary := calculator.Aggregate(orders, j.now())
	if j.metrics != nil {
		j.metrics.Observe(summary)
	}

	if summary.PendingOrders == 0 {
		logger.Debug("No pending orders")
		return metrics.ResultIdle, nil
	}

	n := notify.Notification{
		ID:      NotificationID,
		Channel: ChannelID,
		Title:   NotificationTitle,
		Body:    PendingMessage(summary.PendingOrders),
	}
	if err := j.notifier.Notify(ctx, n); err != nil {
		return "", fmt.Errorf("failed to send notification: %w", err)
	}

	logger.Info("Pending orders reminder sent", "count", summary.PendingOrders)
	if j.metrics != nil {
		j.metrics.ReminderNotifications.Inc()
	}
	return metrics.ResultNotified, nil
}

func (j *PendingJob) record(result string, elapsed time.Duration, logger *slog.Logger) {
	if j.metrics == nil {
		return
	}

	j.metrics.ReminderRuns.WithLabelValues(result).Inc()
	j.metrics.ReminderDuration.Observe(elapsed.Seconds())

	if j.textfile == "" {
		return
	}
	if err := j.metrics.WriteTextfile(j.textfile); err != nil {
		logger.Warn("Failed to export metrics", "error", err)
	}
}
