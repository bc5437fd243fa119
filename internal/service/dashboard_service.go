package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/printdesk/printdesk/internal/auth"
	"github.com/printdesk/printdesk/internal/calculator"
	"github.com/printdesk/printdesk/internal/metrics"
	"github.com/printdesk/printdesk/internal/storage"
)

// Summary is the PIN-protected dashboard.
type Summary struct {
	Metrics     calculator.Metrics
	Recent      []OrderView
	Outstanding []calculator.CustomerBalance
	TotalOwed   decimal.Decimal
}

// DashboardService exposes revenue figures behind the PIN gate.
type DashboardService struct {
	store      storage.OrderStore
	gate       auth.Gate
	tokens     *auth.UnlockTokens
	collectors *metrics.Collectors
	now        func() time.Time
}

// NewDashboardService creates a dashboard service. collectors may be nil.
func NewDashboardService(store storage.OrderStore, gate auth.Gate, tokens *auth.UnlockTokens, collectors *metrics.Collectors, opts ...Option) *DashboardService {
	o := buildOptions(opts)
	return &DashboardService{
		store:      store,
		gate:       gate,
		tokens:     tokens,
		collectors: collectors,
		now:        o.now,
	}
}

// SetPin configures the first PIN.
func (s *DashboardService) SetPin(ctx context.Context, pin, confirm string) error {
	if err := auth.ConfirmPin(pin, confirm); err != nil {
		return err
	}
	if err := s.gate.SetPin(ctx, pin); err != nil {
		slog.Warn("Set PIN failed", "error", err)
		return err
	}
	slog.Info("PIN set")
	return nil
}

// ChangePin replaces the PIN. Outstanding unlock tokens stop working.
func (s *DashboardService) ChangePin(ctx context.Context, oldPin, newPin, confirm string) error {
	if err := auth.ConfirmPin(newPin, confirm); err != nil {
		return err
	}
	if err := s.gate.ChangePin(ctx, oldPin, newPin); err != nil {
		slog.Warn("Change PIN failed", "error", err)
		return err
	}
	slog.Info("PIN changed")
	return nil
}

// Unlock checks pin and returns a token for later Summary calls.
func (s *DashboardService) Unlock(ctx context.Context, pin string) (string, error) {
	if err := s.gate.Unlock(ctx, pin); err != nil {
		slog.Warn("Dashboard unlock rejected", "error", err)
		return "", err
	}

	current, err := s.gate.Current(ctx)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(current.Hash)
}

// Summary returns the dashboard for a valid unlock token.
func (s *DashboardService) Summary(ctx context.Context, token string) (*Summary, error) {
	current, err := s.gate.Current(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.tokens.Validate(token, current.Hash); err != nil {
		return nil, err
	}

	all, err := s.store.ListOrders(ctx)
	if err != nil {
		slog.Error("Dashboard load failed", "error", err)
		return nil, err
	}

	now := s.now()
	summary := &Summary{
		Metrics:     calculator.Aggregate(all, now),
		Outstanding: calculator.Outstanding(all),
	}
	summary.TotalOwed = calculator.TotalOwed(summary.Outstanding)
	for _, o := range calculator.Recent(all, calculator.RecentLimit) {
		summary.Recent = append(summary.Recent, viewOf(o, now))
	}

	if s.collectors != nil {
		s.collectors.Observe(summary.Metrics)
	}

	slog.Debug("Dashboard built",
		"orders", summary.Metrics.TotalOrders,
		"pending", summary.Metrics.PendingOrders,
	)
	return summary, nil
}
