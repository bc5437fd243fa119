package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/orders"
	"github.com/printdesk/printdesk/internal/storage"
)

// OrderView is an order together with its derived display state.
type OrderView struct {
	Order   models.Order
	Status  orders.Status
	Urgency orders.Urgency
}

func viewOf(o models.Order, today time.Time) OrderView {
	return OrderView{
		Order:   o,
		Status:  orders.Classify(o),
		Urgency: orders.UrgencyOf(o, today),
	}
}

// OrderService manages the order list.
type OrderService struct {
	store storage.OrderStore
	now   func() time.Time
}

// NewOrderService creates a new OrderService with the given storage backend.
func NewOrderService(store storage.OrderStore, opts ...Option) *OrderService {
	o := buildOptions(opts)
	return &OrderService{store: store, now: o.now}
}

// List returns the orders matching query in display order.
func (s *OrderService) List(ctx context.Context, query string) ([]OrderView, error) {
	slog.Debug("List orders request received", "query", query)

	all, err := s.store.ListOrders(ctx)
	if err != nil {
		slog.Error("List orders failed", "error", err)
		return nil, err
	}

	today := s.now()
	sorted := orders.Apply(all, query)
	views := make([]OrderView, len(sorted))
	for i, o := range sorted {
		views[i] = viewOf(o, today)
	}

	slog.Debug("List orders successful", "count", len(views), "total", len(all))
	return views, nil
}

// Get retrieves a single order.
func (s *OrderService) Get(ctx context.Context, id int64) (*OrderView, error) {
	o, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	v := viewOf(*o, s.now())
	return &v, nil
}

// Save inserts order when it has no ID, otherwise updates it.
func (s *OrderService) Save(ctx context.Context, order *models.Order) error {
	if order.ID == 0 {
		if err := s.store.InsertOrder(ctx, order); err != nil {
			slog.Error("Insert order failed", "customer", order.Customer, "error", err)
			return err
		}
		slog.Info("Order created", "order_id", order.ID, "customer", order.Customer)
		return nil
	}

	if err := s.store.UpdateOrder(ctx, order); err != nil {
		slog.Error("Update order failed", "order_id", order.ID, "error", err)
		return err
	}
	slog.Info("Order updated", "order_id", order.ID)
	return nil
}

// SaveInput applies form input to the order with the given ID, or to a new
// order when id is 0, and saves it.
func (s *OrderService) SaveInput(ctx context.Context, id int64, in models.OrderInput) (*models.Order, error) {
	order := models.NewOrder()
	if id != 0 {
		existing, err := s.store.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		order = *existing
	}

	if err := in.Apply(&order); err != nil {
		return nil, err
	}
	if err := s.Save(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ToggleAmountReceived flips the payment flag of an order.
func (s *OrderService) ToggleAmountReceived(ctx context.Context, id int64) (*models.Order, error) {
	return s.toggle(ctx, id, "amount_received", func(o *models.Order) {
		o.AmountReceived = !o.AmountReceived
	})
}

// ToggleCompleted flips the completion flag of an order.
func (s *OrderService) ToggleCompleted(ctx context.Context, id int64) (*models.Order, error) {
	return s.toggle(ctx, id, "completed", func(o *models.Order) {
		o.Completed = !o.Completed
	})
}

func (s *OrderService) toggle(ctx context.Context, id int64, field string, flip func(*models.Order)) (*models.Order, error) {
	o, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	flip(o)
	if err := s.store.UpdateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to toggle %s: %w", field, err)
	}

	slog.Info("Order toggled",
		"order_id", id,
		"field", field,
		"status", orders.Classify(*o).String(),
	)
	return o, nil
}

// Delete permanently removes an order.
func (s *OrderService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		slog.Error("Delete order failed", "order_id", id, "error", err)
		return err
	}
	slog.Info("Order deleted", "order_id", id)
	return nil
}
