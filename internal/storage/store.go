// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/printdesk/printdesk/internal/models"
)

// OrderStore defines the interface for order persistence.
// Every write is durable and visible to the next read; there is no cache.
type OrderStore interface {
	// ListOrders returns every order, ascending by due date (ties by ID).
	ListOrders(ctx context.Context) ([]models.Order, error)

	// GetOrder retrieves an order by ID.
	// Returns an error wrapping ErrNotFound if it does not exist.
	GetOrder(ctx context.Context, id int64) (*models.Order, error)

	// InsertOrder validates and persists a new order.
	// The order's ID and AddedTime are populated by the store.
	InsertOrder(ctx context.Context, order *models.Order) error

	// UpdateOrder replaces an existing order. AddedTime is never changed.
	// Returns an error wrapping ErrNotFound if the ID does not exist.
	UpdateOrder(ctx context.Context, order *models.Order) error

	// DeleteOrder permanently removes an order.
	// Returns an error wrapping ErrNotFound if the ID does not exist.
	DeleteOrder(ctx context.Context, id int64) error

	// CountOrders returns the number of stored orders.
	CountOrders(ctx context.Context) (int, error)
}

// PinStore persists the singleton PIN record.
type PinStore interface {
	// GetPin returns the stored PIN record, or nil if no PIN is set.
	GetPin(ctx context.Context) (*models.PinConfig, error)

	// SetPin replaces the PIN record wholesale.
	SetPin(ctx context.Context, pin *models.PinConfig) error
}

// Store is the full storage backend.
type Store interface {
	OrderStore
	PinStore

	// Close releases any resources held by the store.
	Close() error
}
