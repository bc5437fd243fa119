package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/storage"
)

const orderColumns = `id, customer, file_name, description, quantity, amount, double_sided,
	spiral, due_date, added_time, amount_received, completed`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(
		&o.ID,
		&o.Customer,
		&o.FileName,
		&o.Description,
		&o.Quantity,
		&o.Amount,
		&o.DoubleSided,
		&o.Spiral,
		&o.DueDate,
		&o.AddedTime,
		&o.AmountReceived,
		&o.Completed,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ListOrders retrieves all orders, earliest due date first.
func (s *SQLiteStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY due_date ASC, id ASC`,
	)
	if err != nil {
		return nil, storage.Wrap("list orders", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, storage.Wrap("scan order", err)
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("iterate orders", err)
	}

	return orders, nil
}

// GetOrder retrieves an order by ID.
func (s *SQLiteStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	o, err := scanOrder(s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.NotFound(id)
	}
	if err != nil {
		return nil, storage.Wrap("get order", err)
	}
	return o, nil
}

// InsertOrder persists a new order and fills in its ID and AddedTime.
// The write is not abandoned if ctx is cancelled mid-flight.
func (s *SQLiteStore) InsertOrder(ctx context.Context, order *models.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	addedTime := models.FormatAddedTime(s.now())
	res, err := s.db.ExecContext(context.WithoutCancel(ctx),
		`INSERT INTO orders (customer, file_name, description, quantity, amount, double_sided,
			spiral, due_date, added_time, amount_received, completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.Customer, order.FileName, order.Description, order.Quantity, order.Amount.String(),
		order.DoubleSided, order.Spiral, order.DueDate, addedTime, order.AmountReceived, order.Completed,
	)
	if err != nil {
		return storage.Wrap("insert order", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return storage.Wrap("read order id", err)
	}

	order.ID = id
	order.AddedTime = addedTime
	return nil
}

// UpdateOrder replaces every mutable column of an existing order.
func (s *SQLiteStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(context.WithoutCancel(ctx),
		`UPDATE orders SET customer = ?, file_name = ?, description = ?, quantity = ?, amount = ?,
			double_sided = ?, spiral = ?, due_date = ?, amount_received = ?, completed = ?
		 WHERE id = ?`,
		order.Customer, order.FileName, order.Description, order.Quantity, order.Amount.String(),
		order.DoubleSided, order.Spiral, order.DueDate, order.AmountReceived, order.Completed,
		order.ID,
	)
	if err != nil {
		return storage.Wrap("update order", err)
	}
	return expectOneRow(res, order.ID)
}

// DeleteOrder removes an order by ID.
func (s *SQLiteStore) DeleteOrder(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(context.WithoutCancel(ctx), "DELETE FROM orders WHERE id = ?", id)
	if err != nil {
		return storage.Wrap("delete order", err)
	}
	return expectOneRow(res, id)
}

// CountOrders returns the number of stored orders.
func (s *SQLiteStore) CountOrders(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&count); err != nil {
		return 0, storage.Wrap("count orders", err)
	}
	return count, nil
}

func expectOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storage.Wrap("read affected rows", err)
	}
	if n == 0 {
		return storage.NotFound(id)
	}
	return nil
}
