package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/storage"
)

var fixedNow = time.Date(2025, 6, 10, 14, 30, 45, 0, time.UTC)

func newTestStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath, WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, dbPath
}

func testOrder(customer, due string) *models.Order {
	o := models.NewOrder()
	o.Customer = customer
	o.FileName = customer + ".pdf"
	o.Quantity = 2
	o.Amount = decimal.RequireFromString("149.50")
	o.DueDate = due
	return &o
}

func TestOrderCRUD(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("InsertOrder assigns ID and added time", func(t *testing.T) {
		o := testOrder("Asha", "2025-06-12")
		require.NoError(t, store.InsertOrder(ctx, o))

		assert.NotZero(t, o.ID)
		assert.Equal(t, "2025-06-10T14:30", o.AddedTime)
	})

	t.Run("GetOrder returns stored fields", func(t *testing.T) {
		o := testOrder("Bala", "2025-06-15")
		o.Description = "colour cover"
		o.Spiral = true
		o.AmountReceived = true
		require.NoError(t, store.InsertOrder(ctx, o))

		got, err := store.GetOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, o.Customer, got.Customer)
		assert.Equal(t, o.FileName, got.FileName)
		assert.Equal(t, "colour cover", got.Description)
		assert.Equal(t, 2, got.Quantity)
		assert.True(t, o.Amount.Equal(got.Amount), "amount %s != %s", got.Amount, o.Amount)
		assert.True(t, got.DoubleSided)
		assert.True(t, got.Spiral)
		assert.True(t, got.AmountReceived)
		assert.False(t, got.Completed)
		assert.Equal(t, "2025-06-15", got.DueDate)
	})

	t.Run("UpdateOrder keeps added time", func(t *testing.T) {
		o := testOrder("Chitra", "2025-06-20")
		require.NoError(t, store.InsertOrder(ctx, o))

		o.Completed = true
		o.Quantity = 5
		o.AddedTime = "1999-01-01T00:00"
		require.NoError(t, store.UpdateOrder(ctx, o))

		got, err := store.GetOrder(ctx, o.ID)
		require.NoError(t, err)
		assert.True(t, got.Completed)
		assert.Equal(t, 5, got.Quantity)
		assert.Equal(t, "2025-06-10T14:30", got.AddedTime)
	})

	t.Run("DeleteOrder removes the order", func(t *testing.T) {
		o := testOrder("Deepa", "2025-06-21")
		require.NoError(t, store.InsertOrder(ctx, o))

		require.NoError(t, store.DeleteOrder(ctx, o.ID))

		_, err := store.GetOrder(ctx, o.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestOrderNotFound(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "get",
			call: func() error {
				_, err := store.GetOrder(ctx, 404)
				return err
			},
		},
		{
			name: "update",
			call: func() error {
				o := testOrder("Ghost", "2025-06-12")
				o.ID = 404
				return store.UpdateOrder(ctx, o)
			},
		},
		{
			name: "delete",
			call: func() error { return store.DeleteOrder(ctx, 404) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.ErrorIs(t, err, storage.ErrNotFound)
			assert.NotErrorIs(t, err, storage.ErrStorage)
		})
	}
}

func TestListOrdersByDueDate(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, o := range []*models.Order{
		testOrder("Late", "2025-07-01"),
		testOrder("Early", "2025-06-11"),
		testOrder("Middle", "2025-06-20"),
		testOrder("EarlyToo", "2025-06-11"),
	} {
		require.NoError(t, store.InsertOrder(ctx, o))
	}

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)

	var names []string
	for _, o := range orders {
		names = append(names, o.Customer)
	}
	assert.Equal(t, []string{"Early", "EarlyToo", "Middle", "Late"}, names)

	count, err := store.CountOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestListOrdersTypedDueDates(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, in := range []models.OrderInput{
		{Customer: "Later", Quantity: "1", Amount: "10", DueDate: "2025-06-20"},
		{Customer: "Sooner", Quantity: "1", Amount: "10", DueDate: "2025-6-5"},
	} {
		o := models.NewOrder()
		require.NoError(t, in.Apply(&o))
		require.NoError(t, store.InsertOrder(ctx, &o))
	}

	orders, err := store.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Sooner", orders[0].Customer)
	assert.Equal(t, "2025-06-05", orders[0].DueDate)
	assert.Equal(t, "Later", orders[1].Customer)
}

func TestListOrdersEmpty(t *testing.T) {
	store, _ := newTestStore(t)

	orders, err := store.ListOrders(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestInvalidOrderNotWritten(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	valid := testOrder("Asha", "2025-06-12")
	require.NoError(t, store.InsertOrder(ctx, valid))

	tests := []struct {
		name   string
		mutate func(o *models.Order)
		field  string
	}{
		{name: "blank customer", mutate: func(o *models.Order) { o.Customer = "  " }, field: "customer"},
		{name: "zero quantity", mutate: func(o *models.Order) { o.Quantity = 0 }, field: "quantity"},
		{name: "negative amount", mutate: func(o *models.Order) { o.Amount = decimal.NewFromInt(-1) }, field: "amount"},
		{name: "bad due date", mutate: func(o *models.Order) { o.DueDate = "2025-02-30" }, field: "due_date"},
		{name: "unpadded due date", mutate: func(o *models.Order) { o.DueDate = "2025-6-5" }, field: "due_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := testOrder("Bala", "2025-06-12")
			tt.mutate(o)

			err := store.InsertOrder(ctx, o)
			require.ErrorIs(t, err, models.ErrValidation)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Zero(t, o.ID)

			update := *valid
			tt.mutate(&update)
			assert.ErrorIs(t, store.UpdateOrder(ctx, &update), models.ErrValidation)
		})
	}

	count, err := store.CountOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := store.GetOrder(ctx, valid.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.Customer)
}

func TestPinConfig(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	pin, err := store.GetPin(ctx)
	require.NoError(t, err)
	assert.Nil(t, pin, "no PIN before first set")

	require.NoError(t, store.SetPin(ctx, &models.PinConfig{Hash: "first"}))
	require.NoError(t, store.SetPin(ctx, &models.PinConfig{Hash: "second", UpdatedAt: 42}))

	pin, err = store.GetPin(ctx)
	require.NoError(t, err)
	require.NotNil(t, pin)
	assert.Equal(t, "second", pin.Hash)
	assert.Equal(t, int64(42), pin.UpdatedAt)

	var rows int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM pin_config").Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestSetPinStampsUpdatedAt(t *testing.T) {
	store, _ := newTestStore(t)

	pin := &models.PinConfig{Hash: "h"}
	require.NoError(t, store.SetPin(context.Background(), pin))
	assert.Equal(t, fixedNow.Unix(), pin.UpdatedAt)
}

func TestReopenKeepsData(t *testing.T) {
	store, dbPath := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertOrder(ctx, testOrder("Asha", "2025-06-12")))
	require.NoError(t, store.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.CountOrders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSchemaVersionChangeDropsData(t *testing.T) {
	store, dbPath := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.InsertOrder(ctx, testOrder("Asha", "2025-06-12")))
	require.NoError(t, store.SetPin(ctx, &models.PinConfig{Hash: "h"}))

	_, err := store.db.Exec("PRAGMA user_version = 1")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.CountOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	pin, err := reopened.GetPin(ctx)
	require.NoError(t, err)
	assert.Nil(t, pin)

	var version int
	require.NoError(t, reopened.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, schemaVersion, version)
}
