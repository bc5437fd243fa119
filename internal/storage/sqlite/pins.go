package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/storage"
)

// GetPin retrieves the PIN record. It returns nil, nil when no PIN is set.
func (s *SQLiteStore) GetPin(ctx context.Context) (*models.PinConfig, error) {
	pin := &models.PinConfig{}
	err := s.db.QueryRowContext(ctx,
		"SELECT hash, updated_at FROM pin_config WHERE id = 1",
	).Scan(&pin.Hash, &pin.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // No PIN set
	}
	if err != nil {
		return nil, storage.Wrap("get pin", err)
	}

	return pin, nil
}

// SetPin stores the PIN record, replacing any existing one.
func (s *SQLiteStore) SetPin(ctx context.Context, pin *models.PinConfig) error {
	if pin.UpdatedAt == 0 {
		pin.UpdatedAt = s.now().Unix()
	}

	_, err := s.db.ExecContext(context.WithoutCancel(ctx),
		`INSERT INTO pin_config (id, hash, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET hash = excluded.hash, updated_at = excluded.updated_at`,
		pin.Hash, pin.UpdatedAt,
	)
	if err != nil {
		return storage.Wrap("set pin", err)
	}

	return nil
}
