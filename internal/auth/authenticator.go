// Package auth guards the dashboard behind a numeric PIN.
package auth

import (
	"context"

	"github.com/printdesk/printdesk/internal/models"
)

// Gate defines the access check in front of the dashboard.
// This abstraction lets the service layer run against PinGate or a stub
// without knowing how PINs are stored or hashed.
type Gate interface {
	// IsSet reports whether a PIN has been configured.
	IsSet(ctx context.Context) (bool, error)

	// SetPin configures the first PIN. Fails if one already exists.
	SetPin(ctx context.Context, pin string) error

	// ChangePin replaces the PIN if oldPin matches the stored one.
	ChangePin(ctx context.Context, oldPin, newPin string) error

	// Unlock checks pin against the stored PIN.
	Unlock(ctx context.Context, pin string) error

	// Current returns the stored PIN record, or ErrPinNotSet.
	Current(ctx context.Context) (*models.PinConfig, error)
}
