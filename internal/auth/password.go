package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/printdesk/printdesk/internal/models"
	"github.com/printdesk/printdesk/internal/storage"
)

// PinLength is the number of digits in a dashboard PIN.
const PinLength = 6

var (
	ErrAuthRejected  = errors.New("incorrect PIN")
	ErrInvalidPin    = fmt.Errorf("PIN must be exactly %d digits", PinLength)
	ErrPinNotSet     = errors.New("no PIN has been set")
	ErrPinAlreadySet = errors.New("a PIN is already set")
	ErrPinMismatch   = errors.New("new PIN and confirmation do not match")
)

// Ensure PinGate implements Gate
var _ Gate = (*PinGate)(nil)

// PinGate implements Gate with bcrypt hashes held in a storage.PinStore.
type PinGate struct {
	store storage.PinStore
	cost  int
	now   func() time.Time
}

// GateOption configures a PinGate.
type GateOption func(*PinGate)

// WithCost sets the bcrypt cost used for new hashes.
func WithCost(cost int) GateOption {
	return func(g *PinGate) {
		g.cost = cost
	}
}

// NewPinGate creates a PIN gate backed by store.
func NewPinGate(store storage.PinStore, opts ...GateOption) *PinGate {
	g := &PinGate{
		store: store,
		cost:  bcrypt.DefaultCost,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ValidatePin checks that pin is exactly PinLength ASCII digits.
func ValidatePin(pin string) error {
	if len(pin) != PinLength {
		return ErrInvalidPin
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return ErrInvalidPin
		}
	}
	return nil
}

// ConfirmPin checks a new PIN against its confirmation entry.
func ConfirmPin(newPin, confirm string) error {
	if newPin != confirm {
		return ErrPinMismatch
	}
	return ValidatePin(newPin)
}

// Verify reports whether pinAttempt matches storedHash.
func (g *PinGate) Verify(pinAttempt, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(pinAttempt)) == nil
}

// IsSet reports whether a PIN has been configured.
func (g *PinGate) IsSet(ctx context.Context) (bool, error) {
	pin, err := g.store.GetPin(ctx)
	if err != nil {
		return false, err
	}
	return pin != nil, nil
}

// Current returns the stored PIN record.
func (g *PinGate) Current(ctx context.Context) (*models.PinConfig, error) {
	pin, err := g.store.GetPin(ctx)
	if err != nil {
		return nil, err
	}
	if pin == nil {
		return nil, ErrPinNotSet
	}
	return pin, nil
}

// SetPin configures the first PIN.
func (g *PinGate) SetPin(ctx context.Context, pin string) error {
	if err := ValidatePin(pin); err != nil {
		return err
	}

	set, err := g.IsSet(ctx)
	if err != nil {
		return err
	}
	if set {
		return ErrPinAlreadySet
	}

	return g.savePin(ctx, pin)
}

// ChangePin replaces the PIN. The stored PIN is left untouched unless oldPin
// matches it.
func (g *PinGate) ChangePin(ctx context.Context, oldPin, newPin string) error {
	if err := ValidatePin(newPin); err != nil {
		return err
	}

	current, err := g.Current(ctx)
	if err != nil {
		return err
	}
	if !g.Verify(oldPin, current.Hash) {
		return ErrAuthRejected
	}

	return g.savePin(ctx, newPin)
}

// Unlock checks pin against the stored PIN.
func (g *PinGate) Unlock(ctx context.Context, pin string) error {
	current, err := g.Current(ctx)
	if err != nil {
		return err
	}
	if !g.Verify(pin, current.Hash) {
		return ErrAuthRejected
	}
	return nil
}

func (g *PinGate) savePin(ctx context.Context, pin string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), g.cost)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}

	return g.store.SetPin(ctx, &models.PinConfig{
		Hash:      string(hash),
		UpdatedAt: g.now().Unix(),
	})
}
