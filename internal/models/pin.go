package models

// PinConfig is the singleton record holding the dashboard PIN hash.
// A missing record means no PIN has been set yet.
type PinConfig struct {
	// Hash is the bcrypt hash of the PIN. The raw PIN is never stored.
	Hash string

	// UpdatedAt is the Unix timestamp of the last set or change.
	UpdatedAt int64
}
