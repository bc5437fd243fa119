package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// SlotNotifier keeps the latest notification for each ID as a JSON file in
// a directory. Desktop widgets or status bars can watch the directory.
type SlotNotifier struct {
	dir string
}

// NewSlotNotifier creates a notifier writing into dir.
func NewSlotNotifier(dir string) *SlotNotifier {
	return &SlotNotifier{dir: dir}
}

// Path returns the slot file for a notification ID.
func (s *SlotNotifier) Path(id int) string {
	return filepath.Join(s.dir, strconv.Itoa(id)+".json")
}

// Notify replaces the slot for n.ID atomically.
func (s *SlotNotifier) Notify(ctx context.Context, n Notification) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create notification directory: %w", err)
	}

	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".notification-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write notification: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write notification: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path(n.ID)); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

// Read returns the notification currently held in the slot for id.
func (s *SlotNotifier) Read(id int) (*Notification, error) {
	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		return nil, err
	}

	var n Notification
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("failed to decode notification: %w", err)
	}
	return &n, nil
}
