// Package stash persists the guest cart to a single JSON slot on disk,
// Satchel's stand-in for durable client storage. The slot is read once at
// startup and rewritten after every guest-cart mutation.
package stash

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"satchel/internal/cart"
)

// Slot is one named durable storage slot holding a JSON-serialized cart.
type Slot struct {
	path string
}

// New returns a slot backed by the file at path.
func New(path string) *Slot {
	return &Slot{path: path}
}

// Load reads the stored cart. A missing file, unreadable file, or malformed
// payload all yield an empty cart; startup never fails on bad storage.
func (s *Slot) Load() cart.State {
	bytes, err := os.ReadFile(s.path)
	if err != nil {
		return cart.State{}
	}

	var state cart.State
	if err := json.Unmarshal(bytes, &state); err != nil {
		return cart.State{}
	}

	// Stored totals may predate a price change in the snapshot shape; derive
	// them from the items rather than trusting the file.
	state.Recompute()
	return state
}

// Save writes the cart, creating parent directories as needed.
func (s *Slot) Save(state cart.State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	bytes, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := os.WriteFile(s.path, bytes, 0o644); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return nil
}
