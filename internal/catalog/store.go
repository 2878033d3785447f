// Package catalog shares the product list between the background poller and
// the UI: a thread-safe snapshot store with defensive copies, where a failed
// poll keeps the previous products and only records the error.
package catalog

import (
	"sync"
	"time"

	"satchel/internal/storefront"
)

// Snapshot represents the latest catalog data available to the UI.
type Snapshot struct {
	Products            []storefront.Product
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the catalog snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored catalog. When err is non-nil the previous
// products are kept but the error is recorded for visibility.
func (s *Store) Update(products []storefront.Product, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Products = cloneProducts(products)
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current catalog snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Products = cloneProducts(s.snapshot.Products)
	return snap
}

func cloneProducts(products []storefront.Product) []storefront.Product {
	if len(products) == 0 {
		return nil
	}
	dup := make([]storefront.Product, len(products))
	copy(dup, products)
	return dup
}
