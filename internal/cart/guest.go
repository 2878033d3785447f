package cart

import (
	"sync"

	"go.uber.org/zap"

	"satchel/internal/storefront"
)

// Saver persists a guest cart to durable client storage.
type Saver interface {
	Save(State) error
}

// Guest maintains a cart for an unauthenticated visitor entirely on the
// client. Every mutation persists the full state through the Saver before
// returning; a failed save is logged and otherwise ignored so the in-memory
// cart stays usable for the session.
type Guest struct {
	mu    sync.Mutex
	state State
	saver Saver
	log   *zap.Logger
}

// NewGuest builds a guest store around the given persistence slot.
func NewGuest(saver Saver, log *zap.Logger) *Guest {
	if log == nil {
		log = zap.NewNop()
	}
	return &Guest{saver: saver, log: log}
}

// Set replaces the cart wholesale, used when restoring from storage at
// startup. The input is trusted to already be in cart shape.
func (g *Guest) Set(state State) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = state.Clone()
	g.state.Loading = false
	g.state.Error = ""
	g.persistLocked()
}

// Add increments the quantity of an existing line or appends a new one.
// Quantity validation is the caller's job.
func (g *Guest) Add(product storefront.Product, quantity int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.state.Items {
		if g.state.Items[i].ID == product.ID {
			g.state.Items[i].Quantity += quantity
			g.state.Recompute()
			g.persistLocked()
			return
		}
	}
	g.state.Items = append(g.state.Items, Item{ID: product.ID, Product: product, Quantity: quantity})
	g.state.Recompute()
	g.persistLocked()
}

// Update sets the quantity for the matching line; absent ids are a no-op.
func (g *Guest) Update(id string, quantity int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.state.Items {
		if g.state.Items[i].ID == id {
			g.state.Items[i].Quantity = quantity
			g.state.Recompute()
			g.persistLocked()
			return
		}
	}
}

// Remove drops the matching line; absent ids are a no-op.
func (g *Guest) Remove(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := range g.state.Items {
		if g.state.Items[i].ID == id {
			g.state.Items = append(g.state.Items[:i], g.state.Items[i+1:]...)
			g.state.Recompute()
			g.persistLocked()
			return
		}
	}
}

// Clear empties the cart and persists the empty state.
func (g *Guest) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = State{}
	g.persistLocked()
}

// Snapshot returns a copy of the current cart.
func (g *Guest) Snapshot() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.Clone()
}

// MergeItems returns the id+quantity pairs to send to the merge endpoint.
// Product snapshot data stays local; the server owns price and stock.
func (g *Guest) MergeItems() []storefront.MergeItem {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.state.Items) == 0 {
		return nil
	}
	items := make([]storefront.MergeItem, len(g.state.Items))
	for i, item := range g.state.Items {
		items[i] = storefront.MergeItem{ID: item.ID, Quantity: item.Quantity}
	}
	return items
}

func (g *Guest) persistLocked() {
	if g.saver == nil {
		return
	}
	if err := g.saver.Save(g.state.Clone()); err != nil {
		// Reduced durability only; the in-memory cart stays authoritative.
		g.log.Warn("guest cart save failed", zap.Error(err))
	}
}
