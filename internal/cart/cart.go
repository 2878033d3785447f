package cart

import "satchel/internal/storefront"

// Item is one line of a cart: a product snapshot taken at add time plus a
// quantity. The line id equals the product id; there is no separate line
// identity, so ids are unique within a cart.
type Item struct {
	ID       string             `json:"id"`
	Product  storefront.Product `json:"product"`
	Quantity int                `json:"quantity"`
}

// State is the cart as the UI sees it. Total and ItemCount are derived from
// Items and recomputed after every mutation, never adjusted incrementally.
// Loading and Error are transient request-status flags used in authenticated
// mode only; guest mutations are synchronous.
type State struct {
	Items     []Item `json:"items"`
	Total     int64  `json:"total"`
	ItemCount int    `json:"itemCount"`
	Loading   bool   `json:"-"`
	Error     string `json:"-"`
}

// Recompute derives Total and ItemCount from Items.
func (s *State) Recompute() {
	var total int64
	count := 0
	for _, item := range s.Items {
		total += item.Product.Price * int64(item.Quantity)
		count += item.Quantity
	}
	s.Total = total
	s.ItemCount = count
}

// Clone returns a deep copy of the state so callers can hold it without
// racing later mutations.
func (s State) Clone() State {
	dup := s
	dup.Items = cloneItems(s.Items)
	return dup
}

// FromPayload converts a server cart response into local state. The server's
// totals are authoritative and taken as-is.
func FromPayload(p *storefront.CartPayload) State {
	if p == nil {
		return State{}
	}
	state := State{
		Total:     p.Total,
		ItemCount: p.ItemCount,
	}
	if len(p.Lines) > 0 {
		state.Items = make([]Item, len(p.Lines))
		for i, line := range p.Lines {
			state.Items[i] = Item{ID: line.ID, Product: line.Product, Quantity: line.Quantity}
		}
	}
	return state
}

func cloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}
