package cart

import (
	"errors"
	"testing"

	"satchel/internal/storefront"
)

type recordingSaver struct {
	saves []State
	err   error
}

func (r *recordingSaver) Save(s State) error {
	r.saves = append(r.saves, s)
	return r.err
}

func mug() storefront.Product {
	return storefront.Product{ID: "p1", Name: "Mug", Price: 500, Stock: 10}
}

func kettle() storefront.Product {
	return storefront.Product{ID: "p2", Name: "Kettle", Price: 2500, Stock: 3}
}

func TestGuest_AddIncrementsExistingLine(t *testing.T) {
	saver := &recordingSaver{}
	g := NewGuest(saver, nil)

	g.Add(mug(), 2)
	snap := g.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 2 {
		t.Fatalf("after first add: %#v", snap.Items)
	}
	if snap.Total != 1000 || snap.ItemCount != 2 {
		t.Fatalf("totals = %d/%d, want 1000/2", snap.Total, snap.ItemCount)
	}

	g.Add(mug(), 1)
	snap = g.Snapshot()
	if len(snap.Items) != 1 {
		t.Fatalf("duplicate line created: %#v", snap.Items)
	}
	if snap.Items[0].Quantity != 3 || snap.Total != 1500 || snap.ItemCount != 3 {
		t.Fatalf("after second add: qty=%d total=%d count=%d", snap.Items[0].Quantity, snap.Total, snap.ItemCount)
	}

	if len(saver.saves) != 2 {
		t.Fatalf("saves = %d, want 2 (one per mutation)", len(saver.saves))
	}
}

func TestGuest_TotalsAlwaysMatchItems(t *testing.T) {
	g := NewGuest(&recordingSaver{}, nil)

	g.Add(mug(), 2)
	g.Add(kettle(), 1)
	g.Update("p1", 5)
	g.Remove("p2")
	g.Add(kettle(), 4)
	g.Update("p2", 2)

	snap := g.Snapshot()
	var total int64
	count := 0
	for _, item := range snap.Items {
		total += item.Product.Price * int64(item.Quantity)
		count += item.Quantity
	}
	if snap.Total != total || snap.ItemCount != count {
		t.Fatalf("derived totals drifted: state %d/%d, recomputed %d/%d", snap.Total, snap.ItemCount, total, count)
	}

	seen := map[string]bool{}
	for _, item := range snap.Items {
		if seen[item.ID] {
			t.Fatalf("duplicate id %q in %#v", item.ID, snap.Items)
		}
		seen[item.ID] = true
	}
}

func TestGuest_UpdateAbsentIDIsNoop(t *testing.T) {
	saver := &recordingSaver{}
	g := NewGuest(saver, nil)
	g.Add(mug(), 1)

	before := g.Snapshot()
	g.Update("missing", 9)
	after := g.Snapshot()

	if len(after.Items) != len(before.Items) || after.Total != before.Total {
		t.Fatalf("no-op update changed state: %#v -> %#v", before, after)
	}
	if len(saver.saves) != 1 {
		t.Fatalf("no-op update persisted; saves = %d", len(saver.saves))
	}
}

func TestGuest_RemoveAndClear(t *testing.T) {
	g := NewGuest(&recordingSaver{}, nil)
	g.Add(mug(), 2)
	g.Add(kettle(), 1)

	g.Remove("p1")
	snap := g.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].ID != "p2" {
		t.Fatalf("after remove: %#v", snap.Items)
	}
	if snap.Total != 2500 || snap.ItemCount != 1 {
		t.Fatalf("totals after remove = %d/%d", snap.Total, snap.ItemCount)
	}

	g.Clear()
	snap = g.Snapshot()
	if len(snap.Items) != 0 || snap.Total != 0 || snap.ItemCount != 0 {
		t.Fatalf("after clear: %#v", snap)
	}
}

func TestGuest_SaveFailureIsNonFatal(t *testing.T) {
	saver := &recordingSaver{err: errors.New("quota exceeded")}
	g := NewGuest(saver, nil)

	g.Add(mug(), 2)
	snap := g.Snapshot()
	if len(snap.Items) != 1 || snap.Total != 1000 {
		t.Fatalf("in-memory state lost on save failure: %#v", snap)
	}
}

func TestGuest_SetRestoresWholesale(t *testing.T) {
	g := NewGuest(&recordingSaver{}, nil)

	restored := State{
		Items:     []Item{{ID: "p1", Product: mug(), Quantity: 3}},
		Total:     1500,
		ItemCount: 3,
		Loading:   true,
		Error:     "stale",
	}
	g.Set(restored)

	snap := g.Snapshot()
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 3 {
		t.Fatalf("Set did not restore items: %#v", snap.Items)
	}
	if snap.Loading || snap.Error != "" {
		t.Fatalf("Set should drop transient flags: %#v", snap)
	}

	// Mutating the input after Set must not leak into the store.
	restored.Items[0].Quantity = 99
	snap = g.Snapshot()
	if snap.Items[0].Quantity != 3 {
		t.Fatalf("Set shares memory with caller: %#v", snap.Items)
	}
}

func TestGuest_MergeItemsCarryOnlyIdentityAndQuantity(t *testing.T) {
	g := NewGuest(&recordingSaver{}, nil)
	if got := g.MergeItems(); got != nil {
		t.Fatalf("MergeItems on empty cart = %#v, want nil", got)
	}

	g.Add(mug(), 3)
	g.Add(kettle(), 1)
	items := g.MergeItems()
	if len(items) != 2 {
		t.Fatalf("MergeItems = %#v", items)
	}
	if items[0].ID != "p1" || items[0].Quantity != 3 {
		t.Fatalf("MergeItems[0] = %#v", items[0])
	}
}

func TestFromPayload_ConvertsServerCart(t *testing.T) {
	payload := &storefront.CartPayload{
		Lines:     []storefront.CartLine{{ID: "p1", Product: mug(), Quantity: 2}},
		Total:     1000,
		ItemCount: 2,
	}
	state := FromPayload(payload)
	if len(state.Items) != 1 || state.Items[0].ID != "p1" {
		t.Fatalf("FromPayload items = %#v", state.Items)
	}
	if state.Total != 1000 || state.ItemCount != 2 {
		t.Fatalf("FromPayload totals = %d/%d", state.Total, state.ItemCount)
	}

	if got := FromPayload(nil); len(got.Items) != 0 || got.Total != 0 {
		t.Fatalf("FromPayload(nil) = %#v, want zero state", got)
	}
}
