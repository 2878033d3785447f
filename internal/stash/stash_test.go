package stash

import (
	"os"
	"path/filepath"
	"testing"

	"satchel/internal/cart"
	"satchel/internal/storefront"
)

func TestSlot_RoundTrip(t *testing.T) {
	slot := New(filepath.Join(t.TempDir(), "subdir", "guest-cart.json"))

	state := cart.State{
		Items: []cart.Item{
			{ID: "p1", Product: storefront.Product{ID: "p1", Name: "Mug", Price: 500}, Quantity: 2},
			{ID: "p2", Product: storefront.Product{ID: "p2", Name: "Kettle", Price: 2500}, Quantity: 1},
		},
	}
	state.Recompute()

	if err := slot.Save(state); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded := slot.Load()
	if len(loaded.Items) != 2 {
		t.Fatalf("Load items = %#v, want 2", loaded.Items)
	}
	if loaded.Items[0].ID != "p1" || loaded.Items[0].Quantity != 2 {
		t.Fatalf("Load items[0] = %#v", loaded.Items[0])
	}
	if loaded.Total != state.Total || loaded.ItemCount != state.ItemCount {
		t.Fatalf("Load totals = %d/%d, want %d/%d", loaded.Total, loaded.ItemCount, state.Total, state.ItemCount)
	}
}

func TestSlot_MissingFileYieldsEmptyCart(t *testing.T) {
	slot := New(filepath.Join(t.TempDir(), "never-written.json"))

	state := slot.Load()
	if len(state.Items) != 0 || state.Total != 0 || state.ItemCount != 0 {
		t.Fatalf("Load = %#v, want empty cart", state)
	}
}

func TestSlot_MalformedPayloadYieldsEmptyCart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guest-cart.json")
	if err := os.WriteFile(path, []byte("{corrupt"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	state := New(path).Load()
	if len(state.Items) != 0 {
		t.Fatalf("Load = %#v, want empty cart", state)
	}
}

func TestSlot_LoadRecomputesTotals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guest-cart.json")
	// Stored totals disagree with the items; the items win.
	payload := `{"items":[{"id":"p1","product":{"id":"p1","name":"Mug","price":500},"quantity":2}],"total":7,"itemCount":99}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	state := New(path).Load()
	if state.Total != 1000 || state.ItemCount != 2 {
		t.Fatalf("totals = %d/%d, want 1000/2", state.Total, state.ItemCount)
	}
}
