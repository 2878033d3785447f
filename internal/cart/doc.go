// Package cart holds the cart domain state shared by guest and authenticated
// modes, plus the guest cart store.
//
// # State Shape
//
// Both modes populate the same State shape: an ordered list of Items
// (insertion order is display order), derived Total and ItemCount, and the
// transient Loading/Error flags that only authenticated operations use.
// Totals are always recomputed from scratch after a mutation so they can
// never drift from the items they summarize.
//
// # Guest Store
//
// Guest is the synchronous, client-only store used while the visitor is
// unauthenticated. It never touches the network. Every mutation writes the
// full state through its Saver (a durable storage slot, see the stash
// package) before returning. Save failures are logged and swallowed: losing
// durability must not crash a working session.
//
// Line ids equal product ids, so adding an already-present product increments
// its quantity instead of appending a duplicate line.
//
// # Concurrency
//
// Guest is mutex-guarded and returns defensive copies from Snapshot, the same
// discipline the rest of the codebase uses for shared stores. Bubble Tea
// commands run on their own goroutines, so "single UI thread" cannot be
// assumed here.
package cart
