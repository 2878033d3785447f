// Package session owns the cart mode state machine and routes cart
// operations to the right backend.
//
// # Modes
//
// A session cycles between three modes:
//
//	Guest ──login succeeded──▶ Reconciling ──▶ Authenticated
//	  ▲      (only when the        (merge        │
//	  │       guest cart has        in flight)   │
//	  │       items; otherwise                   │
//	  │       straight to           ◀──logout────┘
//	  │       Authenticated)
//	  └──────────────────────────────────────────┘
//
// In guest mode every operation is a synchronous mutation of the local guest
// store. In authenticated mode every operation is a round trip to the
// storefront API whose response wholesale-replaces the cached cart. There is
// no terminal state; the machine cycles for the life of the process.
//
// # Reconciliation
//
// On login success the accumulated guest cart is folded into the account cart
// exactly once: the guest lines (id + quantity only) go to the merge
// endpoint, and on success the local guest copy is discarded. On failure the
// guest cart is left intact so no data is lost, the error is surfaced on the
// cart state, and the follow-up fetch proceeds regardless so the user at
// least sees their pre-existing account cart. Conflict policy for products
// present on both sides belongs to the server; the client never sums
// quantities itself.
//
// An empty guest cart skips the merge call entirely.
//
// # Request Sequencing
//
// Authenticated operations resolve in whatever order the network delivers
// them. Each outbound request takes a monotonically increasing sequence id,
// and only the most recently issued request is allowed to commit its
// response. A slow early response arriving after a faster later one is
// discarded instead of regressing the displayed cart. Logout bumps the
// sequence so in-flight responses from the old account cannot land either.
//
// # Failure Semantics
//
// A failed authenticated operation never mutates the cached items or totals;
// the previous snapshot stays displayed, Error carries a message for the UI,
// and nothing is retried automatically. Only Refresh raises Loading —
// add/update/remove are treated as background mutations so each click does
// not flash a spinner.
package session
