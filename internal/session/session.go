package session

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"satchel/internal/cart"
	"satchel/internal/storefront"
)

// Mode is the cart mode of the client session.
type Mode int

const (
	// ModeGuest routes all cart operations to the local guest store.
	ModeGuest Mode = iota
	// ModeReconciling is the transient window while a guest cart is being
	// merged into a freshly authenticated account.
	ModeReconciling
	// ModeAuthenticated routes all cart operations through the remote API.
	ModeAuthenticated
)

func (m Mode) String() string {
	switch m {
	case ModeGuest:
		return "guest"
	case ModeReconciling:
		return "reconciling"
	case ModeAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Loader restores a guest cart from durable client storage.
type Loader interface {
	Load() cart.State
}

// Recorder receives activity entries (merges, checkouts, logins).
type Recorder interface {
	Record(kind, detail string)
}

// Snapshot is the session state the UI renders from.
type Snapshot struct {
	Mode Mode
	Cart cart.State
	User string
}

// Options configure a Session.
type Options struct {
	Client   storefront.CartService
	Guest    *cart.Guest
	Restore  Loader   // reload slot for the guest cart on logout
	Recorder Recorder // optional
	Log      *zap.Logger
}

// Session owns the cart mode state machine. It starts in guest mode and
// cycles Guest -> (Reconciling ->) Authenticated -> Guest for the lifetime of
// the client session. All methods are safe for concurrent use.
type Session struct {
	client   storefront.CartService
	guest    *cart.Guest
	restore  Loader
	recorder Recorder
	log      *zap.Logger

	mu    sync.Mutex
	mode  Mode
	user  string
	state cart.State // server cart cache; meaningless in guest mode
	seq   uint64     // latest issued request; stale responses never commit
}

// New builds a session in guest mode.
func New(opts Options) *Session {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{
		client:   opts.Client,
		guest:    opts.Guest,
		restore:  opts.Restore,
		recorder: opts.Recorder,
		log:      log,
	}
}

// Snapshot returns the current mode and a copy of the cart the UI should
// display: the guest store's cart in guest mode, the server cache otherwise.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	mode := s.mode
	user := s.user
	state := s.state.Clone()
	s.mu.Unlock()

	if mode == ModeGuest {
		state = s.guest.Snapshot()
	}
	return Snapshot{Mode: mode, Cart: state, User: user}
}

// Mode returns the current cart mode.
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Refresh fetches the server cart in authenticated mode. It is the only
// operation that raises the Loading flag. Guest mode needs no refresh.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.mode == ModeGuest {
		s.mu.Unlock()
		return nil
	}
	s.seq++
	id := s.seq
	s.state.Loading = true
	s.mu.Unlock()

	payload, err := s.client.FetchCart(ctx)
	return s.commit(id, cart.FromPayload(payload), err)
}

// AddItem adds quantity of a product to whichever cart the mode selects.
func (s *Session) AddItem(ctx context.Context, product storefront.Product, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	id, remote := s.begin()
	if !remote {
		s.guest.Add(product, quantity)
		return nil
	}
	payload, err := s.client.AddItem(ctx, product.ID, quantity)
	return s.commit(id, cart.FromPayload(payload), err)
}

// UpdateItem sets an exact quantity for a line. Quantities below one are
// rejected; RemoveItem is the only deletion path.
func (s *Session) UpdateItem(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	id, remote := s.begin()
	if !remote {
		s.guest.Update(productID, quantity)
		return nil
	}
	payload, err := s.client.UpdateItem(ctx, productID, quantity)
	return s.commit(id, cart.FromPayload(payload), err)
}

// RemoveItem deletes a line.
func (s *Session) RemoveItem(ctx context.Context, productID string) error {
	id, remote := s.begin()
	if !remote {
		s.guest.Remove(productID)
		return nil
	}
	payload, err := s.client.RemoveItem(ctx, productID)
	return s.commit(id, cart.FromPayload(payload), err)
}

// Clear empties the cart.
func (s *Session) Clear(ctx context.Context) error {
	id, remote := s.begin()
	if !remote {
		s.guest.Clear()
		return nil
	}
	err := s.client.ClearCart(ctx)
	return s.commit(id, cart.State{}, err)
}

// Checkout places an order for the server cart. Guest carts cannot check out;
// the caller must authenticate first.
func (s *Session) Checkout(ctx context.Context) (*storefront.OrderConfirmation, error) {
	id, remote := s.begin()
	if !remote {
		return nil, fmt.Errorf("checkout requires login")
	}

	confirmation, err := s.client.Checkout(ctx)
	if commitErr := s.commit(id, cart.State{}, err); commitErr != nil {
		return nil, commitErr
	}
	if err == nil && confirmation != nil {
		s.record("checkout", fmt.Sprintf("order %s placed", confirmation.OrderID))
	}
	return confirmation, err
}

// LoginSucceeded reacts to a successful login: it merges any accumulated
// guest cart into the account cart exactly once, then fetches the server
// cart. A failed merge keeps the guest cart intact so nothing is lost, and
// the fetch still proceeds so the user sees their account cart.
func (s *Session) LoginSucceeded(ctx context.Context, user string) error {
	s.mu.Lock()
	if s.mode != ModeGuest {
		s.mu.Unlock()
		return nil
	}
	s.user = user
	items := s.guest.MergeItems()
	if len(items) == 0 {
		s.mode = ModeAuthenticated
		s.mu.Unlock()
		s.record("login", user)
		return s.Refresh(ctx)
	}
	s.mode = ModeReconciling
	s.mu.Unlock()
	s.record("login", user)

	mergeErr := s.client.MergeCart(ctx, items)
	if mergeErr == nil {
		s.guest.Clear()
		s.record("merge", fmt.Sprintf("%d guest lines merged", len(items)))
	} else {
		s.log.Warn("guest cart merge failed, keeping guest cart", zap.Error(mergeErr))
	}

	s.mu.Lock()
	s.mode = ModeAuthenticated
	s.mu.Unlock()

	fetchErr := s.Refresh(ctx)
	if mergeErr != nil {
		s.mu.Lock()
		s.state.Error = fmt.Sprintf("cart merge failed: %v", mergeErr)
		s.mu.Unlock()
		return mergeErr
	}
	return fetchErr
}

// Logout discards the authenticated cart from client memory (it stays on the
// server for next login) and reloads the guest cart from durable storage.
func (s *Session) Logout() {
	s.mu.Lock()
	s.mode = ModeGuest
	s.user = ""
	s.state = cart.State{}
	s.seq++ // in-flight authenticated responses must not commit
	s.mu.Unlock()

	if s.restore != nil {
		s.guest.Set(s.restore.Load())
	}
	s.record("logout", "")
}

// begin registers an outbound request in authenticated mode, returning its
// sequence id. In guest mode it reports remote=false and no id is burned.
func (s *Session) begin() (id uint64, remote bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == ModeGuest {
		return 0, false
	}
	s.seq++
	return s.seq, true
}

// commit applies a request's outcome to the server cart cache. Only the most
// recently issued request may commit; anything older is discarded so a slow
// early response cannot regress state a later one already set. On error the
// previous snapshot is kept and only the Error flag changes.
func (s *Session) commit(id uint64, next cart.State, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != s.seq || s.mode == ModeGuest {
		return err
	}
	s.state.Loading = false
	if err != nil {
		s.state.Error = err.Error()
		return err
	}
	next.Loading = false
	next.Error = ""
	s.state = next
	return nil
}

func (s *Session) record(kind, detail string) {
	if s.recorder != nil {
		s.recorder.Record(kind, detail)
	}
}
