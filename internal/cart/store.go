package cart

import "sync"

// Store hands out one cart per customer for the lifetime of the process.
// Carts are created lazily on first access and never torn down; the desktop
// original kept a single static cart, this is the same idea keyed by
// customer so concurrent sessions do not share state.
type Store struct {
	mu    sync.Mutex
	carts map[int64]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[int64]*Cart)}
}

// For returns the cart owned by customerID, creating it if needed.
func (s *Store) For(customerID int64) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[customerID]
	if !ok {
		c = New()
		s.carts[customerID] = c
	}
	return c
}
