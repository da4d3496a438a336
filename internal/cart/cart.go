package cart

import "sync"

// Line is one cart entry. Quantity is always > 0; a line that would drop to
// zero or below is removed instead.
type Line struct {
	ProductID int64
	Qty       int
}

// Cart holds the items a customer intends to order, in insertion order.
// It lives in memory only: nothing is persisted until checkout, and a cart
// is discarded when the process exits.
//
// All mutation goes through the mutex. The desktop original had exactly one
// interactive session; serving the same pipeline over HTTP means Add/Set are
// read-modify-write under concurrency, so the lock is part of the contract,
// and checkout runs its whole protocol while holding it (see WithLock).
type Cart struct {
	mu    sync.Mutex
	qty   map[int64]int
	order []int64
}

func New() *Cart {
	return &Cart{qty: make(map[int64]int)}
}

// Add accumulates qty onto an existing line or appends a new one.
// Invalid input (non-positive id or qty) is silently ignored; the original
// behaved this way and callers rely on it, so stricter rejection belongs in
// a caller-side validation layer, not here.
func (c *Cart) Add(productID int64, qty int) {
	if productID <= 0 || qty <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(productID, qty)
}

// Set overwrites the quantity for productID. Zero or negative removes the
// line. Invalid ids are silently ignored.
func (c *Cart) Set(productID int64, qty int) {
	if productID <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if qty <= 0 {
		c.remove(productID)
		return
	}
	if _, ok := c.qty[productID]; !ok {
		c.order = append(c.order, productID)
	}
	c.qty[productID] = qty
}

func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
}

// Snapshot returns a copy of the lines in insertion order. Mutating the
// returned slice does not affect the cart.
func (c *Cart) Snapshot() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.qty) == 0
}

// WithLock runs fn while holding the cart's mutex, giving fn a view that
// reads and clears the cart without interleaving with other mutations.
// Checkout uses this to serialize whole submissions per cart: the snapshot
// it validates is the snapshot it persists, and a concurrent Add cannot
// slip between the final line write and Clear.
func (c *Cart) WithLock(fn func(v View) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(View{c: c})
}

// View is the locked projection handed to WithLock callbacks. It must not
// escape the callback.
type View struct{ c *Cart }

func (v View) Snapshot() []Line { return v.c.snapshot() }
func (v View) IsEmpty() bool    { return len(v.c.qty) == 0 }
func (v View) Clear()           { v.c.clear() }

// internal helpers, caller holds the lock

func (c *Cart) add(productID int64, qty int) {
	if _, ok := c.qty[productID]; !ok {
		c.order = append(c.order, productID)
	}
	c.qty[productID] += qty
}

func (c *Cart) remove(productID int64) {
	if _, ok := c.qty[productID]; !ok {
		return
	}
	delete(c.qty, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) clear() {
	c.qty = make(map[int64]int)
	c.order = nil
}

func (c *Cart) snapshot() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, Line{ProductID: id, Qty: c.qty[id]})
	}
	return out
}
