// Package cart owns the in-memory shopping cart for a single client session:
// one line per product, insertion-ordered, with totals recomputed on every
// mutation so reads never observe stale aggregates.
package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"shopfront/internal/catalog"
)

// Line pairs one product with a quantity. Quantity is always >= 1; a line
// whose quantity would drop to zero is removed instead.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// Subtotal returns price x quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store is the authoritative cart state. All methods are safe for concurrent
// use; mutations are serialized behind the mutex so no two interleave.
type Store struct {
	mu         sync.Mutex
	lines      []Line
	open       bool
	totalItems int
	totalPrice decimal.Decimal
}

// NewStore returns an empty, closed cart.
func NewStore() *Store {
	return &Store{totalPrice: decimal.Zero}
}

// Add increments the quantity of an existing line for the product, or appends
// a new line with quantity 1. Products are assumed valid by construction.
func (s *Store) Add(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].Product.ID == p.ID {
			s.lines[i].Quantity++
			s.recompute()
			return
		}
	}
	s.lines = append(s.lines, Line{Product: p, Quantity: 1})
	s.recompute()
}

// Remove deletes the line for the product. Unknown IDs are a no-op.
func (s *Store) Remove(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
	s.recompute()
}

// SetQuantity sets a line's quantity. A quantity <= 0 removes the line
// entirely; zero or negative quantities are never stored.
func (s *Store) SetQuantity(productID, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		s.recompute()
		return
	}
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines[i].Quantity = quantity
			break
		}
	}
	s.recompute()
}

// Clear drops every line and zeroes the totals. The visibility flag is
// untouched.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.recompute()
}

// Toggle flips the cart's open/closed visibility flag.
func (s *Store) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
}

// IsOpen reports the visibility flag.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems returns the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalItems
}

// TotalPrice returns the sum of price x quantity across all lines.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalPrice
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines)
}

func (s *Store) removeLocked(productID int) {
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// recompute rebuilds both derived totals from the line collection. Every
// mutation path ends here while the lock is held.
func (s *Store) recompute() {
	items := 0
	price := decimal.Zero
	for _, l := range s.lines {
		items += l.Quantity
		price = price.Add(l.Subtotal())
	}
	s.totalItems = items
	s.totalPrice = price
}
