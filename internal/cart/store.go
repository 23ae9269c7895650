package cart

import (
	"sync"
	"time"

	"github.com/somnath11som/webeF/internal/domain"
)

// Store holds the line items of one shopper's cart.
// Items stay unique by ID and keep insertion order.
type Store struct {
	mu    sync.RWMutex
	items []domain.CartItem

	clearTimer *time.Timer
}

// NewStore creates an empty cart.
func NewStore() *Store {
	return &Store{}
}

// Add appends item, or bumps the quantity of the entry that already has its ID.
// A non-positive incoming quantity counts as 1.
func (s *Store) Add(item domain.CartItem) {
	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i].Quantity += qty
		return
	}
	item.Quantity = qty
	s.items = append(s.items, item)
}

// Remove deletes the entry regardless of its quantity. Unknown ids are a no-op.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

// UpdateQuantity sets the quantity of an entry; anything below 1 removes it.
func (s *Store) UpdateQuantity(id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		s.removeLocked(id)
		return
	}
	if i := s.indexOf(id); i >= 0 {
		s.items[i].Quantity = quantity
	}
}

// Clear empties the cart and cancels any pending scheduled clear.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	if s.clearTimer != nil {
		s.clearTimer.Stop()
		s.clearTimer = nil
	}
}

// ClearAfter schedules a Clear once d has elapsed. A later call replaces the
// earlier schedule.
func (s *Store) ClearAfter(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}
	s.clearTimer = time.AfterFunc(d, s.Clear)
}

// Items returns a copy of the lines in insertion order.
func (s *Store) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len is the number of distinct lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Count is the number of units across all lines.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

// Total is recomputed from the lines on every call.
func (s *Store) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Total(s.items)
}

// Total sums price * quantity over items.
func Total(items []domain.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeLocked(id string) {
	if i := s.indexOf(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}
