// Package cart owns the shopping cart state: an ordered list of line items
// unique by id, mutated only through Store operations, with every mutation
// announced to listeners (persistence is one of them).
package cart

import (
	"fmt"
	"sync"

	"futur-backend/internal/domain"

	"github.com/shopspring/decimal"
)

// Listener observes cart mutations. CartChanged receives a snapshot of the
// item list once the mutation has settled.
type Listener interface {
	CartChanged(items []domain.LineItem)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(items []domain.LineItem)

func (f ListenerFunc) CartChanged(items []domain.LineItem) { f(items) }

// Store is the single source of truth for one cart.
type Store struct {
	mu        sync.Mutex
	items     []domain.LineItem
	isOpen    bool
	listeners []Listener
}

// NewStore creates a store seeded with initial items (typically hydrated from
// durable storage). Seeding does not notify listeners.
func NewStore(initial []domain.LineItem, listeners ...Listener) *Store {
	items := make([]domain.LineItem, 0, len(initial))
	for _, it := range initial {
		items = append(items, cloneItem(it))
	}
	return &Store{items: items, listeners: listeners}
}

// Subscribe registers a listener for subsequent mutations.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// AddItem appends item, or increases the quantity of the line with the same
// id. A quantity below 1 counts as 1.
func (s *Store) AddItem(item domain.LineItem) error {
	return s.add(item, 0)
}

// AddItemWithin is AddItem with an upper bound on the resulting line
// quantity. Exceeding it fails with domain.ErrInvalidQuantity and leaves the
// cart untouched.
func (s *Store) AddItemWithin(item domain.LineItem, maxQuantity int) error {
	return s.add(item, maxQuantity)
}

func (s *Store) add(item domain.LineItem, limit int) error {
	if item.ID == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidLineItem)
	}
	if item.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: negative unit price", domain.ErrInvalidLineItem)
	}
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(item.ID)
	if limit > 0 {
		q := item.Quantity
		if i >= 0 {
			q += s.items[i].Quantity
		}
		if q > limit {
			return fmt.Errorf("%w: line %q would hold %d, limit is %d", domain.ErrInvalidQuantity, item.ID, q, limit)
		}
	}

	if i >= 0 {
		s.items[i].Quantity += item.Quantity
	} else {
		s.items = append(s.items, cloneItem(item))
	}
	s.notify()
	return nil
}

// RemoveItem deletes the line with id. Unknown ids are a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remove(id)
	s.notify()
}

// UpdateQuantity sets the quantity of line id to exactly q. q <= 0 removes the
// line. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(id string, q int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q <= 0 {
		s.remove(id)
	} else if i := s.indexOf(id); i >= 0 {
		s.items[i].Quantity = q
	}
	s.notify()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.notify()
}

// Deduct takes the ordered quantities out of the cart in one step. A line
// holding more than was ordered keeps the remainder; lines added after the
// order snapshot are left alone.
func (s *Store) Deduct(ordered []domain.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range ordered {
		i := s.indexOf(o.ID)
		if i < 0 {
			continue
		}
		if s.items[i].Quantity > o.Quantity {
			s.items[i].Quantity -= o.Quantity
		} else {
			s.remove(o.ID)
		}
	}
	s.notify()
}

// Total is the sum of unitPrice * quantity, computed on every call.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return total(s.items)
}

// ItemCount is the sum of quantities.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return itemCount(s.items)
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Item returns the line with id.
func (s *Store) Item(id string) (domain.LineItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return cloneItem(s.items[i]), true
	}
	return domain.LineItem{}, false
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// SetOpen toggles the drawer visibility flag. It is UI state and is not
// persisted.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = open
}

// View returns items, derived totals and visibility read under one lock.
func (s *Store) View() domain.CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CartView{
		Items:     s.snapshot(),
		Total:     total(s.items),
		ItemCount: itemCount(s.items),
		IsOpen:    s.isOpen,
	}
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) remove(id string) {
	if i := s.indexOf(id); i >= 0 {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

// notify runs with s.mu held so listeners observe mutations in order.
func (s *Store) notify() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.snapshot()
	for _, l := range s.listeners {
		l.CartChanged(snap)
	}
}

func (s *Store) snapshot() []domain.LineItem {
	out := make([]domain.LineItem, len(s.items))
	for i, it := range s.items {
		out[i] = cloneItem(it)
	}
	return out
}

func total(items []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Subtotal())
	}
	return sum
}

func itemCount(items []domain.LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func cloneItem(it domain.LineItem) domain.LineItem {
	if it.Configuration != nil {
		cfg := *it.Configuration
		if cfg.Jacket != nil {
			j := *cfg.Jacket
			cfg.Jacket = &j
		}
		it.Configuration = &cfg
	}
	return it
}
