// Package cart is the single source of truth for the buyer's pending
// selection. It mirrors the web client's cart: one line per product,
// persisted under a fixed key so it survives reloads, broadcasting a
// change event on every mutation.
package cart

import (
	"encoding/json"
	"sync"
)

// Product is a catalog entry as the client sees it from GET /api/products.
// Declared here so embedders depend on nothing but this package.
type Product struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	OfferPrice   float64  `json:"offerPrice"`
	Images       []string `json:"images"`
	SpecialOffer bool     `json:"specialOffer"`
}

// EffectivePrice is the unit price a buyer actually pays.
func (p Product) EffectivePrice() float64 {
	if p.SpecialOffer && p.OfferPrice > 0 {
		return p.OfferPrice
	}
	return p.Price
}

// LineItem is one cart line. Price is the effective unit price snapshotted
// at add time; later catalog edits do not reprice the cart. The JSON shape
// is exactly what checkout submits as the order item snapshot.
type LineItem struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Images   []string `json:"images"`
	Quantity int      `json:"quantity"`
}

// Manager owns the ordered line-item list. All mutations persist the full
// cart and notify subscribers through the store.
type Manager struct {
	store Store

	mu    sync.Mutex
	items []LineItem
}

// NewManager loads the persisted cart. An absent or unreadable payload
// initializes an empty cart; browsing and checkout must stay usable even
// when storage is corrupt.
func NewManager(store Store) *Manager {
	m := &Manager{store: store}
	if raw, err := store.Load(); err == nil && len(raw) > 0 {
		var items []LineItem
		if json.Unmarshal(raw, &items) == nil {
			m.items = items
		}
	}
	return m
}

// AddItem merges the product into the cart: an existing line for the same
// product grows by qty, a new product appends a fresh line. Quantities
// below 1 count as 1.
func (m *Manager) AddItem(p Product, qty int) error {
	if qty < 1 {
		qty = 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == p.ID {
			m.items[i].Quantity += qty
			return m.persist()
		}
	}
	m.items = append(m.items, LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.EffectivePrice(),
		Images:   append([]string(nil), p.Images...),
		Quantity: qty,
	})
	return m.persist()
}

// UpdateQuantity changes a line's quantity by delta, never below 1; use
// RemoveItem to drop a line. Unknown ids are a no-op.
func (m *Manager) UpdateQuantity(productID int64, delta int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == productID {
			q := m.items[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			m.items[i].Quantity = q
			return m.persist()
		}
	}
	return nil
}

func (m *Manager) RemoveItem(productID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == productID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return m.persist()
		}
	}
	return nil
}

func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return m.store.Clear()
}

// Items returns a copy in insertion order.
func (m *Manager) Items() []LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LineItem, len(m.items))
	copy(out, m.items)
	return out
}

// Total is the sum of snapshotted unit price times quantity.
func (m *Manager) Total() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var total float64
	for _, it := range m.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// Count is the number of units across all lines (the cart badge number).
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, it := range m.items {
		n += it.Quantity
	}
	return n
}

func (m *Manager) Subscribe(fn func()) (unsubscribe func()) {
	return m.store.Subscribe(fn)
}

// persist writes the full cart. Caller must hold m.mu.
func (m *Manager) persist() error {
	b, err := json.Marshal(m.items)
	if err != nil {
		return err
	}
	return m.store.Save(b)
}
