// Package cart owns the shopping cart: one ordered collection of
// product+quantity lines, stock-clamped on every mutation, re-persisted in
// full after each change and restored at startup. Totals are derived on
// read, never stored.
package cart

import (
	"math"
	"sync"

	"github.com/ZairBalam/soundshop/internal/catalog"
	"github.com/ZairBalam/soundshop/internal/store"
)

const (
	TaxRate               = 0.16
	FreeShippingThreshold = 3000.0
	FlatShippingFee       = 149.0

	storageKey = "soundshop_cart"
)

// Line pairs a product snapshot with a positive quantity. At most one line
// exists per product id; 1 <= Quantity <= Product.Stock always holds.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Totals is derived from the line collection on every read.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

type Engine struct {
	mu    sync.Mutex
	store *store.Store
	lines []Line
}

// NewEngine restores the persisted cart; absent or corrupt state starts
// the cart empty.
func NewEngine(st *store.Store) *Engine {
	e := &Engine{store: st}
	var saved []Line
	if st.GetJSON(storageKey, &saved) {
		e.lines = saved
	}
	return e
}

// AddItem merges quantity into the line for product, clamping to stock.
// A quantity below 1 is treated as 1. If clamping leaves nothing to add
// (stock 0) no line is created.
func (e *Engine) AddItem(product catalog.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	// Bound the request before summing so an absurd quantity cannot
	// overflow past the existing amount.
	quantity = clamp(quantity, product.Stock)

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].Product.ID == product.ID {
			e.lines[i].Quantity = clamp(e.lines[i].Quantity+quantity, product.Stock)
			return e.persist()
		}
	}

	if quantity < 1 {
		return nil
	}
	e.lines = append(e.lines, Line{Product: product.Clone(), Quantity: quantity})
	return e.persist()
}

// RemoveItem deletes the line for productID; unknown ids are no-ops.
func (e *Engine) RemoveItem(productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].Product.ID == productID {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			return e.persist()
		}
	}
	return nil
}

// IncrementItem bumps the quantity by one, clamped to stock.
func (e *Engine) IncrementItem(productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].Product.ID == productID {
			e.lines[i].Quantity = clamp(e.lines[i].Quantity+1, e.lines[i].Product.Stock)
			return e.persist()
		}
	}
	return nil
}

// DecrementItem lowers the quantity by one but never below 1. Removing a
// line is an explicit separate action, never a side effect of decrement.
func (e *Engine) DecrementItem(productID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.lines {
		if e.lines[i].Product.ID == productID {
			if e.lines[i].Quantity > 1 {
				e.lines[i].Quantity--
				return e.persist()
			}
			return nil
		}
	}
	return nil
}

// Clear empties the cart.
func (e *Engine) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.lines = nil
	return e.persist()
}

// Lines returns a deep copy of the current line collection in insertion
// order.
func (e *Engine) Lines() []Line {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneLines(e.lines)
}

// Totals recomputes subtotal, tax, shipping and total from the lines.
func (e *Engine) Totals() Totals {
	e.mu.Lock()
	defer e.mu.Unlock()

	var subtotal float64
	for i := range e.lines {
		subtotal += e.lines[i].Product.Price * float64(e.lines[i].Quantity)
	}

	tax := math.Round(subtotal*TaxRate*100) / 100
	shipping := FlatShippingFee
	if subtotal >= FreeShippingThreshold {
		shipping = 0
	}

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
	}
}

// ItemCount sums the quantities across all lines.
func (e *Engine) ItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := 0
	for i := range e.lines {
		count += e.lines[i].Quantity
	}
	return count
}

func (e *Engine) persist() error {
	lines := e.lines
	if lines == nil {
		lines = []Line{}
	}
	return e.store.SetJSON(storageKey, lines)
}

func clamp(quantity, stock int) int {
	if quantity > stock {
		return stock
	}
	return quantity
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{Product: l.Product.Clone(), Quantity: l.Quantity}
	}
	return out
}
