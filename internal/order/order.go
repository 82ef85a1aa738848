// Package order turns a finalized cart into immutable order records and
// keeps the persisted order history. Orders are snapshots: later changes
// to products or the live cart never reach back into them.
package order

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ZairBalam/soundshop/internal/cart"
	"github.com/ZairBalam/soundshop/internal/store"
)

const storageKey = "soundshop_orders"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
)

// Address is the shipping address captured at confirmation time.
type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// Order is immutable once created.
type Order struct {
	ID        string      `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Lines     []cart.Line `json:"products"`
	Totals    cart.Totals `json:"totals"`
	Address   Address     `json:"address"`
	Status    Status      `json:"status"`
}

type Ledger struct {
	mu     sync.Mutex
	store  *store.Store
	orders []Order

	now   func() time.Time
	newID func() string
}

// NewLedger restores the persisted history; absent or corrupt state
// starts it empty.
func NewLedger(st *store.Store) *Ledger {
	l := &Ledger{
		store: st,
		now:   time.Now,
		newID: uuid.NewString,
	}
	var saved []Order
	if st.GetJSON(storageKey, &saved) {
		l.orders = saved
	}
	return l
}

// Place snapshots the given lines and totals into a new pending order,
// appends it to the history and persists before returning. It never
// clears the cart; the caller does that only after Place succeeds.
func (l *Ledger) Place(lines []cart.Line, totals cart.Totals, addr Address) (Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ord := Order{
		ID:        l.newID(),
		CreatedAt: l.now(),
		Lines:     cloneLines(lines),
		Totals:    totals,
		Address:   addr,
		Status:    StatusPending,
	}

	appended := append(append([]Order(nil), l.orders...), ord)
	if err := l.store.SetJSON(storageKey, appended); err != nil {
		return Order{}, err
	}
	l.orders = appended
	return ord, nil
}

// History returns the orders most-recent first. Each order is a detached
// copy; mutating one never reaches back into the ledger.
func (l *Ledger) History() []Order {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Order, 0, len(l.orders))
	for i := len(l.orders) - 1; i >= 0; i-- {
		ord := l.orders[i]
		ord.Lines = cloneLines(ord.Lines)
		out = append(out, ord)
	}
	return out
}

func cloneLines(lines []cart.Line) []cart.Line {
	out := make([]cart.Line, len(lines))
	for i, line := range lines {
		out[i] = cart.Line{Product: line.Product.Clone(), Quantity: line.Quantity}
	}
	return out
}
