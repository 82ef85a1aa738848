// Package checkout drives order submission: simulated payment delay,
// single in-flight guard, order placement, then cart clearing. The cart
// is cleared only after the order has been persisted; a failed placement
// leaves the cart intact.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ZairBalam/soundshop/internal/cart"
	"github.com/ZairBalam/soundshop/internal/events"
	"github.com/ZairBalam/soundshop/internal/logging"
	"github.com/ZairBalam/soundshop/internal/order"
)

var (
	ErrValidation = errors.New("validation")
	ErrEmptyCart  = errors.New("cart is empty")
	ErrInProgress = errors.New("checkout already in progress")
)

type Service struct {
	Cart   *cart.Engine
	Orders *order.Ledger
	Events *events.Producer

	// Delay models the payment gateway round trip. It has no timeout
	// and no cancellation; resubmission is blocked instead.
	Delay time.Duration

	inFlight atomic.Bool
}

// Submit validates the address, waits out the simulated payment delay,
// places the order and clears the cart. A second Submit while one is
// outstanding fails with ErrInProgress without touching any state.
func (s *Service) Submit(ctx context.Context, addr order.Address) (order.Order, error) {
	l := logging.FromContext(ctx).With("svc", "checkout.submit")

	if err := validateAddress(addr); err != nil {
		return order.Order{}, err
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		l.Warn("submit rejected", "reason", "already in progress")
		return order.Order{}, ErrInProgress
	}
	defer s.inFlight.Store(false)

	lines := s.Cart.Lines()
	if len(lines) == 0 {
		return order.Order{}, ErrEmptyCart
	}
	totals := s.Cart.Totals()

	time.Sleep(s.Delay)

	ord, err := s.Orders.Place(lines, totals, addr)
	if err != nil {
		l.Error("order placement failed", "error", err)
		return order.Order{}, err
	}

	if err := s.Cart.Clear(); err != nil {
		l.Error("cart clear failed", "order_id", ord.ID, "error", err)
		return ord, err
	}

	if err := s.Events.Publish(ctx, events.TopicOrderEvents, ord.ID, map[string]any{
		"type":     "order_placed",
		"order_id": ord.ID,
		"total":    ord.Totals.Total,
	}); err != nil {
		l.Error("event publish failed", "error", err)
	}

	l.Info("order placed", "order_id", ord.ID, "total", ord.Totals.Total)
	return ord, nil
}

func validateAddress(addr order.Address) error {
	fields := []struct {
		name  string
		value string
	}{
		{"name", addr.Name},
		{"phone", addr.Phone},
		{"street", addr.Street},
		{"city", addr.City},
		{"postal_code", addr.PostalCode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}
	return nil
}
