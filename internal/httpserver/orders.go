package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ZairBalam/soundshop/internal/checkout"
	"github.com/ZairBalam/soundshop/internal/logging"
	"github.com/ZairBalam/soundshop/internal/order"
)

type OrderHTTP struct {
	Checkout *checkout.Service
	Orders   *order.Ledger
}

func (h *OrderHTTP) SubmitCheckout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	var req struct {
		Address order.Address `json:"address"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("checkout_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}

	ord, err := h.Checkout.Submit(ctx, req.Address)
	switch {
	case errors.Is(err, checkout.ErrValidation):
		l.Warn("checkout_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, err.Error())
	case errors.Is(err, checkout.ErrEmptyCart):
		l.Warn("checkout_error", "status", 422, "error", err)
		return c.JSON(http.StatusUnprocessableEntity, "cart is empty")
	case errors.Is(err, checkout.ErrInProgress):
		l.Warn("checkout_error", "status", 409, "error", err)
		return c.JSON(http.StatusConflict, "checkout already in progress")
	case err != nil:
		l.Error("checkout_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusCreated, ord)
}

func (h *OrderHTTP) GetOrders(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Orders.History())
}
