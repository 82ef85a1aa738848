package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ZairBalam/soundshop/internal/cart"
	"github.com/ZairBalam/soundshop/internal/catalog"
	"github.com/ZairBalam/soundshop/internal/events"
	"github.com/ZairBalam/soundshop/internal/logging"
)

type CartHTTP struct {
	Cart    *cart.Engine
	Catalog *catalog.Catalog
	Events  *events.Producer
}

type cartView struct {
	Items     []cart.Line `json:"items"`
	ItemCount int         `json:"item_count"`
	Totals    cart.Totals `json:"totals"`
}

func (h *CartHTTP) view() cartView {
	return cartView{
		Items:     h.Cart.Lines(),
		ItemCount: h.Cart.ItemCount(),
		Totals:    h.Cart.Totals(),
	}
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.view())
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return c.JSON(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == "" {
		l.Warn("add_to_cart_error", "status", 400, "reason", "product_id required")
		return c.JSON(http.StatusBadRequest, "product_id required")
	}

	product, ok := h.Catalog.ByID(req.ProductID)
	if !ok {
		l.Warn("add_to_cart_error", "status", 404, "product_id", req.ProductID)
		return c.JSON(http.StatusNotFound, "product not found")
	}

	if err := h.Cart.AddItem(product, req.Quantity); err != nil {
		l.Error("add_to_cart_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "item_added", req.ProductID)
	l.Info("item added to cart", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, h.view())
}

func (h *CartHTTP) IncrementItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.increment")

	if err := h.Cart.IncrementItem(c.Param("id")); err != nil {
		l.Error("increment_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, h.view())
}

func (h *CartHTTP) DecrementItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.decrement")

	if err := h.Cart.DecrementItem(c.Param("id")); err != nil {
		l.Error("decrement_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, h.view())
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	id := c.Param("id")
	if err := h.Cart.RemoveItem(id); err != nil {
		l.Error("remove_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "item_removed", id)
	return c.JSON(http.StatusOK, h.view())
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Cart.Clear(); err != nil {
		l.Error("clear_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, "internal error")
	}

	h.publish(c, "cart_cleared", "")
	l.Info("cart cleared")
	return c.JSON(http.StatusOK, h.view())
}

func (h *CartHTTP) publish(c echo.Context, eventType, productID string) {
	ctx := c.Request().Context()
	event := map[string]any{
		"type":       eventType,
		"product_id": productID,
	}
	if err := h.Events.Publish(ctx, events.TopicCartEvents, productID, event); err != nil {
		logging.FromContext(ctx).Error("event publish failed", "error", err)
	}
}
