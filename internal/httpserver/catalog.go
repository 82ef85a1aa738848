package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ZairBalam/soundshop/internal/catalog"
	"github.com/ZairBalam/soundshop/internal/logging"
)

type CatalogHTTP struct {
	Catalog *catalog.Catalog
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	term := c.QueryParam("q")
	category := c.QueryParam("category")
	if category == "" {
		category = catalog.CategoryAll
	}

	products := h.Catalog.Search(term, category)

	l.Info("products listed", "count", len(products), "term", term, "category", category)
	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_product")

	id := c.Param("id")
	product, ok := h.Catalog.ByID(id)
	if !ok {
		l.Warn("product not found", "status", 404, "product_id", id)
		return c.JSON(http.StatusNotFound, "product not found")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.Categories())
}
