package storefront

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/akash06959/agronova/internal/webserver"
)

func (h *handler) listProducts(c echo.Context) error {
	if err := h.env.Catalog.LoadError(); err != nil {
		return webserver.Fail(c, http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", err.Error())
	}
	if category := c.QueryParam("category"); category != "" {
		return webserver.OK(c, h.env.Catalog.ProductsByCategory(category))
	}
	return webserver.OK(c, h.env.Catalog.ActiveProducts())
}

func (h *handler) featuredProducts(c echo.Context) error {
	return webserver.OK(c, h.env.Catalog.FeaturedProducts())
}

func (h *handler) searchProducts(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return webserver.OK(c, h.env.Catalog.ActiveProducts())
	}
	return webserver.OK(c, h.env.Catalog.SearchProducts(q))
}

func (h *handler) productBySlug(c echo.Context) error {
	p, ok := h.env.Catalog.ProductBySlug(c.Param("slug"))
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	}
	return webserver.OK(c, p)
}

func (h *handler) categories(c echo.Context) error {
	return webserver.OK(c, h.env.Catalog.UniqueCategories())
}

func (h *handler) categoryStats(c echo.Context) error {
	return webserver.OK(c, h.env.Catalog.CategoryStats())
}
