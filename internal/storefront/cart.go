package storefront

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/akash06959/agronova/internal/webserver"
)

type cartView struct {
	Items      interface{} `json:"items"`
	Total      float64     `json:"total"`
	ItemsCount int         `json:"items_count"`
}

func (h *handler) getCart(c echo.Context) error {
	return webserver.OK(c, cartView{
		Items:      h.env.Cart.CartItems(),
		Total:      h.env.Cart.CartTotal(),
		ItemsCount: h.env.Cart.CartItemsCount(),
	})
}

type addToCartPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (h *handler) addToCart(c echo.Context) error {
	var payload addToCartPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item")
	}
	p, ok := h.env.Catalog.ProductByID(payload.ProductID)
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	}
	h.env.Cart.AddToCart(p, payload.Quantity)
	h.env.Notify.ShowCartAdded(p.Name)
	return h.getCart(c)
}

func (h *handler) updateQuantity(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity")
	}
	h.env.Cart.UpdateQuantity(id, payload.Quantity)
	return h.getCart(c)
}

func (h *handler) removeFromCart(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	h.env.Cart.RemoveFromCart(id)
	return h.getCart(c)
}

func (h *handler) clearCart(c echo.Context) error {
	h.env.Cart.ClearCart()
	return h.getCart(c)
}

func (h *handler) getWishlist(c echo.Context) error {
	return webserver.OK(c, map[string]interface{}{
		"items": h.env.Cart.WishlistItems(),
		"count": h.env.Cart.WishlistCount(),
	})
}

func (h *handler) addToWishlist(c echo.Context) error {
	var payload struct {
		ProductID int64 `json:"product_id"`
	}
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse wishlist item")
	}
	p, ok := h.env.Catalog.ProductByID(payload.ProductID)
	if !ok {
		return webserver.Fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
	}
	h.env.Cart.AddToWishlist(p)
	h.env.Notify.ShowWishlistAdded(p.Name)
	return h.getWishlist(c)
}

func (h *handler) removeFromWishlist(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	h.env.Cart.RemoveFromWishlist(id)
	return h.getWishlist(c)
}

func (h *handler) clearWishlist(c echo.Context) error {
	h.env.Cart.ClearWishlist()
	return h.getWishlist(c)
}
