package storefront

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/akash06959/agronova/internal/domain"
	"github.com/akash06959/agronova/internal/webserver"
)

type checkoutPayload struct {
	PaymentMethod   string `json:"payment_method"`
	ShippingAddress string `json:"shipping_address"`
	City            string `json:"city"`
	State           string `json:"state"`
	Pincode         string `json:"pincode"`
}

// checkout places a backend order from the current cart, then clears the
// cart. The two steps are independent dispatches with no transaction
// between them; only backend success triggers the clear.
func (h *handler) checkout(c echo.Context) error {
	sess, ok := h.env.Users.Session()
	if !ok {
		return webserver.Fail(c, http.StatusUnauthorized, "NO_SESSION", "Login required for checkout")
	}

	var payload checkoutPayload
	if err := c.Bind(&payload); err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse checkout details")
	}
	if payload.ShippingAddress == "" || payload.City == "" || payload.Pincode == "" {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Shipping address, city and pincode are required")
	}

	items := h.env.Cart.CartItems()
	if len(items) == 0 {
		return webserver.Fail(c, http.StatusBadRequest, "EMPTY_CART", "Cart is empty")
	}

	order := domain.OrderCreate{
		Items:           domain.OrderLinesOf(items),
		TotalAmount:     h.env.Cart.CartTotal(),
		PaymentMethod:   payload.PaymentMethod,
		ShippingAddress: payload.ShippingAddress,
		City:            payload.City,
		State:           payload.State,
		Pincode:         payload.Pincode,
	}

	placed, err := h.env.Backend.CreateOrder(c.Request().Context(), sess.ID, order)
	if err != nil {
		h.env.Notify.ShowError("Order Failed", "Could not place your order")
		return webserver.Fail(c, http.StatusBadGateway, "ORDER_FAILED", err.Error())
	}

	h.env.Cart.ClearCart()
	h.env.Notify.ShowSuccess("Order Placed", "Your order has been placed successfully")
	return webserver.OK(c, placed)
}

func (h *handler) listOrders(c echo.Context) error {
	sess, ok := h.env.Users.Session()
	if !ok {
		return webserver.Fail(c, http.StatusUnauthorized, "NO_SESSION", "Login required")
	}
	orders, err := h.env.Backend.UserOrders(c.Request().Context(), sess.ID)
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "BACKEND_ERROR", err.Error())
	}
	return webserver.OK(c, orders)
}

func (h *handler) cancelOrder(c echo.Context) error {
	sess, ok := h.env.Users.Session()
	if !ok {
		return webserver.Fail(c, http.StatusUnauthorized, "NO_SESSION", "Login required")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
	}
	if err := h.env.Backend.CancelOrder(c.Request().Context(), id, sess.ID); err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "BACKEND_ERROR", err.Error())
	}
	return webserver.OK(c, map[string]interface{}{"id": id, "status": domain.OrderCancelled})
}
