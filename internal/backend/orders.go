package backend

import (
	"context"
	"fmt"

	"github.com/guonaihong/gout"

	"github.com/akash06959/agronova/internal/domain"
)

// CreateOrder places an order for the given user.
func (c *Client) CreateOrder(ctx context.Context, userID int64, order domain.OrderCreate) (domain.Order, error) {
	var out domain.Order
	df := gout.POST(c.url("/orders/")).
		SetQuery(gout.H{"user_id": userID}).
		SetJSON(order)
	err := c.do(ctx, df, &out, "create order")
	return out, err
}

// UserOrders lists a user's orders, newest first per the backend.
func (c *Client) UserOrders(ctx context.Context, userID int64) ([]domain.Order, error) {
	var out []domain.Order
	err := c.do(ctx, gout.GET(c.url(fmt.Sprintf("/orders/user/%d", userID))), &out, "user orders")
	return out, err
}

// AllOrders lists every order (admin screen).
func (c *Client) AllOrders(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := c.do(ctx, gout.GET(c.url("/orders/admin/all")), &out, "all orders")
	return out, err
}

// CancelOrder cancels a user's order.
func (c *Client) CancelOrder(ctx context.Context, orderID, userID int64) error {
	df := gout.PATCH(c.url(fmt.Sprintf("/orders/%d/cancel", orderID))).
		SetQuery(gout.H{"user_id": userID})
	return c.do(ctx, df, nil, "cancel order")
}

// UpdateOrderStatus moves an order to a new status (admin screen).
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int64, status string) (domain.Order, error) {
	var out domain.Order
	df := gout.PATCH(c.url(fmt.Sprintf("/orders/%d/status", orderID))).
		SetJSON(map[string]string{"status": status})
	err := c.do(ctx, df, &out, "update order status")
	return out, err
}
