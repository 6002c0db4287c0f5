package adminapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"

	"github.com/akash06959/agronova/internal/webserver"
)

func (h *handler) listOrders(c echo.Context) error {
	orders, err := h.env.Backend.AllOrders(c.Request().Context())
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "BACKEND_ERROR", err.Error())
	}
	return webserver.OK(c, orders)
}

func (h *handler) updateOrderStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
	}
	var payload struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&payload); err != nil || payload.Status == "" {
		return webserver.Fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Status is required")
	}
	order, err := h.env.Backend.UpdateOrderStatus(c.Request().Context(), id, payload.Status)
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "BACKEND_ERROR", err.Error())
	}
	return webserver.OK(c, order)
}

type orderRow struct {
	ID            int64   `csv:"id"`
	UserID        int64   `csv:"user_id"`
	Total         float64 `csv:"total_amount"`
	PaymentMethod string  `csv:"payment_method"`
	City          string  `csv:"city"`
	State         string  `csv:"state"`
	Status        string  `csv:"status"`
	CreatedAt     string  `csv:"created_at"`
	Lines         int     `csv:"lines"`
}

func (h *handler) exportOrders(c echo.Context) error {
	orders, err := h.env.Backend.AllOrders(c.Request().Context())
	if err != nil {
		return webserver.Fail(c, http.StatusBadGateway, "BACKEND_ERROR", err.Error())
	}
	rows := make([]orderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, orderRow{
			ID:            o.ID,
			UserID:        o.UserID,
			Total:         o.TotalAmount,
			PaymentMethod: o.PaymentMethod,
			City:          o.City,
			State:         o.State,
			Status:        o.Status,
			CreatedAt:     o.CreatedAt.Format(time.RFC3339),
			Lines:         len(o.Items),
		})
	}
	data, err := gocsv.MarshalString(&rows)
	if err != nil {
		return webserver.Fail(c, http.StatusInternalServerError, "EXPORT_ERROR", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}
