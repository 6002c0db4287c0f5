package domain

import "time"

// Order statuses used by the backend.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// OrderLine is one purchased item inside an order payload.
type OrderLine struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// OrderCreate is the request body for POST /orders/?user_id=.
type OrderCreate struct {
	Items           []OrderLine `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	PaymentMethod   string      `json:"payment_method"`
	ShippingAddress string      `json:"shipping_address"`
	City            string      `json:"city"`
	State           string      `json:"state"`
	Pincode         string      `json:"pincode"`
}

// Order mirrors the backend order record.
type Order struct {
	ID              int64       `json:"id"`
	UserID          int64       `json:"user_id"`
	Items           []OrderLine `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	PaymentMethod   string      `json:"payment_method"`
	ShippingAddress string      `json:"shipping_address"`
	City            string      `json:"city"`
	State           string      `json:"state"`
	Pincode         string      `json:"pincode"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderLinesOf converts cart lines into an order payload.
func OrderLinesOf(items []CartItem) []OrderLine {
	lines := make([]OrderLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, OrderLine{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
			Image:    it.Image,
		})
	}
	return lines
}
