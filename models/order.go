package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const MaxLineQuantity = 999

// MaxOrderTotal is the largest value orders.total (NUMERIC(12,2)) can hold.
var MaxOrderTotal = decimal.RequireFromString("9999999999.99")

type OrderStatus string

const (
	OrderStatusUnfulfilled OrderStatus = "unfulfilled" // placed, nothing shipped yet
	OrderStatusFulfilled   OrderStatus = "fulfilled"   // set by back-office tooling
)

type Order struct {
	ID          int             `json:"id"`
	OrderNumber string          `json:"order_number"`
	UserID      int             `json:"user_id"`
	Items       []OrderItem     `json:"items"`
	Total       decimal.Decimal `json:"total"`
	Status      OrderStatus     `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// OrderItem is one line of the cart snapshot frozen into an order.
type OrderItem struct {
	ProductID int             `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
