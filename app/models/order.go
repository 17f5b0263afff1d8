package models

import "time"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusDelivered Status = "DELIVERED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// Statuses lists every valid order status.
var Statuses = []Status{
	StatusPending, StatusPreparing, StatusReady,
	StatusDelivered, StatusCompleted, StatusCancelled,
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether the order can no longer change state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// OrderItem is one line of a submitted order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Notes     string  `json:"notes,omitempty"`

	// Product is populated by backends that expand the reference inline.
	Product *Product `json:"product,omitempty"`
}

// Order is a table's submitted request as the kitchen and waiters see it.
type Order struct {
	ID          string      `json:"id"`
	TableNumber string      `json:"tableNumber"`
	Items       []OrderItem `json:"items"`
	Subtotal    float64     `json:"subtotal"`
	Total       float64     `json:"total"`
	Status      Status      `json:"status"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Age returns whole minutes since the order was created.
func (o Order) Age(now time.Time) int {
	m := int(now.Sub(o.CreatedAt).Minutes())
	if m < 0 {
		return 0
	}
	return m
}
