// Package contracts holds the wire shapes of the order events shared by
// the publishing adapter and the downstream consumers.
package contracts

import "time"

// Event topics. Topic names match the domain event names.
const (
	TopicOrderCreated   = "order.created"
	TopicOrderPaid      = "order.paid"
	TopicOrderCancelled = "order.cancelled"
)

// OrderCreated is the payload published on TopicOrderCreated.
type OrderCreated struct {
	CustomerID  int64     `json:"customer_id"`
	TotalAmount string    `json:"total_amount"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// OrderPaid is the payload published on TopicOrderPaid.
type OrderPaid struct {
	OrderID    int64     `json:"order_id"`
	CustomerID int64     `json:"customer_id"`
	PaidAmount string    `json:"paid_amount"`
	PaidAt     time.Time `json:"paid_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

// OrderCancelled is the payload published on TopicOrderCancelled.
type OrderCancelled struct {
	OrderID    int64           `json:"order_id"`
	CustomerID int64           `json:"customer_id"`
	Items      []CancelledItem `json:"items"`
	CouponCode string          `json:"coupon_code,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// CancelledItem is a line item snapshot inside OrderCancelled.
type CancelledItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
