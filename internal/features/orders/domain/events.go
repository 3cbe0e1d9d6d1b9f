package domain

import "time"

// Event is a domain event captured on the Order aggregate. Events are
// buffered on the aggregate and released for dispatch only after the
// triggering mutation has been persisted.
type Event interface {
	// EventName returns the event's stable name, also used as its
	// publish topic.
	EventName() string
	// OccurredAt returns when the event was captured.
	OccurredAt() time.Time
}

type baseEvent struct {
	occurredAt time.Time
}

func newBaseEvent() baseEvent {
	return baseEvent{occurredAt: time.Now()}
}

func (e baseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// OrderCreatedEvent is captured when an order is created.
type OrderCreatedEvent struct {
	baseEvent
	CustomerID  int64
	TotalAmount Money
}

func (OrderCreatedEvent) EventName() string { return "order.created" }

// OrderPaidEvent is captured when an order is paid.
type OrderPaidEvent struct {
	baseEvent
	OrderID    int64
	CustomerID int64
	PaidAmount Money
	PaidAt     time.Time
}

func (OrderPaidEvent) EventName() string { return "order.paid" }

// OrderCancelledEvent is captured when an order is cancelled. It carries a
// snapshot of the line items and the applied coupon so downstream
// consumers can act without re-reading the order.
type OrderCancelledEvent struct {
	baseEvent
	OrderID    int64
	CustomerID int64
	Items      []OrderItem
	CouponCode *CouponCode
}

func (OrderCancelledEvent) EventName() string { return "order.cancelled" }
