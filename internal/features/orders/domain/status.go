package domain

// OrderStatus represents the current state of an order.
type OrderStatus string

const (
	// StatusPending is the initial state: placed, awaiting payment.
	StatusPending OrderStatus = "PENDING"
	// StatusPaid indicates payment has been taken.
	StatusPaid OrderStatus = "PAID"
	// StatusShipped indicates the order has been handed to the carrier.
	StatusShipped OrderStatus = "SHIPPED"
	// StatusDelivered is a terminal state: the order reached the customer.
	StatusDelivered OrderStatus = "DELIVERED"
	// StatusCancelled is a terminal state.
	StatusCancelled OrderStatus = "CANCELLED"
)

// The transition rules are kept as plain data so they can be tested as a
// table rather than as per-state behavior.
var legalTransitions = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:   {StatusPaid: true, StatusCancelled: true},
	StatusPaid:      {StatusShipped: true, StatusCancelled: true},
	StatusShipped:   {StatusDelivered: true},
	StatusDelivered: {},
	StatusCancelled: {},
}

var cancellableStatuses = map[OrderStatus]bool{
	StatusPending: true,
	StatusPaid:    true, // subject to the 24h post-payment window
}

var statusDescriptions = map[OrderStatus]string{
	StatusPending:   "pending payment",
	StatusPaid:      "paid",
	StatusShipped:   "shipping",
	StatusDelivered: "delivered",
	StatusCancelled: "cancelled",
}

// CanTransitionTo reports whether moving to next is a legal transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return legalTransitions[s][next]
}

// CanBeCancelled reports whether an order in this state may be cancelled.
func (s OrderStatus) CanBeCancelled() bool {
	return cancellableStatuses[s]
}

// CanBePaid reports whether an order in this state may be paid.
func (s OrderStatus) CanBePaid() bool {
	return s == StatusPending
}

// CanBeShipped reports whether an order in this state may be shipped.
func (s OrderStatus) CanBeShipped() bool {
	return s == StatusPaid
}

// Description returns the human-readable state name used in rule-violation
// messages.
func (s OrderStatus) Description() string {
	if d, ok := statusDescriptions[s]; ok {
		return d
	}
	return string(s)
}

// IsValid reports whether s is one of the known statuses.
func (s OrderStatus) IsValid() bool {
	_, ok := legalTransitions[s]
	return ok
}
