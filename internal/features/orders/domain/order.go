package domain

import "time"

// cancelWindow is how long after payment a paid order may still be
// cancelled.
const cancelWindow = 24 * time.Hour

// Order is the aggregate root. All changes to an order and its line items
// go through its methods, which enforce the state machine and money
// invariants and capture domain events in an internal buffer.
type Order struct {
	id              int64 // 0 until persisted
	customerID      CustomerID
	items           []OrderItem
	status          OrderStatus
	shippingAddress ShippingAddress
	couponCode      *CouponCode
	discountAmount  Money
	orderedAt       time.Time
	paidAt          *time.Time

	pendingEvents []Event
}

// CreateOrder is the only way to bring a new order into existence. It
// validates the line items, starts the order in PENDING, and captures an
// OrderCreatedEvent. Pure construction: no external calls.
func CreateOrder(customerID CustomerID, items []OrderItem, shippingAddress ShippingAddress) (*Order, error) {
	if len(items) == 0 {
		return nil, InvalidArgumentf("order must contain at least one item")
	}

	order := &Order{
		customerID:      customerID,
		items:           append([]OrderItem(nil), items...),
		status:          StatusPending,
		shippingAddress: shippingAddress,
		discountAmount:  ZeroMoney(),
		orderedAt:       time.Now(),
	}

	order.record(OrderCreatedEvent{
		baseEvent:   newBaseEvent(),
		CustomerID:  customerID.Value(),
		TotalAmount: order.CalculateTotalAmount(),
	})

	return order, nil
}

// OrderState is the persisted shape of an order, used to rehydrate the
// aggregate from storage without re-running creation rules or re-emitting
// events.
type OrderState struct {
	ID              int64
	CustomerID      CustomerID
	Items           []OrderItem
	Status          OrderStatus
	ShippingAddress ShippingAddress
	CouponCode      *CouponCode
	DiscountAmount  Money
	OrderedAt       time.Time
	PaidAt          *time.Time
}

// RehydrateOrder rebuilds an aggregate from its persisted state.
func RehydrateOrder(state OrderState) *Order {
	return &Order{
		id:              state.ID,
		customerID:      state.CustomerID,
		items:           append([]OrderItem(nil), state.Items...),
		status:          state.Status,
		shippingAddress: state.ShippingAddress,
		couponCode:      state.CouponCode,
		discountAmount:  state.DiscountAmount,
		orderedAt:       state.OrderedAt,
		paidAt:          state.PaidAt,
	}
}

// AssignID sets the generated id after the first save.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return StateConflictf("order id is already assigned: %d", o.id)
	}
	if id <= 0 {
		return InvalidArgumentf("invalid order id: %d", id)
	}
	o.id = id
	return nil
}

// ApplyCoupon records a coupon and its discount on the order. The discount
// amount comes from the caller: the aggregate never talks to the coupon
// service itself. A second coupon overwrites the first; coupons do not
// stack.
func (o *Order) ApplyCoupon(couponCode CouponCode, discountAmount Money) error {
	if discountAmount.GreaterThan(o.CalculateTotalAmount()) {
		return StateConflictf("discount amount cannot exceed the order total")
	}

	o.couponCode = &couponCode
	o.discountAmount = discountAmount
	return nil
}

// Pay moves the order to PAID and captures an OrderPaidEvent. The final
// amount must be strictly positive; a fully discounted order cannot be
// charged.
func (o *Order) Pay() error {
	if !o.status.CanBePaid() {
		return StateConflictf("order in %s state cannot be paid", o.status.Description())
	}

	finalAmount := o.CalculateFinalAmount()
	if !finalAmount.IsPositive() {
		return StateConflictf("payment amount must be greater than zero")
	}

	now := time.Now()
	o.status = StatusPaid
	o.paidAt = &now

	o.record(OrderPaidEvent{
		baseEvent:  newBaseEvent(),
		OrderID:    o.id,
		CustomerID: o.customerID.Value(),
		PaidAmount: finalAmount,
		PaidAt:     now,
	})

	return nil
}

// Cancel moves the order to CANCELLED and captures an OrderCancelledEvent.
// Only the customer who placed the order may cancel it, only while the
// status allows it, and only within 24 hours of payment once paid.
// Compensating stock and coupon restoration is the orchestration layer's
// job after this returns.
func (o *Order) Cancel(requesterID CustomerID) error {
	if o.customerID != requesterID {
		return StateConflictf("only the customer who placed the order can cancel it")
	}

	if !o.status.CanBeCancelled() {
		return StateConflictf("order in %s state cannot be cancelled", o.status.Description())
	}

	if o.paidAt != nil {
		deadline := o.paidAt.Add(cancelWindow)
		if time.Now().After(deadline) {
			return StateConflictf("order cannot be cancelled more than %d hours after payment", int(cancelWindow.Hours()))
		}
	}

	o.status = StatusCancelled

	o.record(OrderCancelledEvent{
		baseEvent:  newBaseEvent(),
		OrderID:    o.id,
		CustomerID: o.customerID.Value(),
		Items:      o.Items(),
		CouponCode: o.couponCode,
	})

	return nil
}

// Ship moves the order to SHIPPED. No event is emitted.
func (o *Order) Ship() error {
	if !o.status.CanBeShipped() {
		return StateConflictf("order in %s state cannot be shipped", o.status.Description())
	}

	o.status = StatusShipped
	return nil
}

// CalculateTotalAmount sums the line item totals, before any discount.
func (o *Order) CalculateTotalAmount() Money {
	total := ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.CalculateTotalPrice())
	}
	return total
}

// CalculateFinalAmount is the total after discount, floored at zero.
func (o *Order) CalculateFinalAmount() Money {
	finalAmount, err := o.CalculateTotalAmount().Subtract(o.discountAmount)
	if err != nil {
		return ZeroMoney()
	}
	return finalAmount
}

// IsCancellable mirrors the guards in Cancel without the ownership check,
// for display purposes only. Callers must not use it for authorization.
func (o *Order) IsCancellable() bool {
	if !o.status.CanBeCancelled() {
		return false
	}

	if o.paidAt != nil {
		return !time.Now().After(o.paidAt.Add(cancelWindow))
	}

	return true
}

// DrainEvents returns the buffered events and clears the buffer. The
// persistence boundary calls this immediately after a successful save.
func (o *Order) DrainEvents() []Event {
	events := o.pendingEvents
	o.pendingEvents = nil
	return events
}

func (o *Order) record(event Event) {
	o.pendingEvents = append(o.pendingEvents, event)
}

// ID returns the generated id, or 0 if the order has not been persisted.
func (o *Order) ID() int64 {
	return o.id
}

// CustomerID returns the id of the customer who placed the order.
func (o *Order) CustomerID() CustomerID {
	return o.customerID
}

// Items returns a copy of the line items.
func (o *Order) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

// ItemCount returns the number of line items.
func (o *Order) ItemCount() int {
	return len(o.items)
}

// Status returns the current state.
func (o *Order) Status() OrderStatus {
	return o.status
}

// ShippingAddress returns the delivery address.
func (o *Order) ShippingAddress() ShippingAddress {
	return o.shippingAddress
}

// CouponCode returns the applied coupon, or nil.
func (o *Order) CouponCode() *CouponCode {
	return o.couponCode
}

// DiscountAmount returns the applied discount, zero by default.
func (o *Order) DiscountAmount() Money {
	return o.discountAmount
}

// OrderedAt returns the creation timestamp.
func (o *Order) OrderedAt() time.Time {
	return o.orderedAt
}

// PaidAt returns the payment timestamp, or nil before payment.
func (o *Order) PaidAt() *time.Time {
	return o.paidAt
}
