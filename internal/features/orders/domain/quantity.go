package domain

import "strconv"

const (
	minQuantity = 1
	maxQuantity = 100
)

// Quantity is an order quantity between 1 and 100 inclusive.
type Quantity struct {
	value int
}

// NewQuantity creates a Quantity after validating the range.
func NewQuantity(value int) (Quantity, error) {
	if value < minQuantity {
		return Quantity{}, InvalidArgumentf("quantity must be at least %d", minQuantity)
	}
	if value > maxQuantity {
		return Quantity{}, InvalidArgumentf("quantity cannot exceed %d", maxQuantity)
	}
	return Quantity{value: value}, nil
}

// Add composes two quantities. The sum must still be a valid quantity, so
// adding two near-max quantities fails.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	return NewQuantity(q.value + other.value)
}

// GreaterThan reports whether the quantity exceeds target.
func (q Quantity) GreaterThan(target int) bool {
	return q.value > target
}

// Value exposes the underlying count.
func (q Quantity) Value() int {
	return q.value
}

func (q Quantity) String() string {
	return strconv.Itoa(q.value)
}
