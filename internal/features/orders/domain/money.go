package domain

import (
	"github.com/shopspring/decimal"
)

// Money is a non-negative amount with at most two decimal places.
// It is immutable; every arithmetic operation returns a new instance, and
// equality is by value.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money after validating the amount.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, InvalidArgumentf("amount cannot be negative: %s", amount)
	}
	if amount.Exponent() < -2 {
		return Money{}, InvalidArgumentf("amount cannot have more than two decimal places: %s", amount)
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromInt creates a Money from a whole amount.
func NewMoneyFromInt(amount int64) (Money, error) {
	return NewMoney(decimal.NewFromInt(amount))
}

// ZeroMoney returns the zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Subtract returns the difference, failing if the result would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// Multiply returns the amount scaled by a unit count.
func (m Money) Multiply(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// MultiplyRate returns the amount scaled by a fractional rate, rounded to
// two decimal places.
func (m Money) MultiplyRate(rate decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(rate).Round(2)}
}

// GreaterThan reports whether m exceeds other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// GreaterThanOrEqual reports whether m is at least other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// LessThan reports whether m is below other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsPositive reports whether the amount is strictly above zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Equals reports value equality.
func (m Money) Equals(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Min returns the smaller of the two amounts.
func (m Money) Min(other Money) Money {
	if m.amount.LessThanOrEqual(other.amount) {
		return m
	}
	return other
}

// Amount exposes the underlying decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

func (m Money) String() string {
	return m.amount.String()
}
