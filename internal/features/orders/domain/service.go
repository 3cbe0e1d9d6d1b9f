package domain

import "github.com/shopspring/decimal"

// Order validation bounds applied before any mutating external call.
var (
	minOrderAmount = decimal.NewFromInt(1000)
	maxOrderAmount = decimal.NewFromInt(1000000)
)

const maxOrderItemCount = 20

// DiscountPolicy holds the customer-tier thresholds and rates. Injected at
// construction so the rules stay testable with arbitrary values.
type DiscountPolicy struct {
	// VIPThreshold is the lifetime spend from which VIPRate applies.
	VIPThreshold Money
	// PremiumThreshold is the lifetime spend from which PremiumRate applies.
	PremiumThreshold Money
	// VIPRate is the VIP discount rate, e.g. 0.10.
	VIPRate decimal.Decimal
	// PremiumRate is the premium discount rate, e.g. 0.05.
	PremiumRate decimal.Decimal
}

// DefaultDiscountPolicy returns the standard tiers: 10% from 100,000 and
// 5% from 50,000 lifetime spend.
func DefaultDiscountPolicy() DiscountPolicy {
	vip, _ := NewMoneyFromInt(100000)
	premium, _ := NewMoneyFromInt(50000)
	return DiscountPolicy{
		VIPThreshold:     vip,
		PremiumThreshold: premium,
		VIPRate:          decimal.NewFromFloat(0.10),
		PremiumRate:      decimal.NewFromFloat(0.05),
	}
}

// OrderDomainService holds business rules that span multiple orders or do
// not belong to a single aggregate instance: discount tiering over a
// customer's history, priority classification, and order-level validation.
// Pure functions of their inputs; no I/O.
type OrderDomainService struct {
	policy DiscountPolicy
}

// NewOrderDomainService creates a domain service with the given policy.
func NewOrderDomainService(policy DiscountPolicy) *OrderDomainService {
	return &OrderDomainService{policy: policy}
}

// CalculateDiscount computes the tier discount for a new order. The tier
// is chosen by the customer's lifetime total including the new order; the
// rate applies to the new order amount only.
func (s *OrderDomainService) CalculateDiscount(customerID CustomerID, orderAmount Money, customerOrderHistory []*Order) Money {
	lifetimeTotal := orderAmount
	for _, order := range customerOrderHistory {
		lifetimeTotal = lifetimeTotal.Add(order.CalculateTotalAmount())
	}

	switch {
	case lifetimeTotal.GreaterThanOrEqual(s.policy.VIPThreshold):
		return orderAmount.MultiplyRate(s.policy.VIPRate)
	case lifetimeTotal.GreaterThanOrEqual(s.policy.PremiumThreshold):
		return orderAmount.MultiplyRate(s.policy.PremiumRate)
	default:
		return ZeroMoney()
	}
}

// DeterminePriority classifies a single order amount against the same
// thresholds, boundary-inclusive.
func (s *OrderDomainService) DeterminePriority(orderAmount Money) Priority {
	switch {
	case orderAmount.GreaterThanOrEqual(s.policy.VIPThreshold):
		return PriorityHigh
	case orderAmount.GreaterThanOrEqual(s.policy.PremiumThreshold):
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// ValidateOrder checks the order-level amount and item-count bounds.
func (s *OrderDomainService) ValidateOrder(orderAmount Money, itemCount int) error {
	if orderAmount.Amount().LessThan(minOrderAmount) {
		return InvalidArgumentf("minimum order amount is %s", minOrderAmount)
	}
	if orderAmount.Amount().GreaterThan(maxOrderAmount) {
		return InvalidArgumentf("maximum order amount is %s", maxOrderAmount)
	}
	if itemCount < 1 {
		return InvalidArgumentf("order must contain at least one item")
	}
	if itemCount > maxOrderItemCount {
		return InvalidArgumentf("order cannot contain more than %d items", maxOrderItemCount)
	}
	return nil
}
