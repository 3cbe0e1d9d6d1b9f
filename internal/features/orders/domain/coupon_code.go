package domain

import (
	"regexp"
	"strings"
)

var couponCodePattern = regexp.MustCompile(`^[A-Z0-9]{6,20}$`)

// CouponCode is a coupon identifier: 6-20 uppercase letters and digits.
type CouponCode struct {
	code string
}

// NewCouponCode validates and wraps a raw coupon code.
func NewCouponCode(code string) (CouponCode, error) {
	if strings.TrimSpace(code) == "" {
		return CouponCode{}, InvalidArgumentf("coupon code is required")
	}
	if !couponCodePattern.MatchString(code) {
		return CouponCode{}, InvalidArgumentf("coupon code must be 6-20 uppercase letters and digits: %s", code)
	}
	return CouponCode{code: code}, nil
}

// Value exposes the raw code.
func (c CouponCode) Value() string {
	return c.code
}

func (c CouponCode) String() string {
	return c.code
}
