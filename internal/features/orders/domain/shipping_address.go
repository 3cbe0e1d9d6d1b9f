package domain

import "strings"

const (
	minAddressLength = 10
	maxAddressLength = 200
)

// ShippingAddress is a free-form delivery address between 10 and 200
// characters.
type ShippingAddress struct {
	address string
}

// NewShippingAddress validates and wraps a raw address.
func NewShippingAddress(address string) (ShippingAddress, error) {
	if strings.TrimSpace(address) == "" {
		return ShippingAddress{}, InvalidArgumentf("shipping address is required")
	}
	if len(address) < minAddressLength {
		return ShippingAddress{}, InvalidArgumentf("shipping address must be at least %d characters", minAddressLength)
	}
	if len(address) > maxAddressLength {
		return ShippingAddress{}, InvalidArgumentf("shipping address cannot exceed %d characters", maxAddressLength)
	}
	return ShippingAddress{address: address}, nil
}

// Value exposes the raw address.
func (a ShippingAddress) Value() string {
	return a.address
}

func (a ShippingAddress) String() string {
	return a.address
}
