package domain

import "strconv"

// CustomerID identifies a customer. Always positive.
type CustomerID struct {
	id int64
}

// NewCustomerID validates and wraps a raw customer id.
func NewCustomerID(id int64) (CustomerID, error) {
	if id <= 0 {
		return CustomerID{}, InvalidArgumentf("invalid customer id: %d", id)
	}
	return CustomerID{id: id}, nil
}

// Value exposes the raw id.
func (c CustomerID) Value() int64 {
	return c.id
}

func (c CustomerID) String() string {
	return strconv.FormatInt(c.id, 10)
}

// ProductID identifies a product in the external catalog. Always positive.
type ProductID struct {
	id int64
}

// NewProductID validates and wraps a raw product id.
func NewProductID(id int64) (ProductID, error) {
	if id <= 0 {
		return ProductID{}, InvalidArgumentf("invalid product id: %d", id)
	}
	return ProductID{id: id}, nil
}

// Value exposes the raw id.
func (p ProductID) Value() int64 {
	return p.id
}

func (p ProductID) String() string {
	return strconv.FormatInt(p.id, 10)
}
