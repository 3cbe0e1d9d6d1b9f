package domain

import "strings"

// OrderItem is a line item owned by exactly one Order. Product name and
// price are snapshots taken from the catalog at order-creation time, not
// live lookups.
type OrderItem struct {
	productID   ProductID
	productName string
	price       Money
	quantity    Quantity
}

// NewOrderItem creates a line item from catalog data.
func NewOrderItem(productID ProductID, productName string, price Money, quantity Quantity) (OrderItem, error) {
	if strings.TrimSpace(productName) == "" {
		return OrderItem{}, InvalidArgumentf("product name is required")
	}
	if !price.IsPositive() {
		return OrderItem{}, InvalidArgumentf("product price must be positive: %s", price)
	}
	return OrderItem{
		productID:   productID,
		productName: productName,
		price:       price,
		quantity:    quantity,
	}, nil
}

// ProductID returns the catalog id of the product.
func (i OrderItem) ProductID() ProductID {
	return i.productID
}

// ProductName returns the product name snapshot.
func (i OrderItem) ProductName() string {
	return i.productName
}

// Price returns the unit price snapshot.
func (i OrderItem) Price() Money {
	return i.price
}

// Quantity returns the ordered quantity.
func (i OrderItem) Quantity() Quantity {
	return i.quantity
}

// CalculateTotalPrice returns price times quantity.
func (i OrderItem) CalculateTotalPrice() Money {
	return i.price.Multiply(i.quantity.Value())
}

// ChangeQuantity replaces the quantity of the line item.
func (i *OrderItem) ChangeQuantity(quantity Quantity) {
	i.quantity = quantity
}

// IsSameProduct reports whether the item refers to the given product.
func (i OrderItem) IsSameProduct(productID ProductID) bool {
	return i.productID == productID
}
