package ports

import (
	"context"
	"time"

	"order-service/internal/features/orders/domain"
)

// OrderService defines the primary port for the order workflow, wrapped by
// the presentation layer.
type OrderService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (int64, error)
	PayOrder(ctx context.Context, orderID int64) error
	CancelOrder(ctx context.Context, orderID, customerID int64) error
	ShipOrder(ctx context.Context, orderID int64) error
	GetOrder(ctx context.Context, orderID int64) (*OrderView, error)
	GetOrderPriority(ctx context.Context, orderID int64) (*PriorityView, error)
	CalculateDiscount(ctx context.Context, orderID int64) (*DiscountView, error)
}

// CreateOrderCommand carries the inputs of the create-order use case.
type CreateOrderCommand struct {
	CustomerID      int64
	Items           []OrderItemRequest
	ShippingAddress string
	// CouponCode is optional; empty means no coupon.
	CouponCode string
}

// OrderItemRequest references a catalog product and a desired quantity.
type OrderItemRequest struct {
	ProductID int64
	Quantity  int
}

// OrderView is the read model of a single order.
type OrderView struct {
	OrderID         int64           `json:"order_id"`
	CustomerID      int64           `json:"customer_id"`
	Items           []OrderItemView `json:"items"`
	ShippingAddress string          `json:"shipping_address"`
	Status          string          `json:"status"`
	CouponCode      string          `json:"coupon_code,omitempty"`
	TotalAmount     string          `json:"total_amount"`
	DiscountAmount  string          `json:"discount_amount"`
	FinalAmount     string          `json:"final_amount"`
	Cancellable     bool            `json:"cancellable"`
	OrderedAt       time.Time       `json:"ordered_at"`
}

// OrderItemView is the read model of a line item.
type OrderItemView struct {
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	TotalPrice  string `json:"total_price"`
}

// PriorityView is the result of the order-priority query.
type PriorityView struct {
	OrderID  int64  `json:"order_id"`
	Priority string `json:"priority"`
	Level    int    `json:"level"`
}

// DiscountView is the result of the discount-calculation query.
type DiscountView struct {
	OrderID        int64  `json:"order_id"`
	DiscountAmount string `json:"discount_amount"`
	TotalAmount    string `json:"total_amount"`
}

// OrderRepository defines the secondary port for order persistence.
// Implementations provide durable keyed storage; serializing concurrent
// load-mutate-save sequences on the same order is the store's concern.
type OrderRepository interface {
	// Save persists the order, assigning a generated id on first save.
	Save(ctx context.Context, order *domain.Order) error
	// FindByID returns the order, or (nil, nil) when it does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	// FindByCustomerID returns all orders placed by the customer.
	FindByCustomerID(ctx context.Context, customerID domain.CustomerID) ([]*domain.Order, error)
	// Delete removes the order. Unused by the workflow; kept for
	// administrative tooling.
	Delete(ctx context.Context, order *domain.Order) error
}

// ProductInfo is the catalog snapshot of a product as seen through the
// anti-corruption boundary.
type ProductInfo struct {
	ProductID     domain.ProductID
	Name          string
	Price         domain.Money
	StockQuantity int
	Available     bool
}

// ProductClient defines the secondary port to the product catalog.
type ProductClient interface {
	// GetProducts batch-fetches product info; unknown ids are absent
	// from the result map.
	GetProducts(ctx context.Context, productIDs []domain.ProductID) (map[domain.ProductID]ProductInfo, error)
	// DecreaseStocks atomically decrements stock for all products, all
	// or nothing. A false result means the batch was rejected.
	DecreaseStocks(ctx context.Context, quantities map[domain.ProductID]int) (bool, error)
	// RestoreStocks returns previously decremented stock.
	RestoreStocks(ctx context.Context, quantities map[domain.ProductID]int) error
}

// CustomerClient defines the secondary port to the customer service.
type CustomerClient interface {
	// CanOrder reports whether the customer is eligible to place orders.
	CanOrder(ctx context.Context, customerID domain.CustomerID) (bool, error)
}

// CouponClient defines the secondary port to the coupon service.
type CouponClient interface {
	// CalculateDiscount returns the discount for the coupon, or nil when
	// the coupon is invalid or inapplicable.
	CalculateDiscount(ctx context.Context, couponCode domain.CouponCode, orderAmount domain.Money) (*domain.Money, error)
	// UseCoupon marks the coupon as consumed by the customer.
	UseCoupon(ctx context.Context, couponCode domain.CouponCode, customerID domain.CustomerID) (bool, error)
	// RestoreCoupon returns a consumed coupon to circulation.
	RestoreCoupon(ctx context.Context, couponCode domain.CouponCode) (bool, error)
}

// EventPublisher defines the secondary port for releasing drained domain
// events to downstream consumers. Dispatch failures must not fail the
// operation that produced the events.
type EventPublisher interface {
	Publish(ctx context.Context, events []domain.Event) error
}
