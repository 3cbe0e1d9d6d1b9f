// Package service orchestrates the order workflow: it validates input at
// the boundary, coordinates the external product, customer, and coupon
// services, drives the aggregate, and releases domain events after a
// successful save.
package service

import (
	"context"
	"errors"
	"fmt"

	"order-service/internal/core/logger"
	"order-service/internal/features/orders/domain"
	"order-service/internal/features/orders/ports"

	"go.uber.org/zap"
)

// ErrOrderNotFound is returned when the requested order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderService implements ports.OrderService.
type OrderService struct {
	repo          ports.OrderRepository
	domainService *domain.OrderDomainService
	products      ports.ProductClient
	customers     ports.CustomerClient
	coupons       ports.CouponClient
	publisher     ports.EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	repo ports.OrderRepository,
	domainService *domain.OrderDomainService,
	products ports.ProductClient,
	customers ports.CustomerClient,
	coupons ports.CouponClient,
	publisher ports.EventPublisher,
) *OrderService {
	return &OrderService{
		repo:          repo,
		domainService: domainService,
		products:      products,
		customers:     customers,
		coupons:       coupons,
		publisher:     publisher,
	}
}

// CreateOrder runs the full ordering workflow: customer eligibility,
// product lookup and availability, aggregate creation and validation,
// optional coupon application, stock decrement, save, and event release.
// All read-only checks happen before the first mutating external call so
// a rejected order leaves nothing to compensate.
func (s *OrderService) CreateOrder(ctx context.Context, cmd ports.CreateOrderCommand) (int64, error) {
	customerID, err := domain.NewCustomerID(cmd.CustomerID)
	if err != nil {
		return 0, err
	}

	eligible, err := s.customers.CanOrder(ctx, customerID)
	if err != nil {
		return 0, fmt.Errorf("failed to check customer eligibility: %w", err)
	}
	if !eligible {
		return 0, domain.StateConflictf("customer %d is not eligible to place orders", customerID.Value())
	}

	address, err := domain.NewShippingAddress(cmd.ShippingAddress)
	if err != nil {
		return 0, err
	}

	items, quantities, err := s.buildItems(ctx, cmd.Items)
	if err != nil {
		return 0, err
	}

	order, err := domain.CreateOrder(customerID, items, address)
	if err != nil {
		return 0, err
	}

	if err := s.domainService.ValidateOrder(order.CalculateTotalAmount(), order.ItemCount()); err != nil {
		return 0, err
	}

	if cmd.CouponCode != "" {
		if err := s.applyCoupon(ctx, order, cmd.CouponCode); err != nil {
			return 0, err
		}
	}

	decreased, err := s.products.DecreaseStocks(ctx, quantities)
	if err != nil {
		return 0, fmt.Errorf("failed to decrease stocks: %w", err)
	}
	if !decreased {
		return 0, domain.StateConflictf("stock reservation was rejected by the product service")
	}

	if err := s.repo.Save(ctx, order); err != nil {
		// Stock is already decremented. Leave compensation to the
		// reconciliation job and surface enough context to find it.
		logger.Get().Error("Order save failed after stock decrement",
			zap.Int64("customer_id", customerID.Value()),
			zap.Error(err),
		)
		return 0, fmt.Errorf("failed to save order: %w", err)
	}

	s.publishEvents(ctx, order)

	logger.Get().Info("Order created",
		zap.Int64("order_id", order.ID()),
		zap.Int64("customer_id", customerID.Value()),
		zap.String("total_amount", order.CalculateTotalAmount().String()),
	)

	return order.ID(), nil
}

// buildItems resolves the requested products through the catalog and
// turns them into validated line items plus the per-product quantities
// for the stock decrement call.
func (s *OrderService) buildItems(ctx context.Context, requests []ports.OrderItemRequest) ([]domain.OrderItem, map[domain.ProductID]int, error) {
	productIDs := make([]domain.ProductID, 0, len(requests))
	for _, request := range requests {
		productID, err := domain.NewProductID(request.ProductID)
		if err != nil {
			return nil, nil, err
		}
		productIDs = append(productIDs, productID)
	}

	products, err := s.products.GetProducts(ctx, productIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	items := make([]domain.OrderItem, 0, len(requests))
	quantities := make(map[domain.ProductID]int, len(requests))
	for i, request := range requests {
		productID := productIDs[i]

		info, ok := products[productID]
		if !ok {
			return nil, nil, domain.InvalidArgumentf("product %d not found", productID.Value())
		}
		if !info.Available {
			return nil, nil, domain.InvalidArgumentf("product %d is not available", productID.Value())
		}

		quantity, err := domain.NewQuantity(request.Quantity)
		if err != nil {
			return nil, nil, err
		}
		if info.StockQuantity < quantity.Value() {
			return nil, nil, domain.InvalidArgumentf("insufficient stock for product %d", productID.Value())
		}

		item, err := domain.NewOrderItem(productID, info.Name, info.Price, quantity)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
		quantities[productID] += quantity.Value()
	}

	return items, quantities, nil
}

// applyCoupon validates the coupon with the coupon service and records it
// on the order. Consuming the coupon is best-effort: the discount is
// already committed to the order, so a failed consumption is logged for
// reconciliation rather than failing the workflow.
func (s *OrderService) applyCoupon(ctx context.Context, order *domain.Order, rawCode string) error {
	couponCode, err := domain.NewCouponCode(rawCode)
	if err != nil {
		return err
	}

	discount, err := s.coupons.CalculateDiscount(ctx, couponCode, order.CalculateTotalAmount())
	if err != nil {
		return fmt.Errorf("failed to calculate coupon discount: %w", err)
	}
	if discount == nil {
		return domain.InvalidArgumentf("coupon %s is not valid for this order", couponCode.Value())
	}

	if err := order.ApplyCoupon(couponCode, *discount); err != nil {
		return err
	}

	used, err := s.coupons.UseCoupon(ctx, couponCode, order.CustomerID())
	if err != nil || !used {
		logger.Get().Warn("Coupon consumption did not complete",
			zap.String("coupon_code", couponCode.Value()),
			zap.Int64("customer_id", order.CustomerID().Value()),
			zap.Error(err),
		)
	}

	return nil
}

// PayOrder marks the order as paid and releases the payment event.
func (s *OrderService) PayOrder(ctx context.Context, orderID int64) error {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if err := order.Pay(); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	s.publishEvents(ctx, order)

	logger.Get().Info("Order paid", zap.Int64("order_id", order.ID()))
	return nil
}

// CancelOrder cancels the order on behalf of the requesting customer,
// compensates stock and coupon, and releases the cancellation event.
// Compensations are best-effort: the cancellation itself must not be
// blocked by a flaky downstream service.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, customerID int64) error {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}

	requesterID, err := domain.NewCustomerID(customerID)
	if err != nil {
		return err
	}

	if err := order.Cancel(requesterID); err != nil {
		return err
	}

	quantities := make(map[domain.ProductID]int, order.ItemCount())
	for _, item := range order.Items() {
		quantities[item.ProductID()] += item.Quantity().Value()
	}
	if err := s.products.RestoreStocks(ctx, quantities); err != nil {
		logger.Get().Error("Stock restore failed during cancellation",
			zap.Int64("order_id", order.ID()),
			zap.Error(err),
		)
	}

	if coupon := order.CouponCode(); coupon != nil {
		restored, err := s.coupons.RestoreCoupon(ctx, *coupon)
		if err != nil || !restored {
			logger.Get().Warn("Coupon restore did not complete",
				zap.Int64("order_id", order.ID()),
				zap.String("coupon_code", coupon.Value()),
				zap.Error(err),
			)
		}
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	s.publishEvents(ctx, order)

	logger.Get().Info("Order cancelled", zap.Int64("order_id", order.ID()))
	return nil
}

// ShipOrder marks the order as shipped.
func (s *OrderService) ShipOrder(ctx context.Context, orderID int64) error {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if err := order.Ship(); err != nil {
		return err
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}

	logger.Get().Info("Order shipped", zap.Int64("order_id", order.ID()))
	return nil
}

// GetOrder returns the read model of a single order.
func (s *OrderService) GetOrder(ctx context.Context, orderID int64) (*ports.OrderView, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderView(order), nil
}

// GetOrderPriority classifies the order's fulfillment priority from its
// total amount.
func (s *OrderService) GetOrderPriority(ctx context.Context, orderID int64) (*ports.PriorityView, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	priority := s.domainService.DeterminePriority(order.CalculateTotalAmount())

	return &ports.PriorityView{
		OrderID:  order.ID(),
		Priority: string(priority),
		Level:    priority.Level(),
	}, nil
}

// CalculateDiscount computes the tier discount the order qualifies for,
// based on the customer's order history excluding the order itself.
func (s *OrderService) CalculateDiscount(ctx context.Context, orderID int64) (*ports.DiscountView, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.FindByCustomerID(ctx, order.CustomerID())
	if err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}

	previousOrders := make([]*domain.Order, 0, len(history))
	for _, previous := range history {
		if previous.ID() != order.ID() {
			previousOrders = append(previousOrders, previous)
		}
	}

	totalAmount := order.CalculateTotalAmount()
	discount := s.domainService.CalculateDiscount(order.CustomerID(), totalAmount, previousOrders)

	return &ports.DiscountView{
		OrderID:        order.ID(),
		DiscountAmount: discount.String(),
		TotalAmount:    totalAmount.String(),
	}, nil
}

func (s *OrderService) loadOrder(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
	}
	return order, nil
}

// publishEvents releases the aggregate's buffered events. Dispatch is
// fire-and-forget: the state change is already durable, so a failed
// publish is logged and dropped.
func (s *OrderService) publishEvents(ctx context.Context, order *domain.Order) {
	events := order.DrainEvents()
	if len(events) == 0 {
		return
	}

	if err := s.publisher.Publish(ctx, events); err != nil {
		logger.Get().Error("Failed to publish order events",
			zap.Int64("order_id", order.ID()),
			zap.Int("event_count", len(events)),
			zap.Error(err),
		)
	}
}

func toOrderView(order *domain.Order) *ports.OrderView {
	items := order.Items()
	itemViews := make([]ports.OrderItemView, 0, len(items))
	for _, item := range items {
		itemViews = append(itemViews, ports.OrderItemView{
			ProductID:   item.ProductID().Value(),
			ProductName: item.ProductName(),
			Price:       item.Price().String(),
			Quantity:    item.Quantity().Value(),
			TotalPrice:  item.CalculateTotalPrice().String(),
		})
	}

	view := &ports.OrderView{
		OrderID:         order.ID(),
		CustomerID:      order.CustomerID().Value(),
		Items:           itemViews,
		ShippingAddress: order.ShippingAddress().Value(),
		Status:          string(order.Status()),
		TotalAmount:     order.CalculateTotalAmount().String(),
		DiscountAmount:  order.DiscountAmount().String(),
		FinalAmount:     order.CalculateFinalAmount().String(),
		Cancellable:     order.IsCancellable(),
		OrderedAt:       order.OrderedAt(),
	}

	if coupon := order.CouponCode(); coupon != nil {
		view.CouponCode = coupon.Value()
	}

	return view
}
