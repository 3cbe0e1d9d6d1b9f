// Package events hosts the asynchronous consumers of the order lifecycle
// events. They run on a watermill router fed by the in-process bus and
// must tolerate being slow or failing without affecting the workflow that
// published the event.
package events

import (
	"encoding/json"
	"fmt"

	"order-service/internal/core/eventbus"
	"order-service/internal/core/metrics"
	"order-service/internal/features/orders/contracts"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NewRouter builds a watermill router with all order event consumers
// registered against the given subscriber. The caller runs it and closes
// it alongside the bus.
func NewRouter(subscriber message.Subscriber, orderMetrics *metrics.OrderMetrics, logger *zap.Logger) (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, eventbus.NewZapLoggerAdapter(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create event router: %w", err)
	}

	notifications := NewNotificationConsumer(logger)
	analytics := NewAnalyticsConsumer(orderMetrics, logger)
	inventory := NewInventoryConsumer(logger)

	router.AddNoPublisherHandler("notifications_order_created", contracts.TopicOrderCreated, subscriber, notifications.OnOrderCreated)
	router.AddNoPublisherHandler("notifications_order_paid", contracts.TopicOrderPaid, subscriber, notifications.OnOrderPaid)
	router.AddNoPublisherHandler("notifications_order_cancelled", contracts.TopicOrderCancelled, subscriber, notifications.OnOrderCancelled)

	router.AddNoPublisherHandler("analytics_order_created", contracts.TopicOrderCreated, subscriber, analytics.OnOrderCreated)
	router.AddNoPublisherHandler("analytics_order_paid", contracts.TopicOrderPaid, subscriber, analytics.OnOrderPaid)
	router.AddNoPublisherHandler("analytics_order_cancelled", contracts.TopicOrderCancelled, subscriber, analytics.OnOrderCancelled)

	router.AddNoPublisherHandler("inventory_order_cancelled", contracts.TopicOrderCancelled, subscriber, inventory.OnOrderCancelled)

	return router, nil
}

// NotificationConsumer stands in for the customer notification channel.
// It logs what a real integration would send.
type NotificationConsumer struct {
	logger *zap.Logger
}

// NewNotificationConsumer creates a new NotificationConsumer.
func NewNotificationConsumer(logger *zap.Logger) *NotificationConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationConsumer{logger: logger}
}

// OnOrderCreated sends the order confirmation.
func (c *NotificationConsumer) OnOrderCreated(msg *message.Message) error {
	var event contracts.OrderCreated
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("failed to decode order.created event: %w", err)
	}

	c.logger.Info("Sending order confirmation",
		zap.Int64("customer_id", event.CustomerID),
		zap.String("total_amount", event.TotalAmount),
	)
	return nil
}

// OnOrderPaid sends the payment receipt.
func (c *NotificationConsumer) OnOrderPaid(msg *message.Message) error {
	var event contracts.OrderPaid
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("failed to decode order.paid event: %w", err)
	}

	c.logger.Info("Sending payment receipt",
		zap.Int64("order_id", event.OrderID),
		zap.Int64("customer_id", event.CustomerID),
		zap.String("paid_amount", event.PaidAmount),
	)
	return nil
}

// OnOrderCancelled sends the cancellation notice.
func (c *NotificationConsumer) OnOrderCancelled(msg *message.Message) error {
	var event contracts.OrderCancelled
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("failed to decode order.cancelled event: %w", err)
	}

	c.logger.Info("Sending cancellation notice",
		zap.Int64("order_id", event.OrderID),
		zap.Int64("customer_id", event.CustomerID),
		zap.Int("item_count", len(event.Items)),
	)
	return nil
}

// AnalyticsConsumer records the order lifecycle in Prometheus counters.
type AnalyticsConsumer struct {
	metrics *metrics.OrderMetrics
	logger  *zap.Logger
}

// NewAnalyticsConsumer creates a new AnalyticsConsumer.
func NewAnalyticsConsumer(orderMetrics *metrics.OrderMetrics, logger *zap.Logger) *AnalyticsConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsConsumer{metrics: orderMetrics, logger: logger}
}

// OnOrderCreated counts the new order.
func (c *AnalyticsConsumer) OnOrderCreated(msg *message.Message) error {
	var event contracts.OrderCreated
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("failed to decode order.created event: %w", err)
	}

	c.metrics.OrdersCreated.Inc()
	return nil
}

// OnOrderPaid counts the payment and adds it to revenue.
func (c *AnalyticsConsumer) OnOrderPaid(msg *message.Message) error {
	var event contracts.OrderPaid
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("failed to decode order.paid event: %w", err)
	}

	c.metrics.OrdersPaid.Inc()

	amount, err := decimal.NewFromString(event.PaidAmount)
	if err != nil {
		c.logger.Warn("Paid event carries unparseable amount",
			zap.Int64("order_id", event.OrderID),
			zap.String("paid_amount", event.PaidAmount),
		)
		return nil
	}
	revenue, _ := amount.Float64()
	c.metrics.Revenue.Add(revenue)

	return nil
}

// OnOrderCancelled counts the cancellation.
func (c *AnalyticsConsumer) OnOrderCancelled(msg *message.Message) error {
	var event contracts.OrderCancelled
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("failed to decode order.cancelled event: %w", err)
	}

	c.metrics.OrdersCancelled.Inc()
	return nil
}

// InventoryConsumer records the stock to put back when an order is
// cancelled. The restore calls themselves run synchronously inside the
// cancel workflow; this consumer only logs the intent per item.
type InventoryConsumer struct {
	logger *zap.Logger
}

// NewInventoryConsumer creates a new InventoryConsumer.
func NewInventoryConsumer(logger *zap.Logger) *InventoryConsumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryConsumer{logger: logger}
}

// OnOrderCancelled logs the restock intent for every cancelled item.
func (c *InventoryConsumer) OnOrderCancelled(msg *message.Message) error {
	var event contracts.OrderCancelled
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		return fmt.Errorf("failed to decode order.cancelled event: %w", err)
	}

	for _, item := range event.Items {
		c.logger.Info("Restoring inventory for cancelled order",
			zap.Int64("order_id", event.OrderID),
			zap.Int64("product_id", item.ProductID),
			zap.Int("quantity", item.Quantity),
		)
	}
	return nil
}
