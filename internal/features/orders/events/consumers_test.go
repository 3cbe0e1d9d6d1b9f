package events

import (
	"encoding/json"
	"testing"
	"time"

	"order-service/internal/core/eventbus"
	"order-service/internal/core/metrics"
	"order-service/internal/features/orders/contracts"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return message.NewMessage(watermill.NewUUID(), data)
}

func TestAnalyticsConsumer_CountsLifecycle(t *testing.T) {
	orderMetrics := metrics.NewOrderMetrics(prometheus.NewRegistry())
	consumer := NewAnalyticsConsumer(orderMetrics, zap.NewNop())

	require.NoError(t, consumer.OnOrderCreated(newMessage(t, contracts.OrderCreated{
		CustomerID:  42,
		TotalAmount: "50000",
		OccurredAt:  time.Now(),
	})))
	require.NoError(t, consumer.OnOrderPaid(newMessage(t, contracts.OrderPaid{
		OrderID:    1,
		CustomerID: 42,
		PaidAmount: "45000",
		PaidAt:     time.Now(),
		OccurredAt: time.Now(),
	})))
	require.NoError(t, consumer.OnOrderCancelled(newMessage(t, contracts.OrderCancelled{
		OrderID:    2,
		CustomerID: 42,
		OccurredAt: time.Now(),
	})))

	assert.Equal(t, float64(1), testutil.ToFloat64(orderMetrics.OrdersCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(orderMetrics.OrdersPaid))
	assert.Equal(t, float64(1), testutil.ToFloat64(orderMetrics.OrdersCancelled))
	assert.Equal(t, float64(45000), testutil.ToFloat64(orderMetrics.Revenue))
}

func TestAnalyticsConsumer_BadAmountStillCountsPayment(t *testing.T) {
	orderMetrics := metrics.NewOrderMetrics(prometheus.NewRegistry())
	consumer := NewAnalyticsConsumer(orderMetrics, zap.NewNop())

	require.NoError(t, consumer.OnOrderPaid(newMessage(t, contracts.OrderPaid{
		OrderID:    1,
		PaidAmount: "not-a-number",
	})))

	assert.Equal(t, float64(1), testutil.ToFloat64(orderMetrics.OrdersPaid))
	assert.Equal(t, float64(0), testutil.ToFloat64(orderMetrics.Revenue))
}

func TestAnalyticsConsumer_RejectsMalformedPayload(t *testing.T) {
	orderMetrics := metrics.NewOrderMetrics(prometheus.NewRegistry())
	consumer := NewAnalyticsConsumer(orderMetrics, zap.NewNop())

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	assert.Error(t, consumer.OnOrderCreated(msg))
}

func TestNotificationConsumer_AcksAllEvents(t *testing.T) {
	consumer := NewNotificationConsumer(zap.NewNop())

	assert.NoError(t, consumer.OnOrderCreated(newMessage(t, contracts.OrderCreated{CustomerID: 42})))
	assert.NoError(t, consumer.OnOrderPaid(newMessage(t, contracts.OrderPaid{OrderID: 1})))
	assert.NoError(t, consumer.OnOrderCancelled(newMessage(t, contracts.OrderCancelled{OrderID: 1})))
}

func TestInventoryConsumer_LogsRestockPerItem(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	consumer := NewInventoryConsumer(zap.New(core))

	require.NoError(t, consumer.OnOrderCancelled(newMessage(t, contracts.OrderCancelled{
		OrderID:    7,
		CustomerID: 42,
		Items: []contracts.CancelledItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 5, Quantity: 1},
		},
		OccurredAt: time.Now(),
	})))

	entries := logs.FilterMessage("Restoring inventory for cancelled order").All()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(7), entries[0].ContextMap()["order_id"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["product_id"])
	assert.Equal(t, int64(5), entries[1].ContextMap()["product_id"])
}

func TestInventoryConsumer_RejectsMalformedPayload(t *testing.T) {
	consumer := NewInventoryConsumer(zap.NewNop())

	msg := message.NewMessage(watermill.NewUUID(), []byte("not json"))
	assert.Error(t, consumer.OnOrderCancelled(msg))
}

func TestNewRouter_RegistersHandlers(t *testing.T) {
	orderMetrics := metrics.NewOrderMetrics(prometheus.NewRegistry())
	bus := eventbus.New(zap.NewNop())
	t.Cleanup(func() { bus.Close() })

	router, err := NewRouter(bus.Subscriber(), orderMetrics, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, router)
	require.NoError(t, router.Close())
}
