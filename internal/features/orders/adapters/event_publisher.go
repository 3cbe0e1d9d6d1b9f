package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"order-service/internal/features/orders/contracts"
	"order-service/internal/features/orders/domain"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// WatermillEventPublisher implements the EventPublisher port on a
// watermill publisher. Each domain event is serialized to its contract
// payload and published on the topic named after the event.
type WatermillEventPublisher struct {
	publisher message.Publisher
}

// NewWatermillEventPublisher creates a new WatermillEventPublisher.
func NewWatermillEventPublisher(publisher message.Publisher) *WatermillEventPublisher {
	return &WatermillEventPublisher{publisher: publisher}
}

// Publish releases the drained events to their topics. Publishing stops
// at the first failure; the caller decides whether that failure matters.
func (p *WatermillEventPublisher) Publish(ctx context.Context, events []domain.Event) error {
	for _, event := range events {
		payload, err := toPayload(event)
		if err != nil {
			return err
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal %s event: %w", event.EventName(), err)
		}

		msg := message.NewMessage(watermill.NewUUID(), data)
		msg.SetContext(ctx)

		if err := p.publisher.Publish(event.EventName(), msg); err != nil {
			return fmt.Errorf("failed to publish %s event: %w", event.EventName(), err)
		}
	}

	return nil
}

func toPayload(event domain.Event) (any, error) {
	switch e := event.(type) {
	case domain.OrderCreatedEvent:
		return contracts.OrderCreated{
			CustomerID:  e.CustomerID,
			TotalAmount: e.TotalAmount.String(),
			OccurredAt:  e.OccurredAt(),
		}, nil
	case domain.OrderPaidEvent:
		return contracts.OrderPaid{
			OrderID:    e.OrderID,
			CustomerID: e.CustomerID,
			PaidAmount: e.PaidAmount.String(),
			PaidAt:     e.PaidAt,
			OccurredAt: e.OccurredAt(),
		}, nil
	case domain.OrderCancelledEvent:
		items := make([]contracts.CancelledItem, 0, len(e.Items))
		for _, item := range e.Items {
			items = append(items, contracts.CancelledItem{
				ProductID: item.ProductID().Value(),
				Quantity:  item.Quantity().Value(),
			})
		}

		payload := contracts.OrderCancelled{
			OrderID:    e.OrderID,
			CustomerID: e.CustomerID,
			Items:      items,
			OccurredAt: e.OccurredAt(),
		}
		if e.CouponCode != nil {
			payload.CouponCode = e.CouponCode.Value()
		}
		return payload, nil
	default:
		return nil, fmt.Errorf("unknown event type: %s", event.EventName())
	}
}
