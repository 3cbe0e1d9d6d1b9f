package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_TransitionTable(t *testing.T) {
	all := []OrderStatus{StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled}

	allowed := map[OrderStatus][]OrderStatus{
		StatusPending:   {StatusPaid, StatusCancelled},
		StatusPaid:      {StatusShipped, StatusCancelled},
		StatusShipped:   {StatusDelivered},
		StatusDelivered: {},
		StatusCancelled: {},
	}

	for from, targets := range allowed {
		legal := make(map[OrderStatus]bool, len(targets))
		for _, to := range targets {
			legal[to] = true
		}
		for _, to := range all {
			assert.Equal(t, legal[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestOrderStatus_Guards(t *testing.T) {
	assert.True(t, StatusPending.CanBePaid())
	assert.False(t, StatusPaid.CanBePaid())
	assert.False(t, StatusCancelled.CanBePaid())

	assert.True(t, StatusPaid.CanBeShipped())
	assert.False(t, StatusPending.CanBeShipped())
	assert.False(t, StatusShipped.CanBeShipped())

	assert.True(t, StatusPending.CanBeCancelled())
	assert.True(t, StatusPaid.CanBeCancelled())
	assert.False(t, StatusShipped.CanBeCancelled())
	assert.False(t, StatusDelivered.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())
}

func TestOrderStatus_Description(t *testing.T) {
	assert.Equal(t, "pending payment", StatusPending.Description())
	assert.Equal(t, "shipping", StatusShipped.Description())
	assert.Equal(t, "BOGUS", OrderStatus("BOGUS").Description())
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusCancelled.IsValid())
	assert.False(t, OrderStatus("BOGUS").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}
