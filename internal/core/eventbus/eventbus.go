package eventbus

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

// Bus is the in-process publish/subscribe channel for domain events.
//
// Delivery is fire-and-forget: publishing never blocks on consumers and a
// failing consumer cannot roll back the operation that emitted the event.
type Bus struct {
	pubSub *gochannel.GoChannel
}

// New creates an in-process Bus backed by Watermill's GoChannel Pub/Sub.
func New(logger *zap.Logger) *Bus {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		NewZapLoggerAdapter(logger),
	)

	return &Bus{pubSub: pubSub}
}

// Publisher returns the publishing side of the bus.
func (b *Bus) Publisher() message.Publisher {
	return b.pubSub
}

// Subscriber returns the subscribing side of the bus.
// GoChannel has no global state; subscribers must come from the same Bus
// that publishes.
func (b *Bus) Subscriber() message.Subscriber {
	return b.pubSub
}

// Close shuts down the bus and all subscriptions.
func (b *Bus) Close() error {
	return b.pubSub.Close()
}
