// Package eventbus fans order status changes out to in-process subscribers.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"fulfillment/internal/core/domain/model/order"
)

// DefaultBuffer is the channel capacity used when Subscribe gets a
// non-positive buffer size.
const DefaultBuffer = 64

// Broadcaster implements ports.EventPublisher. Every subscriber owns a
// buffered channel; when it is full the event is dropped for that subscriber
// and Publish moves on.
type Broadcaster struct {
	mutex       sync.RWMutex
	subscribers map[uint64]chan order.StatusChanged
	nextID      uint64
	closed      bool
	logger      *slog.Logger
}

func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[uint64]chan order.StatusChanged),
		logger:      logger.With("component", "event_broadcaster"),
	}
}

// Subscribe registers a new subscriber. The returned function unsubscribes
// and closes the channel; calling it more than once is safe.
func (b *Broadcaster) Subscribe(buffer int) (<-chan order.StatusChanged, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	channel := make(chan order.StatusChanged, buffer)

	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.closed {
		close(channel)
		return channel, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subscribers[id] = channel

	var once sync.Once
	return channel, func() {
		once.Do(func() { b.unsubscribe(id) })
	}
}

func (b *Broadcaster) unsubscribe(id uint64) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	channel, ok := b.subscribers[id]
	if !ok {
		return
	}
	delete(b.subscribers, id)
	close(channel)
}

// Publish never blocks.
func (b *Broadcaster) Publish(ctx context.Context, events ...order.StatusChanged) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()

	for _, event := range events {
		for id, channel := range b.subscribers {
			select {
			case channel <- event:
			default:
				b.logger.WarnContext(ctx, "Subscriber is full, event dropped",
					"subscriber", id,
					"order_id", event.OrderID.String(),
					"new_status", event.NewStatus.String(),
				)
			}
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Broadcaster) Subscribers() int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return len(b.subscribers)
}

// Close closes every subscriber channel. Later subscriptions get a closed channel.
func (b *Broadcaster) Close() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, channel := range b.subscribers {
		close(channel)
		delete(b.subscribers, id)
	}
}
