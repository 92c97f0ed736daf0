package eventbus

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// Message is the wire form of order.StatusChanged shared by every sink.
type Message struct {
	OrderID    string    `json:"orderId"`
	OldStatus  string    `json:"oldStatus"`
	NewStatus  string    `json:"newStatus"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewMessage(event order.StatusChanged) Message {
	return Message{
		OrderID:    event.OrderID.String(),
		OldStatus:  event.OldStatus.String(),
		NewStatus:  event.NewStatus.String(),
		OccurredAt: event.OccurredAt.UTC(),
	}
}

// Sink is an external destination for status changes.
type Sink interface {
	Send(ctx context.Context, message Message) error
}

// Relay copies events from a subscription into a Sink. Sink errors are
// logged and the event is skipped.
type Relay struct {
	broadcaster *Broadcaster
	sink        Sink
	buffer      int
	logger      *slog.Logger
}

func NewRelay(broadcaster *Broadcaster, sink Sink, name string, buffer int, logger *slog.Logger) *Relay {
	return &Relay{
		broadcaster: broadcaster,
		sink:        sink,
		buffer:      buffer,
		logger:      logger.With("component", "event_relay", "sink", name),
	}
}

// Run blocks until ctx is done or the broadcaster is closed.
func (r *Relay) Run(ctx context.Context) {
	events, unsubscribe := r.broadcaster.Subscribe(r.buffer)
	defer unsubscribe()

	r.logger.InfoContext(ctx, "Relay started")
	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "Relay stopped")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := r.sink.Send(ctx, NewMessage(event)); err != nil {
				r.logger.ErrorContext(ctx, "Failed to forward status change",
					"order_id", event.OrderID.String(),
					"new_status", event.NewStatus.String(),
					"error", err,
				)
			}
		}
	}
}
