package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EventPublisher delivers status changes after the transaction that caused
// them has committed. Publish must not block the caller; delivery is best
// effort.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.StatusChanged)
}
