// Package ports defines the contracts between the fulfillment core and its
// infrastructure: persistence, the queue lock, time and event delivery.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists every field of an existing order, including cleared
	// optional ones such as the queue position.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns errs.ObjectNotFoundError when there is no such order.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetActive retrieves every order in queued, in_progress or delayed status
	// ordered by queue position. Callers that act on the result must hold the
	// queue lock of the same transaction.
	GetActive(ctx context.Context) ([]*order.Order, error)
}
