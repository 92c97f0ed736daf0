// Package queries contains read-only operations over the order store. Queries
// read committed rows directly with SQL and never take the queue lock.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetActiveQueueQueryIsNotConstructed = errors.New(
		"GetActiveQueueQuery must be created via NewGetActiveQueueQuery constructor",
	)
)

// GetActiveQueueQuery lists the orders in line, optionally only one delivery class.
//
// Example:
//
//	query, err := NewGetActiveQueueQuery(order.Express)
//	if err != nil {
//	    return err
//	}
//
//	rows, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list queue: %w", err)
//	}
//	for _, row := range rows {
//	    fmt.Printf("#%d %s due %s\n", row.QueuePosition, row.ID, row.EstimatedDeliveryTime)
//	}
type GetActiveQueueQuery struct {
	deliveryType order.DeliveryType
	guard        guard.ConstructorGuard
}

// NewGetActiveQueueQuery builds the query. order.UnknownDeliveryType means no filter.
func NewGetActiveQueueQuery(deliveryType order.DeliveryType) (GetActiveQueueQuery, error) {
	if deliveryType != order.UnknownDeliveryType {
		if err := deliveryType.Validate(); err != nil {
			return GetActiveQueueQuery{}, err
		}
	}
	return GetActiveQueueQuery{deliveryType: deliveryType, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveQueueQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveQueueQueryIsNotConstructed)
}

// DeliveryType returns the class filter and whether one is set.
func (q GetActiveQueueQuery) DeliveryType() (order.DeliveryType, bool) {
	return q.deliveryType, q.deliveryType != order.UnknownDeliveryType
}

// QueuedOrder is one row of the active queue.
type QueuedOrder struct {
	ID                    kernel.UUID
	Status                order.Status
	DeliveryType          order.DeliveryType
	QueuePosition         int
	EstimatedDeliveryTime time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
