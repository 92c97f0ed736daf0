// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of the orders table. Status and delivery type are
// stored as their integer codes; the queue position is NULL for orders not in
// line.
type OrderDTO struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status                int        `gorm:"not null;index"`
	DeliveryType          int        `gorm:"not null"`
	QueuePosition         *int       `gorm:"index"`
	EstimatedDeliveryTime *time.Time `gorm:"type:timestamptz"`
	CreatedAt             time.Time  `gorm:"type:timestamptz;not null"`
	UpdatedAt             time.Time  `gorm:"type:timestamptz;not null"`
	DeliveredAt           *time.Time `gorm:"type:timestamptz"`
	Payload               []byte     `gorm:"type:bytea"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	s := aggregate.Snapshot()
	return OrderDTO{
		ID:                    s.ID.Bytes(),
		Status:                int(s.Status),
		DeliveryType:          int(s.DeliveryType),
		QueuePosition:         s.QueuePosition,
		EstimatedDeliveryTime: s.EstimatedDeliveryTime,
		CreatedAt:             s.CreatedAt,
		UpdatedAt:             s.UpdatedAt,
		DeliveredAt:           s.DeliveredAt,
		Payload:               s.Payload,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                    id,
		Status:                order.Status(dto.Status),
		DeliveryType:          order.DeliveryType(dto.DeliveryType),
		QueuePosition:         dto.QueuePosition,
		EstimatedDeliveryTime: utc(dto.EstimatedDeliveryTime),
		CreatedAt:             dto.CreatedAt.UTC(),
		UpdatedAt:             dto.UpdatedAt.UTC(),
		DeliveredAt:           utc(dto.DeliveredAt),
		Payload:               dto.Payload,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
