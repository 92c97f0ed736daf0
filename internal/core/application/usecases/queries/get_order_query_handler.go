package queries

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return OrderDetails{}, err
	}

	var row struct {
		Status                int
		DeliveryType          int
		QueuePosition         *int
		EstimatedDeliveryTime *time.Time
		CreatedAt             time.Time
		UpdatedAt             time.Time
		DeliveredAt           *time.Time
		Payload               []byte
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			delivery_type,
			queue_position,
			estimated_delivery_time,
			created_at,
			updated_at,
			delivered_at,
			payload
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return OrderDetails{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return OrderDetails{}, err
	}

	return OrderDetails{
		ID:                    query.OrderID(),
		Status:                order.Status(row.Status),
		DeliveryType:          order.DeliveryType(row.DeliveryType),
		QueuePosition:         row.QueuePosition,
		EstimatedDeliveryTime: utc(row.EstimatedDeliveryTime),
		CreatedAt:             row.CreatedAt.UTC(),
		UpdatedAt:             row.UpdatedAt.UTC(),
		DeliveredAt:           utc(row.DeliveredAt),
		Payload:               row.Payload,
	}, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
