package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveQueueQueryHandler reads the active queue ordered by position.
type GetActiveQueueQueryHandler struct {
	db *gorm.DB
}

func NewGetActiveQueueQueryHandler(db *gorm.DB) GetActiveQueueQueryHandler {
	return GetActiveQueueQueryHandler{db: db}
}

// Handle returns queued, in_progress and delayed orders. With a class filter
// the positions keep their global values, so gaps are expected.
func (h GetActiveQueueQueryHandler) Handle(ctx context.Context, query GetActiveQueueQuery) ([]QueuedOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			status,
			delivery_type,
			queue_position,
			estimated_delivery_time,
			created_at,
			updated_at
		FROM orders
		WHERE status IN ?`
	args := []any{activeStatusCodes()}
	if deliveryType, ok := query.DeliveryType(); ok {
		sql += ` AND delivery_type = ?`
		args = append(args, int(deliveryType))
	}
	sql += ` ORDER BY queue_position, created_at`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]QueuedOrder, 0)
	for rows.Next() {
		var row QueuedOrder
		var id uuid.UUID
		var status, deliveryType int
		var eta *time.Time

		if err = rows.Scan(
			&id,
			&status,
			&deliveryType,
			&row.QueuePosition,
			&eta,
			&row.CreatedAt,
			&row.UpdatedAt,
		); err != nil {
			return nil, err
		}

		if row.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		row.Status = order.Status(status)
		row.DeliveryType = order.DeliveryType(deliveryType)
		if eta != nil {
			row.EstimatedDeliveryTime = eta.UTC()
		}
		row.CreatedAt = row.CreatedAt.UTC()
		row.UpdatedAt = row.UpdatedAt.UTC()
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func activeStatusCodes() []int {
	active := order.ActiveStatuses()
	codes := make([]int, 0, len(active))
	for _, status := range active {
		codes = append(codes, int(status))
	}
	return codes
}
