package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditQueueQueryHandler reports queue rule violations found in committed rows.
type AuditQueueQueryHandler struct {
	db *gorm.DB
}

func NewAuditQueueQueryHandler(db *gorm.DB) AuditQueueQueryHandler {
	return AuditQueueQueryHandler{db: db}
}

type auditRow struct {
	id           kernel.UUID
	deliveryType order.DeliveryType
	position     *int
}

func (h AuditQueueQueryHandler) Handle(ctx context.Context, query AuditQueueQuery) (AuditReport, error) {
	if err := query.Validate(); err != nil {
		return AuditReport{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, delivery_type, queue_position
		FROM orders
		WHERE status IN ?
		ORDER BY queue_position NULLS LAST, created_at
	`, activeStatusCodes()).Rows()
	if err != nil {
		return AuditReport{}, err
	}
	defer rows.Close()

	active := make([]auditRow, 0)
	for rows.Next() {
		var id uuid.UUID
		var deliveryType int
		var row auditRow
		if err = rows.Scan(&id, &deliveryType, &row.position); err != nil {
			return AuditReport{}, err
		}
		if row.id, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return AuditReport{}, err
		}
		row.deliveryType = order.DeliveryType(deliveryType)
		active = append(active, row)
	}
	if err = rows.Err(); err != nil {
		return AuditReport{}, err
	}

	return audit(active), nil
}

// audit expects rows ordered by position with unpositioned rows last.
func audit(active []auditRow) AuditReport {
	report := AuditReport{ActiveCount: len(active), Violations: make([]Violation, 0)}
	k := len(active)

	seen := make(map[int]bool, k)
	var firstStandard *auditRow
	for i := range active {
		row := active[i]
		if row.position == nil {
			report.Violations = append(report.Violations, Violation{Kind: MissingPosition, OrderID: row.id})
			continue
		}

		position := *row.position
		switch {
		case seen[position]:
			report.Violations = append(report.Violations,
				Violation{Kind: DuplicatePosition, OrderID: row.id, Position: position})
		case position < 1 || position > k:
			report.Violations = append(report.Violations,
				Violation{Kind: PositionGap, OrderID: row.id, Position: position})
		}
		seen[position] = true

		if row.deliveryType == order.Standard && firstStandard == nil {
			firstStandard = &active[i]
		}
		if row.deliveryType == order.Express && firstStandard != nil && *firstStandard.position < position {
			report.Violations = append(report.Violations,
				Violation{Kind: StandardAheadOfExpress, OrderID: row.id, Position: position})
		}
	}

	return report
}
