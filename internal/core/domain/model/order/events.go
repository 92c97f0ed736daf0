package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// StatusChanged is raised every time an order's status actually changes.
// No-op requests never raise it.
type StatusChanged struct {
	OrderID    kernel.UUID
	OldStatus  Status
	NewStatus  Status
	OccurredAt time.Time
}
