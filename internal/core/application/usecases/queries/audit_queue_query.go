package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAuditQueueQueryIsNotConstructed = errors.New(
		"AuditQueueQuery must be created via NewAuditQueueQuery constructor",
	)
)

// ViolationKind names the queue rule an audit finding breaks.
type ViolationKind string

const (
	// MissingPosition is an active order without a queue position.
	MissingPosition ViolationKind = "missing_position"
	// DuplicatePosition is a position held by more than one active order.
	DuplicatePosition ViolationKind = "duplicate_position"
	// PositionGap is an active position outside the contiguous range 1..k.
	PositionGap ViolationKind = "position_gap"
	// StandardAheadOfExpress is an Express order placed behind a Standard one.
	// An operator repositioning orders by hand is allowed to produce it, so
	// it does not make the queue unhealthy on its own.
	StandardAheadOfExpress ViolationKind = "standard_ahead_of_express"
)

// BreaksContiguity reports whether the finding means positions are no longer
// exactly 1..k and the queue must be normalized.
func (k ViolationKind) BreaksContiguity() bool {
	return k != StandardAheadOfExpress
}

// AuditQueueQuery checks the stored active queue without changing it.
type AuditQueueQuery struct {
	guard guard.ConstructorGuard
}

func NewAuditQueueQuery() AuditQueueQuery {
	return AuditQueueQuery{guard: guard.NewConstructorGuard()}
}

func (q AuditQueueQuery) Validate() error {
	return q.guard.Validate(ErrAuditQueueQueryIsNotConstructed)
}

type Violation struct {
	Kind     ViolationKind
	OrderID  kernel.UUID
	Position int
}

// AuditReport lists every finding. An empty Violations slice means the
// queue is contiguous and every Express order is ahead of every Standard order.
// Healthy only looks at contiguity.
type AuditReport struct {
	ActiveCount int
	Violations  []Violation
}

func (r AuditReport) Healthy() bool {
	for _, v := range r.Violations {
		if v.Kind.BreaksContiguity() {
			return false
		}
	}
	return true
}
