package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> PaymentVerification ──> Queued ──> InProgress ──> Delivered
//	   │                │                │  ▲          │
//	   │                │                ▼  │          ▼
//	   │                │              Delayed ──────> Delivered
//	   └────────────────┴──────> Cancelled <── (Queued, InProgress, Delayed)
//
// Queued, InProgress and Delayed are the active statuses: an order in one of
// them holds a queue position. Delivered and Cancelled are final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is an order that checkout has not yet submitted for payment review.
	Pending

	// PaymentVerification is an order whose payment proof is being checked.
	// Checkout creates orders in this status.
	PaymentVerification

	// Queued is an accepted order waiting in line.
	Queued

	// InProgress is an order an operator is working on. It keeps its position.
	InProgress

	// Delivered is final; the order has left the queue.
	Delivered

	// Delayed annotates an active order that missed its estimate. It keeps its position.
	Delayed

	// Cancelled is final; the order has left the queue (if it was in it).
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:             "unknown",
		Pending:             "pending",
		PaymentVerification: "payment_verification",
		Queued:              "queued",
		InProgress:          "in_progress",
		Delivered:           "delivered",
		Delayed:             "delayed",
		Cancelled:           "cancelled",
	}
}

// getTransitions lists, for every non-final status, the statuses it may move to.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // final and unknown statuses have no outgoing transitions
	return map[Status][]Status{
		Pending:             {PaymentVerification, Cancelled},
		PaymentVerification: {Queued, Cancelled},
		Queued:              {InProgress, Delivered, Delayed, Cancelled},
		InProgress:          {Delivered, Delayed, Cancelled},
		Delayed:             {Queued, InProgress, Delivered, Cancelled},
	}
}

// ParseStatus converts the wire name of a status ("in_progress") into a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the defined statuses.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether an order in this status occupies a queue position.
func (s Status) IsActive() bool {
	return s == Queued || s == InProgress || s == Delayed
}

// IsFinal reports whether no further transition is possible.
func (s Status) IsFinal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransitionTo returns an InvalidTransitionError unless next is
// reachable from s in one step.
func (s Status) ValidateTransitionTo(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !s.CanTransitionTo(next) {
		return errs.NewInvalidTransitionError(s.String(), next.String())
	}
	return nil
}

// ActiveStatuses returns the statuses whose orders hold a queue position.
func ActiveStatuses() []Status {
	return []Status{Queued, InProgress, Delayed}
}
