package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is a digital-goods order as seen by the fulfillment queue. Buyer
// contact, product and payment details travel in payload and are never
// inspected here.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and delivery type
//   - queuePosition > 0 exactly when status is active
//   - deliveredAt is set exactly when status is Delivered
type Order struct {
	id           kernel.UUID
	status       Status
	deliveryType DeliveryType
	// queuePosition is 1-based; 0 means the order is not in line
	queuePosition         int
	estimatedDeliveryTime time.Time
	createdAt             time.Time
	updatedAt             time.Time
	deliveredAt           time.Time
	payload               []byte

	events        []StatusChanged
	isConstructed bool
}

// Snapshot is the flat state of an order, used to restore aggregates from
// persistence and to map them back.
type Snapshot struct {
	ID                    kernel.UUID
	Status                Status
	DeliveryType          DeliveryType
	QueuePosition         *int
	EstimatedDeliveryTime *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeliveredAt           *time.Time
	Payload               []byte
}

// NewOrder creates an order the way checkout hands it over: awaiting payment
// verification and without a queue position.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.Express, payload, clock.Now())
//	if err != nil {
//	    return err
//	}
func NewOrder(id kernel.UUID, deliveryType DeliveryType, payload []byte, now time.Time) (*Order, error) {
	o := &Order{
		status:        PaymentVerification,
		createdAt:     now,
		updatedAt:     now,
		payload:       slices.Clone(payload),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setDeliveryType(deliveryType),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state and checks that the
// position, delivery time and status agree.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		isConstructed: true,
		status:        s.Status,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		payload:       slices.Clone(s.Payload),
	}
	if s.QueuePosition != nil {
		o.queuePosition = *s.QueuePosition
	}
	if s.EstimatedDeliveryTime != nil {
		o.estimatedDeliveryTime = *s.EstimatedDeliveryTime
	}
	if s.DeliveredAt != nil {
		o.deliveredAt = *s.DeliveredAt
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setDeliveryType(s.DeliveryType),
		s.Status.Validate(),
		o.validatePosition(s.QueuePosition),
		o.validateDeliveredAt(),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) DeliveryType() DeliveryType {
	return o.deliveryType
}

// QueuePosition returns the 1-based position and whether the order is in line.
func (o *Order) QueuePosition() (int, bool) {
	return o.queuePosition, o.queuePosition > 0
}

// EstimatedDeliveryTime returns the last computed estimate. It is the zero
// time for orders that never entered the queue and is left untouched when an
// order reaches a final status.
func (o *Order) EstimatedDeliveryTime() time.Time {
	return o.estimatedDeliveryTime
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// DeliveredAt returns the delivery time and whether the order was delivered.
func (o *Order) DeliveredAt() (time.Time, bool) {
	return o.deliveredAt, o.status == Delivered
}

// Payload returns a copy of the opaque order payload.
func (o *Order) Payload() []byte {
	return slices.Clone(o.payload)
}

// Snapshot returns the flat state of the order.
func (o *Order) Snapshot() Snapshot {
	s := Snapshot{
		ID:           o.id,
		Status:       o.status,
		DeliveryType: o.deliveryType,
		CreatedAt:    o.createdAt,
		UpdatedAt:    o.updatedAt,
		Payload:      slices.Clone(o.payload),
	}
	if pos, ok := o.QueuePosition(); ok {
		s.QueuePosition = &pos
	}
	if !o.estimatedDeliveryTime.IsZero() {
		eta := o.estimatedDeliveryTime
		s.EstimatedDeliveryTime = &eta
	}
	if at, ok := o.DeliveredAt(); ok {
		s.DeliveredAt = &at
	}
	return s
}

// SubmitForVerification moves a pending order to PaymentVerification.
func (o *Order) SubmitForVerification(now time.Time) error {
	return o.transition(PaymentVerification, now)
}

// Enqueue accepts an order into the queue at the given position with its
// initial delivery estimate.
func (o *Order) Enqueue(position int, eta time.Time, now time.Time) error {
	if err := validatePosition(position); err != nil {
		return err
	}
	if o.status != PaymentVerification {
		return errs.NewInvalidTransitionError(o.status.String(), Queued.String())
	}
	if err := o.transition(Queued, now); err != nil {
		return err
	}
	o.queuePosition = position
	o.estimatedDeliveryTime = eta
	return nil
}

// Requeue returns a delayed order to Queued. Its position is unchanged.
func (o *Order) Requeue(eta time.Time, now time.Time) error {
	if o.status != Delayed {
		return errs.NewInvalidTransitionError(o.status.String(), Queued.String())
	}
	if err := o.transition(Queued, now); err != nil {
		return err
	}
	o.estimatedDeliveryTime = eta
	return nil
}

// Start marks a queued or delayed order as being worked on. Its position is unchanged.
func (o *Order) Start(eta time.Time, now time.Time) error {
	if err := o.transition(InProgress, now); err != nil {
		return err
	}
	o.estimatedDeliveryTime = eta
	return nil
}

// Delay annotates an active order as delayed. Position and estimate are unchanged.
func (o *Order) Delay(now time.Time) error {
	return o.transition(Delayed, now)
}

// Deliver completes an active order and returns the position it released.
func (o *Order) Deliver(now time.Time) (int, error) {
	released := o.queuePosition
	if err := o.transition(Delivered, now); err != nil {
		return 0, err
	}
	o.queuePosition = 0
	o.deliveredAt = now
	return released, nil
}

// Cancel cancels the order and returns the position it released, or 0 when
// it was not in line.
func (o *Order) Cancel(now time.Time) (int, error) {
	released := o.queuePosition
	if err := o.transition(Cancelled, now); err != nil {
		return 0, err
	}
	o.queuePosition = 0
	return released, nil
}

// MoveTo sets the queue position of an active order.
func (o *Order) MoveTo(position int, now time.Time) error {
	if err := o.ensureActive("move"); err != nil {
		return err
	}
	if err := validatePosition(position); err != nil {
		return err
	}
	if o.queuePosition != position {
		o.queuePosition = position
		o.updatedAt = now
	}
	return nil
}

// ChangeDeliveryType records a new delivery class. It reports false when the
// class is unchanged. Final orders cannot change class.
func (o *Order) ChangeDeliveryType(deliveryType DeliveryType, now time.Time) (bool, error) {
	if err := deliveryType.Validate(); err != nil {
		return false, err
	}
	if o.status.IsFinal() {
		return false, errs.NewInvalidTransitionErrorWithCause(
			o.status.String(), o.status.String(),
			fmt.Errorf("delivery type cannot change once %s", o.status),
		)
	}
	if o.deliveryType == deliveryType {
		return false, nil
	}
	o.deliveryType = deliveryType
	o.updatedAt = now
	return true, nil
}

// Reestimate replaces the delivery estimate of an active order.
func (o *Order) Reestimate(eta time.Time, now time.Time) error {
	if err := o.ensureActive("re-estimate"); err != nil {
		return err
	}
	if eta.IsZero() {
		return errs.NewValueIsRequiredError("estimated delivery time")
	}
	o.estimatedDeliveryTime = eta
	o.updatedAt = now
	return nil
}

// DomainEvents returns the status changes recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []StatusChanged {
	return slices.Clone(o.events)
}

// ClearDomainEvents drops recorded events once they have been published.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) transition(next Status, now time.Time) error {
	if err := o.status.ValidateTransitionTo(next); err != nil {
		return err
	}
	o.events = append(o.events, StatusChanged{
		OrderID:    o.id,
		OldStatus:  o.status,
		NewStatus:  next,
		OccurredAt: now,
	})
	o.status = next
	o.updatedAt = now
	return nil
}

func (o *Order) ensureActive(action string) error {
	if !o.status.IsActive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("cannot %s an order in %s status", action, o.status),
		)
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDeliveryType(deliveryType DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	o.deliveryType = deliveryType
	return nil
}

func (o *Order) validatePosition(position *int) error {
	switch {
	case position != nil && !o.status.IsActive():
		return errs.NewValueIsInvalidErrorWithCause(
			"queue position is invalid",
			fmt.Errorf("%s orders cannot hold a queue position", o.status),
		)
	case position == nil && o.status.IsActive():
		return errs.NewValueIsRequiredErrorWithCause(
			"queue position",
			fmt.Errorf("%s orders must hold a queue position", o.status),
		)
	case position != nil:
		return validatePosition(*position)
	default:
		return nil
	}
}

func (o *Order) validateDeliveredAt() error {
	if o.status == Delivered && o.deliveredAt.IsZero() {
		return errs.NewValueIsRequiredError("delivered at")
	}
	return nil
}

func validatePosition(position int) error {
	if position < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"queue position is invalid",
			fmt.Errorf("%d is not greater than 0", position),
		)
	}
	return nil
}
