package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/queue"
	"fulfillment/internal/pkg/errs"
)

// OrderStateMachine applies status, delivery class, position and estimate
// changes to an order and carries out their effect on the queue.
//
// Every method expects q to be the snapshot read under the queue lock and o
// to be the instance held by q when o is active. Each method reports false
// when the request changed nothing.
//
// Example usage:
//
//	m := services.NewOrderStateMachine()
//	q, err := queue.New(active)
//	if err != nil {
//	    return err
//	}
//	changed, err := m.ChangeStatus(q, o, order.Delivered, now)
//	if err != nil {
//	    return err
//	}
//	// persist q.Touched() in the same transaction
type OrderStateMachine struct {
	allocator    PositionAllocator
	estimator    DeliveryTimeEstimator
	compactor    QueueCompactor
	promoter     ExpressPromoter
	repositioner ManualRepositioner
}

func NewOrderStateMachine() OrderStateMachine {
	allocator := NewPositionAllocator()
	compactor := NewQueueCompactor()
	return OrderStateMachine{
		allocator:    allocator,
		estimator:    NewDeliveryTimeEstimator(),
		compactor:    compactor,
		promoter:     NewExpressPromoter(allocator, compactor),
		repositioner: NewManualRepositioner(),
	}
}

// ChangeStatus moves o to next.
//
// Requests for the current status of a non-final order are no-ops. Final
// orders reject every request, including a repeat of their own status.
func (m OrderStateMachine) ChangeStatus(q *queue.Queue, o *order.Order, next order.Status, now time.Time) (bool, error) {
	if err := next.Validate(); err != nil {
		return false, err
	}
	current := o.Status()
	if current == next && !current.IsFinal() {
		return false, nil
	}
	if err := current.ValidateTransitionTo(next); err != nil {
		return false, err
	}

	var err error
	//nolint:exhaustive // Unknown is rejected by Validate, Pending is never a target
	switch next {
	case order.PaymentVerification:
		err = o.SubmitForVerification(now)
	case order.Queued:
		if current == order.Delayed {
			err = o.Requeue(m.estimate(o, order.Queued, now), now)
		} else {
			err = m.enqueue(q, o, now)
		}
	case order.InProgress:
		err = o.Start(m.estimate(o, order.InProgress, now), now)
	case order.Delayed:
		err = o.Delay(now)
	case order.Delivered:
		var released int
		if released, err = o.Deliver(now); err == nil {
			err = m.release(q, o, released, now)
		}
	case order.Cancelled:
		var released int
		if released, err = o.Cancel(now); err == nil && released > 0 {
			err = m.release(q, o, released, now)
		}
	default:
		err = errs.NewInvalidTransitionError(current.String(), next.String())
	}
	if err != nil {
		return false, err
	}

	q.Touch(o)
	return true, nil
}

// Enqueue accepts an order awaiting payment verification into the queue.
func (m OrderStateMachine) Enqueue(q *queue.Queue, o *order.Order, now time.Time) error {
	_, err := m.ChangeStatus(q, o, order.Queued, now)
	return err
}

// ChangeDeliveryType switches the delivery class. Active orders are promoted
// or demoted and re-estimated; orders not yet in line only record the class.
func (m OrderStateMachine) ChangeDeliveryType(
	q *queue.Queue,
	o *order.Order,
	deliveryType order.DeliveryType,
	now time.Time,
) (bool, error) {
	changed, err := o.ChangeDeliveryType(deliveryType, now)
	if err != nil || !changed {
		return false, err
	}
	q.Touch(o)

	if !o.Status().IsActive() {
		return true, nil
	}

	if deliveryType == order.Express {
		err = m.promoter.PromoteToFront(q, o, now)
	} else {
		err = m.promoter.Demote(q, o, now)
	}
	if err != nil {
		return false, err
	}

	if err = o.Reestimate(m.estimate(o, o.Status(), now), now); err != nil {
		return false, err
	}
	return true, nil
}

// SetPosition is the operator override of an active order's position. It does
// not keep Express orders ahead of Standard orders.
func (m OrderStateMachine) SetPosition(q *queue.Queue, o *order.Order, position int, now time.Time) (bool, error) {
	if !o.Status().IsActive() {
		return false, errs.NewInvalidTransitionErrorWithCause(
			o.Status().String(), o.Status().String(),
			errs.NewValueIsInvalidError("only orders in line can be repositioned"),
		)
	}
	return m.repositioner.SetPosition(q, o, position, now)
}

// SetEstimatedDeliveryTime is the operator override of an active order's estimate.
// Orders out of line reject it even when eta matches their last estimate.
func (OrderStateMachine) SetEstimatedDeliveryTime(q *queue.Queue, o *order.Order, eta time.Time, now time.Time) (bool, error) {
	if o.Status().IsActive() && o.EstimatedDeliveryTime().Equal(eta) {
		return false, nil
	}
	if err := o.Reestimate(eta, now); err != nil {
		return false, err
	}
	q.Touch(o)
	return true, nil
}

// Normalize renumbers the whole queue to 1..k. See QueueCompactor.Renumber.
func (m OrderStateMachine) Normalize(q *queue.Queue, now time.Time) (int, error) {
	return m.compactor.Renumber(q, now)
}

func (m OrderStateMachine) enqueue(q *queue.Queue, o *order.Order, now time.Time) error {
	position := m.allocator.NextPosition(q)
	if o.DeliveryType() == order.Express {
		var err error
		if position, err = m.promoter.OpenSlot(q, now); err != nil {
			return err
		}
	}

	if err := o.Enqueue(position, m.estimate(o, order.Queued, now), now); err != nil {
		return err
	}
	return q.Join(o)
}

func (m OrderStateMachine) release(q *queue.Queue, o *order.Order, released int, now time.Time) error {
	q.Forget(o)
	_, err := m.compactor.Compact(q, released, now)
	return err
}

func (m OrderStateMachine) estimate(o *order.Order, status order.Status, now time.Time) time.Time {
	return m.estimator.Estimate(o.DeliveryType(), StageOf(status), now)
}
