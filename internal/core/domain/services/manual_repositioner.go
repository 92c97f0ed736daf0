package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/queue"
	"fulfillment/internal/pkg/errs"
)

// ManualRepositioner applies an operator's choice of position.
//
// It deliberately ignores delivery class: an operator may put a Standard
// order ahead of Express orders. Callers must record who asked for the move.
type ManualRepositioner struct{}

func NewManualRepositioner() ManualRepositioner {
	return ManualRepositioner{}
}

// SetPosition moves o to newPosition, shifting the orders in between by one
// so positions stay contiguous. It reports false when o already holds
// newPosition.
func (ManualRepositioner) SetPosition(q *queue.Queue, o *order.Order, newPosition int, now time.Time) (bool, error) {
	if _, ok := q.Find(o.ID()); !ok {
		return false, errs.NewObjectNotFoundError("queued order", o.ID().String())
	}
	if newPosition < 1 || newPosition > q.Len() {
		return false, errs.NewValueIsOutOfRangeError("queue position", newPosition, 1, q.Len())
	}

	old, _ := o.QueuePosition()
	if old == newPosition {
		return false, nil
	}

	if _, err := q.Detach(o); err != nil {
		return false, err
	}

	var err error
	if newPosition > old {
		_, err = q.ShiftRange(old+1, newPosition, -1, now)
	} else {
		_, err = q.ShiftRange(newPosition, old-1, 1, now)
	}
	if err != nil {
		return false, err
	}

	if err = o.MoveTo(newPosition, now); err != nil {
		return false, err
	}
	if err = q.Join(o); err != nil {
		return false, err
	}
	return true, nil
}
