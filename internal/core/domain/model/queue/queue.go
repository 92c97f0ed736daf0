package queue

import (
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Queue is the set of active orders, kept sorted by position.
type Queue struct {
	members []*order.Order
	touched []*order.Order
}

// New builds a queue from the active orders and checks that positions are
// exactly 1..k. An inconsistent snapshot is returned as
// errs.InconsistentQueueStateError and never patched here.
func New(active []*order.Order) (*Queue, error) {
	q := Restore(active)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Restore builds a queue without checking positions. Only repair paths
// should need it.
func Restore(active []*order.Order) *Queue {
	q := &Queue{members: slices.Clone(active)}
	q.sort()
	return q
}

// Validate checks that every member is active and that the positions form
// the contiguous range 1..Len() without duplicates.
func (q *Queue) Validate() error {
	seen := make(map[int]kernel.UUID, len(q.members))
	for _, o := range q.members {
		pos, ok := o.QueuePosition()
		if !o.Status().IsActive() || !ok {
			return errs.NewInconsistentQueueStateError(
				fmt.Sprintf("order %s in %s status is not in line", o.ID(), o.Status()),
			)
		}
		if other, dup := seen[pos]; dup {
			return errs.NewInconsistentQueueStateError(
				fmt.Sprintf("position %d is held by orders %s and %s", pos, other, o.ID()),
			)
		}
		if pos > len(q.members) {
			return errs.NewInconsistentQueueStateError(
				fmt.Sprintf("position %d exceeds queue length %d", pos, len(q.members)),
			)
		}
		seen[pos] = o.ID()
	}
	return nil
}

// Len returns the number of active orders.
func (q *Queue) Len() int {
	return len(q.members)
}

// Members returns the active orders ordered by position.
func (q *Queue) Members() []*order.Order {
	return slices.Clone(q.members)
}

// Find returns the member with the given id.
func (q *Queue) Find(id kernel.UUID) (*order.Order, bool) {
	for _, o := range q.members {
		if o.ID().IsEqual(id) {
			return o, true
		}
	}
	return nil, false
}

// Holder returns the member at the given position.
func (q *Queue) Holder(position int) (*order.Order, bool) {
	for _, o := range q.members {
		if pos, _ := o.QueuePosition(); pos == position {
			return o, true
		}
	}
	return nil, false
}

// MaxPosition returns the highest held position, or 0 for an empty queue.
func (q *Queue) MaxPosition() int {
	highest := 0
	for _, o := range q.members {
		if pos, _ := o.QueuePosition(); pos > highest {
			highest = pos
		}
	}
	return highest
}

// LastPositionOf returns the highest position held by an order of the given
// class, or 0 when there is none.
func (q *Queue) LastPositionOf(deliveryType order.DeliveryType) int {
	last := 0
	for _, o := range q.members {
		if o.DeliveryType() != deliveryType {
			continue
		}
		if pos, _ := o.QueuePosition(); pos > last {
			last = pos
		}
	}
	return last
}

// Join adds an order that already holds its position.
func (q *Queue) Join(o *order.Order) error {
	if _, ok := o.QueuePosition(); !ok {
		return errs.NewValueIsRequiredError("queue position")
	}
	if _, exists := q.Find(o.ID()); exists {
		return errs.NewInconsistentQueueStateError(fmt.Sprintf("order %s is already in line", o.ID()))
	}
	q.members = append(q.members, o)
	q.sort()
	q.Touch(o)
	return nil
}

// Detach removes an order from the member list and returns the position it
// held. The order keeps its status; callers either re-join it or finish it.
func (q *Queue) Detach(o *order.Order) (int, error) {
	idx := slices.IndexFunc(q.members, o.IsEqual)
	if idx < 0 {
		return 0, errs.NewObjectNotFoundError("queued order", o.ID().String())
	}
	pos, _ := q.members[idx].QueuePosition()
	q.members = slices.Delete(q.members, idx, idx+1)
	q.Touch(o)
	return pos, nil
}

// Forget removes an order that already released its position (delivered or
// cancelled).
func (q *Queue) Forget(o *order.Order) {
	q.members = slices.DeleteFunc(q.members, o.IsEqual)
	q.Touch(o)
}

// ShiftRange moves every member whose position lies in [from, to] by delta.
// It returns the number of orders moved.
func (q *Queue) ShiftRange(from, to, delta int, now time.Time) (int, error) {
	if delta == 0 || from > to {
		return 0, nil
	}
	moved := 0
	for _, o := range q.members {
		pos, _ := o.QueuePosition()
		if pos < from || pos > to {
			continue
		}
		if err := o.MoveTo(pos+delta, now); err != nil {
			return moved, err
		}
		q.Touch(o)
		moved++
	}
	q.sort()
	return moved, nil
}

// Touch marks an order for persistence.
func (q *Queue) Touch(o *order.Order) {
	if slices.ContainsFunc(q.touched, o.IsEqual) {
		return
	}
	q.touched = append(q.touched, o)
}

// Touched returns every order changed through this queue, in first-touch order.
func (q *Queue) Touched() []*order.Order {
	return slices.Clone(q.touched)
}

func (q *Queue) sort() {
	slices.SortStableFunc(q.members, func(a, b *order.Order) int {
		pa, _ := a.QueuePosition()
		pb, _ := b.QueuePosition()
		if pa != pb {
			return pa - pb
		}
		return a.CreatedAt().Compare(b.CreatedAt())
	})
}
