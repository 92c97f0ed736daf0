package services

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/queue"
)

// ExpressPromoter keeps Express orders ahead of Standard orders.
//
// An Express order is placed directly after the last Express order in line,
// which is position 1 when there is none. Express orders therefore keep
// first-come first-served order among themselves while every Standard order
// stays behind them.
type ExpressPromoter struct {
	allocator PositionAllocator
	compactor QueueCompactor
}

func NewExpressPromoter(allocator PositionAllocator, compactor QueueCompactor) ExpressPromoter {
	return ExpressPromoter{
		allocator: allocator,
		compactor: compactor,
	}
}

// InsertionPoint returns the position the next Express order takes.
func (ExpressPromoter) InsertionPoint(q *queue.Queue) int {
	return q.LastPositionOf(order.Express) + 1
}

// OpenSlot shifts every order at or after the insertion point up by one and
// returns the freed position.
func (p ExpressPromoter) OpenSlot(q *queue.Queue, now time.Time) (int, error) {
	position := p.InsertionPoint(q)
	if _, err := q.ShiftRange(position, q.MaxPosition(), 1, now); err != nil {
		return 0, err
	}
	return position, nil
}

// PromoteToFront moves an order already in line to the Express insertion
// point. Its old slot is compacted first, within the same snapshot.
func (p ExpressPromoter) PromoteToFront(q *queue.Queue, o *order.Order, now time.Time) error {
	if err := p.vacate(q, o, now); err != nil {
		return err
	}

	position, err := p.OpenSlot(q, now)
	if err != nil {
		return err
	}

	return p.rejoin(q, o, position, now)
}

// Demote moves an order already in line to the tail.
func (p ExpressPromoter) Demote(q *queue.Queue, o *order.Order, now time.Time) error {
	if err := p.vacate(q, o, now); err != nil {
		return err
	}

	return p.rejoin(q, o, p.allocator.NextPosition(q), now)
}

func (p ExpressPromoter) vacate(q *queue.Queue, o *order.Order, now time.Time) error {
	old, err := q.Detach(o)
	if err != nil {
		return err
	}
	_, err = p.compactor.Compact(q, old, now)
	return err
}

func (ExpressPromoter) rejoin(q *queue.Queue, o *order.Order, position int, now time.Time) error {
	if err := o.MoveTo(position, now); err != nil {
		return err
	}
	return q.Join(o)
}
