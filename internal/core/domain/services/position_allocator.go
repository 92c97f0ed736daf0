package services

import "fulfillment/internal/core/domain/model/queue"

// PositionAllocator hands out tail positions.
//
// It reads the queue snapshot taken under the queue lock, so the read and the
// write of the new position belong to the same transaction and two
// allocations can never observe the same maximum.
type PositionAllocator struct{}

func NewPositionAllocator() PositionAllocator {
	return PositionAllocator{}
}

// NextPosition returns max(position) + 1, or 1 for an empty queue.
func (PositionAllocator) NextPosition(q *queue.Queue) int {
	return q.MaxPosition() + 1
}
