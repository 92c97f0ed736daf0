package services

import (
	"time"

	"fulfillment/internal/core/domain/model/queue"
)

// QueueCompactor closes the gaps orders leave when they exit the queue.
type QueueCompactor struct{}

func NewQueueCompactor() QueueCompactor {
	return QueueCompactor{}
}

// Compact decrements every position above removedPosition by one and returns
// how many orders moved.
//
// If some member already holds removedPosition the gap is closed and Compact
// does nothing, so a retried compaction never decrements twice.
func (QueueCompactor) Compact(q *queue.Queue, removedPosition int, now time.Time) (int, error) {
	if removedPosition < 1 {
		return 0, nil
	}
	if _, held := q.Holder(removedPosition); held {
		return 0, nil
	}
	return q.ShiftRange(removedPosition+1, q.MaxPosition(), -1, now)
}

// Renumber rewrites positions to 1..Len() keeping the current order of
// members (ties broken by creation time). It is the explicit repair for a
// queue that failed validation and returns how many orders moved.
func (QueueCompactor) Renumber(q *queue.Queue, now time.Time) (int, error) {
	moved := 0
	for i, o := range q.Members() {
		if pos, _ := o.QueuePosition(); pos == i+1 {
			continue
		}
		if err := o.MoveTo(i+1, now); err != nil {
			return moved, err
		}
		q.Touch(o)
		moved++
	}
	return moved, nil
}
