package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/queue"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// lineUp enqueues one new order per delivery type, in the given order, through
// the state machine.
func lineUp(t *testing.T, types ...order.DeliveryType) (*queue.Queue, []*order.Order) {
	t.Helper()
	q, err := queue.New(nil)
	require.NoError(t, err)

	m := services.NewOrderStateMachine()
	orders := make([]*order.Order, 0, len(types))
	for i, deliveryType := range types {
		o := verified(t, deliveryType, now.Add(time.Duration(i)*time.Second))
		require.NoError(t, m.Enqueue(q, o, now))
		orders = append(orders, o)
	}
	return q, orders
}

func verified(t *testing.T, deliveryType order.DeliveryType, createdAt time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), deliveryType, []byte(`{"product":"gems"}`), createdAt)
	require.NoError(t, err)
	return o
}

func position(t *testing.T, o *order.Order) int {
	t.Helper()
	pos, ok := o.QueuePosition()
	require.True(t, ok, "order %s is not in line", o.ID())
	return pos
}

func positions(q *queue.Queue) []int {
	result := make([]int, 0, q.Len())
	for _, o := range q.Members() {
		pos, _ := o.QueuePosition()
		result = append(result, pos)
	}
	return result
}

// requireExpressFirst checks that every Express order is ahead of every
// Standard order.
func requireExpressFirst(t *testing.T, q *queue.Queue) {
	t.Helper()
	lastExpress := q.LastPositionOf(order.Express)
	for _, o := range q.Members() {
		if o.DeliveryType() == order.Standard {
			require.Greater(t, position(t, o), lastExpress)
		}
	}
}

// restoredAt loads a queued Standard order holding an arbitrary position, as a
// corrupted snapshot would.
func restoredAt(t *testing.T, pos int) *order.Order {
	t.Helper()
	eta := now.Add(time.Hour)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:                    kernel.NewUUID(),
		Status:                order.Queued,
		DeliveryType:          order.Standard,
		QueuePosition:         &pos,
		EstimatedDeliveryTime: &eta,
		CreatedAt:             now.Add(time.Duration(pos) * time.Minute),
		UpdatedAt:             now,
	})
	require.NoError(t, err)
	return o
}
