package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

func restoredQueued(t *testing.T, position int, deliveryType order.DeliveryType) *order.Order {
	t.Helper()
	eta := now.Add(time.Hour)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:                    kernel.NewUUID(),
		Status:                order.Queued,
		DeliveryType:          deliveryType,
		QueuePosition:         &position,
		EstimatedDeliveryTime: &eta,
		CreatedAt:             now.Add(time.Duration(position) * time.Second),
		UpdatedAt:             now,
	})
	require.NoError(t, err)
	return o
}

// handlers wires every command handler to one in-memory store.
type handlers struct {
	store     *memoryStore
	publisher *recordingPublisher

	create         commands.CreateQueuedOrderCommandHandler
	changeStatus   commands.ChangeOrderStatusCommandHandler
	changeType     commands.ChangeDeliveryTypeCommandHandler
	setPosition    commands.SetQueuePositionCommandHandler
	setEstimate    commands.SetEstimatedDeliveryTimeCommandHandler
	normalizeQueue commands.NormalizeQueueCommandHandler
}

func newHandlers() handlers {
	store := newMemoryStore()
	publisher := &recordingPublisher{}
	transactor := commands.NewQueueTransactor(store, publisher, fixedClock{at: now}, 3, discardLogger())
	return handlers{
		store:          store,
		publisher:      publisher,
		create:         commands.NewCreateQueuedOrderCommandHandler(transactor),
		changeStatus:   commands.NewChangeOrderStatusCommandHandler(transactor),
		changeType:     commands.NewChangeDeliveryTypeCommandHandler(transactor),
		setPosition:    commands.NewSetQueuePositionCommandHandler(transactor, discardLogger()),
		setEstimate:    commands.NewSetEstimatedDeliveryTimeCommandHandler(transactor, discardLogger()),
		normalizeQueue: commands.NewNormalizeQueueCommandHandler(transactor, discardLogger()),
	}
}

func (h handlers) enqueue(t *testing.T, deliveryType order.DeliveryType) kernel.UUID {
	t.Helper()
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateQueuedOrderCommand(id, deliveryType, nil)
	require.NoError(t, err)
	_, err = h.create.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return id
}

func (h handlers) moveTo(t *testing.T, id kernel.UUID, status order.Status) {
	t.Helper()
	cmd, err := commands.NewChangeOrderStatusCommand(id, status)
	require.NoError(t, err)
	require.NoError(t, h.changeStatus.Handle(t.Context(), cmd))
}

func (h handlers) position(t *testing.T, id kernel.UUID) int {
	t.Helper()
	o, err := h.store.load(id)
	require.NoError(t, err)
	pos, ok := o.QueuePosition()
	require.True(t, ok, "order %s is not in line", id)
	return pos
}

// requireContiguous checks that committed positions are exactly 1..k.
func (h handlers) requireContiguous(t *testing.T) {
	t.Helper()
	active := h.store.active()
	for i, o := range active {
		pos, _ := o.QueuePosition()
		require.Equal(t, i+1, pos)
	}
}
