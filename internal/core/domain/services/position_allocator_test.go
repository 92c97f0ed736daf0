package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/queue"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionAllocator_NextPosition(t *testing.T) {
	allocator := services.NewPositionAllocator()

	t.Run("should start at 1 for empty queue", func(t *testing.T) {
		q, err := queue.New(nil)
		require.NoError(t, err)

		assert.Equal(t, 1, allocator.NextPosition(q))
	})

	t.Run("should return tail after highest position", func(t *testing.T) {
		q, _ := lineUp(t, order.Express, order.Standard, order.Standard)

		assert.Equal(t, 4, allocator.NextPosition(q))
	})
}
