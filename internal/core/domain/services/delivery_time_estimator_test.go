package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryTimeEstimator_Estimate(t *testing.T) {
	estimator := services.NewDeliveryTimeEstimator()

	t.Run("should use express windows", func(t *testing.T) {
		assert.Equal(t, now.Add(time.Hour), estimator.Estimate(order.Express, services.StageInitial, now))
		assert.Equal(t, now.Add(15*time.Minute), estimator.Estimate(order.Express, services.StageInProgress, now))
	})

	t.Run("should use standard windows", func(t *testing.T) {
		assert.Equal(t, now.Add(72*time.Hour), estimator.Estimate(order.Standard, services.StageInitial, now))
		assert.Equal(t, now.Add(24*time.Hour), estimator.Estimate(order.Standard, services.StageInProgress, now))
	})

	t.Run("should fall back to standard windows for unknown type", func(t *testing.T) {
		assert.Equal(t, now.Add(72*time.Hour), estimator.Estimate(order.UnknownDeliveryType, services.StageInitial, now))
	})
}

func TestStageOf(t *testing.T) {
	assert.Equal(t, services.StageInProgress, services.StageOf(order.InProgress))
	assert.Equal(t, services.StageInitial, services.StageOf(order.Queued))
	assert.Equal(t, services.StageInitial, services.StageOf(order.Delayed))
	assert.Equal(t, "in_progress", services.StageInProgress.String())
	assert.Equal(t, "initial", services.StageInitial.String())
}
