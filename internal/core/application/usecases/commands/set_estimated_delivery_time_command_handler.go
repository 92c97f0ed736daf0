package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/services"
)

// SetEstimatedDeliveryTimeCommandHandler replaces the estimate of an active
// order and logs the operator.
type SetEstimatedDeliveryTimeCommandHandler struct {
	transactor   QueueTransactor
	stateMachine services.OrderStateMachine
	logger       *slog.Logger
}

func NewSetEstimatedDeliveryTimeCommandHandler(
	transactor QueueTransactor,
	logger *slog.Logger,
) SetEstimatedDeliveryTimeCommandHandler {
	return SetEstimatedDeliveryTimeCommandHandler{
		transactor:   transactor,
		stateMachine: services.NewOrderStateMachine(),
		logger:       logger.With("component", "set_estimated_delivery_time"),
	}
}

func (h SetEstimatedDeliveryTimeCommandHandler) Handle(ctx context.Context, cmd SetEstimatedDeliveryTimeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var changed bool
	err := h.transactor.Run(ctx, "set_estimated_delivery_time", func(ctx context.Context, tx *QueueTx) error {
		o, err := tx.Order(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		changed, err = h.stateMachine.SetEstimatedDeliveryTime(tx.Queue(), o, cmd.EstimatedDeliveryTime(), tx.Now())
		return err
	})
	if err != nil {
		return err
	}

	if changed {
		h.logger.InfoContext(ctx, "Estimated delivery time overridden",
			"order_id", cmd.OrderID().String(),
			"estimated_delivery_time", cmd.EstimatedDeliveryTime(),
			"operator", cmd.Operator(),
		)
	}
	return nil
}
