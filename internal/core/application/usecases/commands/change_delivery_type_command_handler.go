package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// ChangeDeliveryTypeCommandHandler promotes an order to Express or demotes it
// to Standard and re-estimates its delivery time.
type ChangeDeliveryTypeCommandHandler struct {
	transactor   QueueTransactor
	stateMachine services.OrderStateMachine
}

func NewChangeDeliveryTypeCommandHandler(transactor QueueTransactor) ChangeDeliveryTypeCommandHandler {
	return ChangeDeliveryTypeCommandHandler{
		transactor:   transactor,
		stateMachine: services.NewOrderStateMachine(),
	}
}

func (h ChangeDeliveryTypeCommandHandler) Handle(ctx context.Context, cmd ChangeDeliveryTypeCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.transactor.Run(ctx, "change_delivery_type", func(ctx context.Context, tx *QueueTx) error {
		o, err := tx.Order(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		_, err = h.stateMachine.ChangeDeliveryType(tx.Queue(), o, cmd.DeliveryType(), tx.Now())
		return err
	})
}
