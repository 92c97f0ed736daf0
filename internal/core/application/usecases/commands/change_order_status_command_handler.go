package commands

import (
	"context"

	"fulfillment/internal/core/domain/services"
)

// ChangeOrderStatusCommandHandler applies a status transition and its queue
// side effects. Leaving the active set compacts the queue in the same
// transaction, so two concurrent deliveries of one order compact once and the
// second fails with errs.InvalidTransitionError.
type ChangeOrderStatusCommandHandler struct {
	transactor   QueueTransactor
	stateMachine services.OrderStateMachine
}

func NewChangeOrderStatusCommandHandler(transactor QueueTransactor) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		transactor:   transactor,
		stateMachine: services.NewOrderStateMachine(),
	}
}

func (h ChangeOrderStatusCommandHandler) Handle(ctx context.Context, cmd ChangeOrderStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.transactor.Run(ctx, "change_order_status", func(ctx context.Context, tx *QueueTx) error {
		o, err := tx.Order(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		_, err = h.stateMachine.ChangeStatus(tx.Queue(), o, cmd.Status(), tx.Now())
		return err
	})
}
