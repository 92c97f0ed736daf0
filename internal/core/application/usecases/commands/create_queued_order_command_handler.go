package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// CreateQueuedOrderResult is where an accepted order landed.
type CreateQueuedOrderResult struct {
	Position              int
	EstimatedDeliveryTime time.Time
}

// CreateQueuedOrderCommandHandler puts a verified order in line.
//
// An order checkout already stored in payment_verification is moved to
// queued with the delivery type of the command. An unknown order id is
// created from the command first. Orders in any other status are rejected
// with errs.InvalidTransitionError.
type CreateQueuedOrderCommandHandler struct {
	transactor   QueueTransactor
	stateMachine services.OrderStateMachine
}

func NewCreateQueuedOrderCommandHandler(transactor QueueTransactor) CreateQueuedOrderCommandHandler {
	return CreateQueuedOrderCommandHandler{
		transactor:   transactor,
		stateMachine: services.NewOrderStateMachine(),
	}
}

// Handle assigns a position (tail for Standard, after the last Express order
// for Express) and an initial delivery estimate.
func (h CreateQueuedOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateQueuedOrderCommand,
) (CreateQueuedOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateQueuedOrderResult{}, err
	}

	var result CreateQueuedOrderResult
	err := h.transactor.Run(ctx, "create_queued_order", func(ctx context.Context, tx *QueueTx) error {
		o, err := tx.Order(ctx, cmd.OrderID())
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			if o, err = order.NewOrder(cmd.OrderID(), cmd.DeliveryType(), cmd.Payload(), tx.Now()); err != nil {
				return err
			}
			tx.Add(o)
		case err != nil:
			return err
		case o.Status() == order.PaymentVerification:
			if _, err = h.stateMachine.ChangeDeliveryType(tx.Queue(), o, cmd.DeliveryType(), tx.Now()); err != nil {
				return err
			}
		default:
			return errs.NewInvalidTransitionError(o.Status().String(), order.Queued.String())
		}

		if err = h.stateMachine.Enqueue(tx.Queue(), o, tx.Now()); err != nil {
			return err
		}

		position, _ := o.QueuePosition()
		result = CreateQueuedOrderResult{
			Position:              position,
			EstimatedDeliveryTime: o.EstimatedDeliveryTime(),
		}
		return nil
	})
	if err != nil {
		return CreateQueuedOrderResult{}, err
	}

	return result, nil
}
