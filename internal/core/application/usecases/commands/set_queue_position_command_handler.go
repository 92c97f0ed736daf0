package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/services"
)

// SetQueuePositionCommandHandler moves an order to an operator-chosen position.
// Every applied move is logged with the operator who asked for it.
type SetQueuePositionCommandHandler struct {
	transactor   QueueTransactor
	stateMachine services.OrderStateMachine
	logger       *slog.Logger
}

func NewSetQueuePositionCommandHandler(transactor QueueTransactor, logger *slog.Logger) SetQueuePositionCommandHandler {
	return SetQueuePositionCommandHandler{
		transactor:   transactor,
		stateMachine: services.NewOrderStateMachine(),
		logger:       logger.With("component", "set_queue_position"),
	}
}

func (h SetQueuePositionCommandHandler) Handle(ctx context.Context, cmd SetQueuePositionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var from int
	var changed bool
	err := h.transactor.Run(ctx, "set_queue_position", func(ctx context.Context, tx *QueueTx) error {
		o, err := tx.Order(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		from, _ = o.QueuePosition()
		changed, err = h.stateMachine.SetPosition(tx.Queue(), o, cmd.Position(), tx.Now())
		return err
	})
	if err != nil {
		return err
	}

	if changed {
		h.logger.InfoContext(ctx, "Queue position overridden",
			"order_id", cmd.OrderID().String(),
			"from", from,
			"to", cmd.Position(),
			"operator", cmd.Operator(),
		)
	}
	return nil
}
