package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/services"
)

// NormalizeQueueCommandHandler renumbers active orders to 1..k keeping their
// relative order (position, then creation time). It returns how many orders
// moved.
type NormalizeQueueCommandHandler struct {
	transactor   QueueTransactor
	stateMachine services.OrderStateMachine
	logger       *slog.Logger
}

func NewNormalizeQueueCommandHandler(transactor QueueTransactor, logger *slog.Logger) NormalizeQueueCommandHandler {
	return NormalizeQueueCommandHandler{
		transactor:   transactor,
		stateMachine: services.NewOrderStateMachine(),
		logger:       logger.With("component", "normalize_queue"),
	}
}

func (h NormalizeQueueCommandHandler) Handle(ctx context.Context, cmd NormalizeQueueCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	var moved int
	err := h.transactor.Repair(ctx, "normalize_queue", func(_ context.Context, tx *QueueTx) error {
		var err error
		moved, err = h.stateMachine.Normalize(tx.Queue(), tx.Now())
		return err
	})
	if err != nil {
		return 0, err
	}

	h.logger.InfoContext(ctx, "Queue normalized", "moved", moved, "operator", cmd.Operator())
	return moved, nil
}
