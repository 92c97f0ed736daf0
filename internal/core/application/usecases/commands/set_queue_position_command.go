package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSetQueuePositionCommandIsNotConstructed = errors.New(
		"SetQueuePositionCommand must be created via NewSetQueuePositionCommand constructor",
	)
)

// SetQueuePositionCommand is an operator override of an order's place in line.
// It may put a Standard order ahead of Express orders.
//
// Example:
//
//	cmd, err := NewSetQueuePositionCommand(orderID, 1, "support@shop")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("could not update order: %w", err)
//	}
type SetQueuePositionCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	position int
	operator string

	guard guard.ConstructorGuard
}

// NewSetQueuePositionCommand checks that position is positive and operator is
// set. The upper bound depends on the queue and is checked by the handler.
func NewSetQueuePositionCommand(orderID kernel.UUID, position int, operator string) (SetQueuePositionCommand, error) {
	cmd := SetQueuePositionCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPosition(position),
		cmd.setOperator(operator),
	); err != nil {
		return SetQueuePositionCommand{}, err
	}

	return cmd, nil
}

func (c SetQueuePositionCommand) Validate() error {
	return c.guard.Validate(ErrSetQueuePositionCommandIsNotConstructed)
}

func (c SetQueuePositionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SetQueuePositionCommand) Position() int {
	return c.position
}

func (c SetQueuePositionCommand) Operator() string {
	return c.operator
}

func (c *SetQueuePositionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetQueuePositionCommand) setPosition(position int) error {
	if position < 1 {
		return errs.NewValueIsOutOfRangeError("queue position", position, 1, "queue length")
	}

	c.position = position
	return nil
}

func (c *SetQueuePositionCommand) setOperator(operator string) error {
	operator, err := validateOperator(operator)
	if err != nil {
		return err
	}

	c.operator = operator
	return nil
}
