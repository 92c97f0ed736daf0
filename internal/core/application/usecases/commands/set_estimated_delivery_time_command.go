package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrSetEstimatedDeliveryTimeCommandIsNotConstructed = errors.New(
		"SetEstimatedDeliveryTimeCommand must be created via NewSetEstimatedDeliveryTimeCommand constructor",
	)
)

// SetEstimatedDeliveryTimeCommand is an operator override of an active order's
// estimate, typically for a delayed order.
type SetEstimatedDeliveryTimeCommand struct { //nolint:recvcheck //using for validation
	orderID               kernel.UUID
	estimatedDeliveryTime time.Time
	operator              string

	guard guard.ConstructorGuard
}

func NewSetEstimatedDeliveryTimeCommand(
	orderID kernel.UUID,
	estimatedDeliveryTime time.Time,
	operator string,
) (SetEstimatedDeliveryTimeCommand, error) {
	cmd := SetEstimatedDeliveryTimeCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setEstimatedDeliveryTime(estimatedDeliveryTime),
		cmd.setOperator(operator),
	); err != nil {
		return SetEstimatedDeliveryTimeCommand{}, err
	}

	return cmd, nil
}

func (c SetEstimatedDeliveryTimeCommand) Validate() error {
	return c.guard.Validate(ErrSetEstimatedDeliveryTimeCommandIsNotConstructed)
}

func (c SetEstimatedDeliveryTimeCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SetEstimatedDeliveryTimeCommand) EstimatedDeliveryTime() time.Time {
	return c.estimatedDeliveryTime
}

func (c SetEstimatedDeliveryTimeCommand) Operator() string {
	return c.operator
}

func (c *SetEstimatedDeliveryTimeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SetEstimatedDeliveryTimeCommand) setEstimatedDeliveryTime(eta time.Time) error {
	if eta.IsZero() {
		return errs.NewValueIsRequiredError("estimated delivery time")
	}

	c.estimatedDeliveryTime = eta.UTC()
	return nil
}

func (c *SetEstimatedDeliveryTimeCommand) setOperator(operator string) error {
	operator, err := validateOperator(operator)
	if err != nil {
		return err
	}

	c.operator = operator
	return nil
}
