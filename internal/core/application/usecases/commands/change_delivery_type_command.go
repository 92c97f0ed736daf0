package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrChangeDeliveryTypeCommandIsNotConstructed = errors.New(
		"ChangeDeliveryTypeCommand must be created via NewChangeDeliveryTypeCommand constructor",
	)
)

// ChangeDeliveryTypeCommand switches an order between Standard and Express.
type ChangeDeliveryTypeCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	deliveryType order.DeliveryType

	guard guard.ConstructorGuard
}

func NewChangeDeliveryTypeCommand(orderID kernel.UUID, deliveryType order.DeliveryType) (ChangeDeliveryTypeCommand, error) {
	cmd := ChangeDeliveryTypeCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDeliveryType(deliveryType),
	); err != nil {
		return ChangeDeliveryTypeCommand{}, err
	}

	return cmd, nil
}

func (c ChangeDeliveryTypeCommand) Validate() error {
	return c.guard.Validate(ErrChangeDeliveryTypeCommandIsNotConstructed)
}

func (c ChangeDeliveryTypeCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeDeliveryTypeCommand) DeliveryType() order.DeliveryType {
	return c.deliveryType
}

func (c *ChangeDeliveryTypeCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ChangeDeliveryTypeCommand) setDeliveryType(deliveryType order.DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}

	c.deliveryType = deliveryType
	return nil
}
