package commands

import (
	"errors"
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateQueuedOrderCommandIsNotConstructed = errors.New(
		"CreateQueuedOrderCommand must be created via NewCreateQueuedOrderCommand constructor",
	)
)

// CreateQueuedOrderCommand represents the acceptance of a paid order into the
// fulfillment queue. It is the entry point checkout calls once payment has
// been verified.
//
// Example:
//
//	cmd, err := NewCreateQueuedOrderCommand(orderID, order.Express, payload)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to queue order: %w", err)
//	}
//	fmt.Printf("Order %s is #%d, due %s", orderID, result.Position, result.EstimatedDeliveryTime)
type CreateQueuedOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	deliveryType order.DeliveryType
	payload      []byte

	guard guard.ConstructorGuard
}

// NewCreateQueuedOrderCommand validates the order id and delivery type. The
// payload is carried through untouched and may be empty.
func NewCreateQueuedOrderCommand(
	orderID kernel.UUID,
	deliveryType order.DeliveryType,
	payload []byte,
) (CreateQueuedOrderCommand, error) {
	cmd := CreateQueuedOrderCommand{
		payload: slices.Clone(payload),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDeliveryType(deliveryType),
	); err != nil {
		return CreateQueuedOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateQueuedOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateQueuedOrderCommandIsNotConstructed)
}

func (c CreateQueuedOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateQueuedOrderCommand) DeliveryType() order.DeliveryType {
	return c.deliveryType
}

func (c CreateQueuedOrderCommand) Payload() []byte {
	return slices.Clone(c.payload)
}

func (c *CreateQueuedOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateQueuedOrderCommand) setDeliveryType(deliveryType order.DeliveryType) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}

	c.deliveryType = deliveryType
	return nil
}
