package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrNormalizeQueueCommandIsNotConstructed = errors.New(
		"NormalizeQueueCommand must be created via NewNormalizeQueueCommand constructor",
	)
)

// NormalizeQueueCommand asks for the queue to be renumbered 1..k. It is the
// explicit repair for a queue reported as inconsistent.
type NormalizeQueueCommand struct { //nolint:recvcheck //using for validation
	operator string

	guard guard.ConstructorGuard
}

func NewNormalizeQueueCommand(operator string) (NormalizeQueueCommand, error) {
	operator, err := validateOperator(operator)
	if err != nil {
		return NormalizeQueueCommand{}, err
	}

	return NormalizeQueueCommand{
		operator: operator,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c NormalizeQueueCommand) Validate() error {
	return c.guard.Validate(ErrNormalizeQueueCommandIsNotConstructed)
}

func (c NormalizeQueueCommand) Operator() string {
	return c.operator
}
