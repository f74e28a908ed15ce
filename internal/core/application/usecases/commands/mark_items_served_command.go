package commands

import (
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/guard"
)

var ErrMarkItemsServedCommandIsNotConstructed = errors.New(
	"MarkItemsServedCommand must be created via NewMarkItemsServedCommand constructor",
)

// MarkItemsServedCommand represents a request to mark every item of an order
// as served in one bulk operation.
type MarkItemsServedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkItemsServedCommand creates a command to serve all items of an order.
func NewMarkItemsServedCommand(orderID kernel.UUID) (MarkItemsServedCommand, error) {
	servedCommand := MarkItemsServedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := servedCommand.setOrderID(orderID); err != nil {
		return MarkItemsServedCommand{}, err
	}

	return servedCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkItemsServedCommand) Validate() error {
	return c.guard.Validate(ErrMarkItemsServedCommandIsNotConstructed)
}

// OrderID returns the identifier of the order whose items are served.
func (c MarkItemsServedCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *MarkItemsServedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
