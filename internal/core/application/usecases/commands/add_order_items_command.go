package commands

import (
	"errors"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/guard"
)

var ErrAddOrderItemsCommandIsNotConstructed = errors.New(
	"AddOrderItemsCommand must be created via NewAddOrderItemsCommand constructor",
)

// AddOrderItemsCommand represents a request to append product lines to an
// existing order, e.g. a table ordering another round.
type AddOrderItemsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	lines   []OrderLine

	guard guard.ConstructorGuard
}

// NewAddOrderItemsCommand creates a command to append lines to an order.
// Validates that the order ID is valid and at least one well-formed line is
// present.
func NewAddOrderItemsCommand(orderID kernel.UUID, lines []OrderLine) (AddOrderItemsCommand, error) {
	itemsCommand := AddOrderItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		itemsCommand.setOrderID(orderID),
		itemsCommand.setLines(lines),
	); err != nil {
		return AddOrderItemsCommand{}, err
	}

	return itemsCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderItemsCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemsCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to extend.
func (c AddOrderItemsCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Lines returns the product lines to append.
func (c AddOrderItemsCommand) Lines() []OrderLine {
	return c.lines
}

func (c *AddOrderItemsCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AddOrderItemsCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	c.lines = lines
	return nil
}
