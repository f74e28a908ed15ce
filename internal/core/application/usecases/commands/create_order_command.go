package commands

import (
	"errors"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/order"
	"pos/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderLineIsNotConstructed = errors.New(
		"OrderLine must be created via NewOrderLine constructor",
	)
	ErrLinesAreRequired   = errors.New("at least one order line is required")
	ErrPlacedAtIsRequired = errors.New("placed at timestamp is required")
	ErrQuantityIsInvalid  = errors.New("quantity must be greater than 0")
)

// OrderLine is one requested product line of an intake request: the product,
// how many units, and free-text notes for the kitchen.
type OrderLine struct { //nolint:recvcheck //using for validation
	productID kernel.UUID
	quantity  int
	notes     string

	guard guard.ConstructorGuard
}

// NewOrderLine creates a validated order line.
// Product ID must be valid and quantity positive.
func NewOrderLine(productID kernel.UUID, quantity int, notes string) (OrderLine, error) {
	line := OrderLine{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setProductID(productID),
		line.setQuantity(quantity),
	); err != nil {
		return OrderLine{}, err
	}

	line.notes = notes
	return line, nil
}

// Validate ensures the line was created through the constructor.
func (l OrderLine) Validate() error {
	return l.guard.Validate(ErrOrderLineIsNotConstructed)
}

// ProductID returns the identifier of the requested product.
func (l OrderLine) ProductID() kernel.UUID {
	return l.productID
}

// Quantity returns the number of units requested.
func (l OrderLine) Quantity() int {
	return l.quantity
}

// Notes returns the kitchen instructions for the line.
func (l OrderLine) Notes() string {
	return l.notes
}

func (l *OrderLine) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	l.productID = productID
	return nil
}

func (l *OrderLine) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	l.quantity = quantity
	return nil
}

// CreateOrderCommand represents a request to register a new guest order.
// Encapsulates the intake channel, the moment the order was placed, and the
// requested product lines.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	line, _ := NewOrderLine(productID, 2, "no onions")
//	cmd, err := NewCreateOrderCommand(orderID, order.DineIn, time.Now(), []OrderLine{line})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	source   order.Source
	placedAt time.Time
	lines    []OrderLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID and source are valid, the placement timestamp
// is set, and at least one well-formed line is present.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	source order.Source,
	placedAt time.Time,
	lines []OrderLine,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setSource(source),
		orderCommand.setPlacedAt(placedAt),
		orderCommand.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Source returns the intake channel of the order.
func (c CreateOrderCommand) Source() order.Source {
	return c.source
}

// PlacedAt returns the moment the order was placed. The order number shard
// and business date derive from it.
func (c CreateOrderCommand) PlacedAt() time.Time {
	return c.placedAt
}

// Lines returns the requested product lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	return c.lines
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setSource(source order.Source) error {
	if err := source.Validate(); err != nil {
		return err
	}

	c.source = source
	return nil
}

func (c *CreateOrderCommand) setPlacedAt(placedAt time.Time) error {
	if placedAt.IsZero() {
		return ErrPlacedAtIsRequired
	}

	c.placedAt = placedAt
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
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
