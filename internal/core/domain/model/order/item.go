package order

import (
	"errors"
	"fmt"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem factory method.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single line on an order: a product, a quantity, free-text notes
// for the kitchen, and an independent preparation status.
//
// Items belong to exactly one Order aggregate; bulk status changes go through
// the aggregate so the forward-only progression stays enforced in one place.
type Item struct {
	// id is the unique identifier for the item
	id kernel.UUID

	// productID references the menu product being prepared
	productID kernel.UUID

	// quantity is the number of units ordered (must be positive)
	quantity int

	// notes carries free-text kitchen instructions
	notes string

	// status is the current preparation state
	status ItemStatus

	// isConstructed ensures the item was created via NewItem or RestoreItem
	isConstructed bool
}

// NewItem creates a new order item in Pending status with validation.
// Quantity must be positive; malformed input is rejected before any
// persistence attempt.
func NewItem(id kernel.UUID, productID kernel.UUID, quantity int, notes string) (*Item, error) {
	item := &Item{
		status:        ItemPending,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	item.notes = notes
	return item, nil
}

// RestoreItem reconstructs an item from persistence with an explicit status.
func RestoreItem(id kernel.UUID, productID kernel.UUID, quantity int, notes string, status ItemStatus) (*Item, error) {
	item, err := NewItem(id, productID, quantity, notes)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	item.status = status
	return item, nil
}

// Validate ensures the Item instance was properly constructed.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the referenced product's identifier.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the number of units ordered.
func (i *Item) Quantity() int {
	return i.quantity
}

// Notes returns the kitchen instructions for the item.
func (i *Item) Notes() string {
	return i.notes
}

// Status returns the current preparation state of the item.
func (i *Item) Status() ItemStatus {
	return i.status
}

// Advance moves the item forward to target.
// Returns an error when target is not a strictly forward step; items never
// move backward in their progression.
func (i *Item) Advance(target ItemStatus) error {
	if !i.status.CanAdvanceTo(target) {
		return errs.NewValueIsInvalidErrorWithCause(
			"item status is invalid",
			fmt.Errorf("%s cannot advance to %s", i.status, target),
		)
	}

	i.status = target
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
