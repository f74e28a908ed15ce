// Package stock provides the inventory side of the order domain: per-product
// stock levels that are deducted when orders are created.
//
// The persistence adapter performs deductions as a single atomic decrement
// guarded by the current level, never as an application-level read-modify-write.
// The Level value object carries the same rule for reads, restores, and tests.
package stock

import (
	"errors"
	"fmt"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

// ErrInsufficientStock is returned when a deduction would drive a stock
// level below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

// Level tracks the on-hand quantity for one product.
type Level struct {
	productID kernel.UUID
	quantity  int
}

// NewLevel creates a stock level with validation.
// Quantity must not be negative.
func NewLevel(productID kernel.UUID, quantity int) (Level, error) {
	if err := productID.Validate(); err != nil {
		return Level{}, err
	}
	if quantity < 0 {
		return Level{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is negative", quantity),
		)
	}

	return Level{productID: productID, quantity: quantity}, nil
}

// ProductID returns the product the level belongs to.
func (l Level) ProductID() kernel.UUID {
	return l.productID
}

// Quantity returns the units on hand.
func (l Level) Quantity() int {
	return l.quantity
}

// Deduct returns the level after removing n units.
// Returns ErrInsufficientStock when fewer than n units are on hand.
func (l Level) Deduct(n int) (Level, error) {
	if n <= 0 {
		return Level{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", n),
		)
	}
	if l.quantity < n {
		return Level{}, ErrInsufficientStock
	}

	return Level{productID: l.productID, quantity: l.quantity - n}, nil
}
