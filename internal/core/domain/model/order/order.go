package order

import (
	"errors"
	"fmt"
	"time"

	"pos/internal/core/domain/model/kernel"
	"pos/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIsCancelled is returned when attempting to add items to a
	// cancelled order. Cancelled has no outgoing transitions, so there is
	// nothing to reopen.
	ErrOrderIsCancelled = errors.New("cancelled order cannot accept new items")
)

// Order represents a guest order in the POS system. It is the aggregate root
// that manages the order lifecycle from intake through preparation to close.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a positive order number
//   - The order number is assigned exactly once, at creation, and is unique
//     only within the order's business date; (businessDate, orderNumber) is
//     the identity staff and kitchen displays work with
//   - Must carry at least one item; item status changes flow through the
//     aggregate's bulk operations
//   - closedAt is stamped when a terminal status is reached and cleared on
//     reopen
//   - Can only be created through NewOrder or RestoreOrder
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// orderNumber is the human-readable sequential number within businessDate
	orderNumber int

	// businessDate is the operating day the order belongs to
	businessDate kernel.BusinessDate

	// source is the intake channel (dine-in, takeaway, platform)
	source Source

	// status is the current state in the order lifecycle
	status Status

	// paymentStatus tracks settlement independently of the lifecycle
	paymentStatus PaymentStatus

	// items are the order lines; never empty for a constructed order
	items []*Item

	// closedAt is set when the order reaches a terminal status
	closedAt *time.Time

	// version supports optimistic locking on concurrent status updates
	version int

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order with validation. This is the only way to create
// a valid new order, ensuring all business invariants are maintained.
//
// The order starts in Open status, Unpaid, with version 1. The order number
// and business date come from the number generator and are immutable for the
// life of the aggregate.
func NewOrder(
	id kernel.UUID,
	orderNumber int,
	businessDate kernel.BusinessDate,
	source Source,
	items []*Item,
) (*Order, error) {
	order := &Order{
		status:        Open,
		paymentStatus: Unpaid,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setBusinessDate(businessDate),
		order.setSource(source),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an order from persistence.
// Unlike NewOrder it accepts an explicit status, payment status, closedAt
// and version, all of which are validated before use.
func RestoreOrder(
	id kernel.UUID,
	orderNumber int,
	businessDate kernel.BusinessDate,
	source Source,
	status Status,
	paymentStatus PaymentStatus,
	items []*Item,
	closedAt *time.Time,
	version int,
) (*Order, error) {
	order, err := NewOrder(id, orderNumber, businessDate, source, items)
	if err != nil {
		return nil, err
	}

	if err = errors.Join(status.Validate(), paymentStatus.Validate()); err != nil {
		return nil, err
	}
	if version < 1 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"version is invalid",
			fmt.Errorf("%d is not greater than 0", version),
		)
	}

	order.status = status
	order.paymentStatus = paymentStatus
	order.closedAt = closedAt
	order.version = version
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct
// and should be called when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the order's human-readable sequential number.
// It is unique only within the order's business date.
func (o *Order) Number() int {
	return o.orderNumber
}

// BusinessDate returns the operating day the order belongs to.
func (o *Order) BusinessDate() kernel.BusinessDate {
	return o.businessDate
}

// Source returns the intake channel of the order.
func (o *Order) Source() Source {
	return o.source
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// PaymentStatus returns the current settlement state of the order.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Items returns the order lines.
func (o *Order) Items() []*Item {
	return o.items
}

// ClosedAt returns the close timestamp, or nil while the order is active.
func (o *Order) ClosedAt() *time.Time {
	return o.closedAt
}

// Version returns the optimistic-lock version of the aggregate.
func (o *Order) Version() int {
	return o.version
}

// ChangeStatus applies a lifecycle transition and its side effects.
//
// The transition table is consulted but deliberately not enforced on this
// path: an off-table transition is applied anyway and reported through the
// offTable return value so the caller can log a warning. Only an outright
// invalid target status (Unknown or out of range) is rejected.
//
// Side effects applied together with the status change:
//   - a terminal target (Delivered, Cancelled) stamps closedAt with now
//   - target Prepared promotes every item not already Ready or Served to
//     Ready (the kitchen finished cooking)
//   - target Open clears closedAt, covering the Delivered -> Open reopen
//
// Returns:
//   - offTable: true when the transition is outside the allowed table
//   - error: only when the target status itself is invalid
func (o *Order) ChangeStatus(target Status, now time.Time) (bool, error) {
	if err := target.Validate(); err != nil {
		return false, err
	}

	offTable := !o.status.CanTransitionTo(target)

	o.status = target
	switch {
	case target.IsTerminal():
		closedAt := now
		o.closedAt = &closedAt
	case target == Open:
		o.closedAt = nil
	}

	if target == Prepared {
		for _, item := range o.items {
			if item.Status() != ItemReady && item.Status() != ItemServed {
				item.status = ItemReady
			}
		}
	}

	return offTable, nil
}

// MarkAllServed sets every item not already Served to Served in one bulk
// operation. Idempotent: a second call changes nothing and reports no items
// touched.
//
// Returns the number of items whose status changed.
func (o *Order) MarkAllServed() int {
	changed := 0
	for _, item := range o.items {
		if item.Status() != ItemServed {
			item.status = ItemServed
			changed++
		}
	}
	return changed
}

// AddItems appends new items to the order.
//
// A Delivered order is reopened to Open (the designed terminal-state
// exception) and its closedAt is cleared. A Cancelled order rejects new
// items, since Cancelled has no outgoing transitions.
func (o *Order) AddItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	if o.status == Cancelled {
		return ErrOrderIsCancelled
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	if o.status == Delivered {
		o.status = Open
		o.closedAt = nil
	}

	o.items = append(o.items, items...)
	return nil
}

// MarkPaid records a captured payment.
func (o *Order) MarkPaid() {
	o.paymentStatus = Paid
}

// MarkRefunded records that a captured payment was returned.
// Only a paid order can be refunded.
func (o *Order) MarkRefunded() error {
	if o.paymentStatus != Paid {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%s is not a valid payment status to refund", o.paymentStatus),
		)
	}
	o.paymentStatus = Refunded
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber int) error {
	if orderNumber <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"order number is invalid",
			fmt.Errorf("%d is not greater than 0", orderNumber),
		)
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setBusinessDate(businessDate kernel.BusinessDate) error {
	if businessDate.IsZero() {
		return errs.NewValueIsRequiredError("business date")
	}
	o.businessDate = businessDate
	return nil
}

func (o *Order) setSource(source Source) error {
	if err := source.Validate(); err != nil {
		return err
	}
	o.source = source
	return nil
}

func (o *Order) setItems(items []*Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
