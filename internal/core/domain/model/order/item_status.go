package order

import (
	"fmt"

	"pos/internal/pkg/errs"
)

// ItemStatus represents the preparation state of a single order item.
// Unlike the order Status machine, items follow a simple linear progression:
//
//	ItemPending ──> ItemCooking ──> ItemReady ──> ItemServed
//
// Items only move forward; bulk operations on the aggregate (promote to
// Ready when the order is Prepared, mark all Served) skip items that are
// already at or past the target state, which makes them idempotent.
type ItemStatus int

const (
	// ItemStatusUnknown represents an invalid or undefined item status.
	ItemStatusUnknown ItemStatus = iota

	// ItemPending is the initial state of a freshly added item.
	ItemPending

	// ItemCooking indicates the kitchen started preparing the item.
	ItemCooking

	// ItemReady indicates the item is cooked and waiting to be served.
	ItemReady

	// ItemServed indicates the item reached the guest.
	ItemServed
)

func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemStatusUnknown: "Unknown",
		ItemPending:       "Pending",
		ItemCooking:       "Cooking",
		ItemReady:         "Ready",
		ItemServed:        "Served",
	}
}

// Validate checks if the ItemStatus value is valid.
func (s ItemStatus) Validate() error {
	if s < ItemPending || s > ItemServed {
		return errs.NewValueIsInvalidErrorWithCause(
			"item status is invalid",
			fmt.Errorf("%d is not a valid item status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the item status.
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanAdvanceTo reports whether target is a strictly forward step from s.
// Items never move backward in their progression.
func (s ItemStatus) CanAdvanceTo(target ItemStatus) bool {
	if s.Validate() != nil || target.Validate() != nil {
		return false
	}
	return target > s
}
