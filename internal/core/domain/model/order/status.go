package order

import (
	"fmt"

	"pos/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with a defined transition table. Query
// methods (CanTransitionTo, AllowedTransitions) are pure and side-effect
// free; the mutation path lives on the Order aggregate, which applies
// transitions leniently and reports off-table ones for logging.
//
// State transitions:
//
//	Open ──> Confirmed ──> InPreparation ──> Prepared ──> OnRoute ──> Delivered
//	  │          │               │               │           │            │
//	  │<─────────┴───────────────┴───────────────┤           │            │
//	  │<─────────────────────────────────────────┼───────────┼────────────┘
//	  │                                          └──> Delivered  (reopen)
//	  └──> Cancelled  (from every state except Delivered; terminal)
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Open is the initial status when an order is first created.
	// Items can still be added or changed freely.
	Open

	// Confirmed indicates the order has been confirmed for preparation.
	Confirmed

	// InPreparation indicates the kitchen is cooking the order.
	InPreparation

	// Prepared indicates the kitchen has finished; items are ready
	// for pickup or serving.
	Prepared

	// OnRoute indicates the order has left with a driver.
	OnRoute

	// Delivered indicates the order reached the guest. Terminal, with one
	// designed exception: reopening to Open when more items are added.
	Delivered

	// Cancelled indicates the order was abandoned. Terminal with no
	// outgoing transitions.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		Open:          "Open",
		Confirmed:     "Confirmed",
		InPreparation: "InPreparation",
		Prepared:      "Prepared",
		OnRoute:       "OnRoute",
		Delivered:     "Delivered",
		Cancelled:     "Cancelled",
	}
}

// transitions returns the allowed-transition table.
// Cancelled has zero outgoing transitions; Delivered has exactly one,
// back to Open, to support reopening an order when more items are added.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		Open:          {Confirmed, InPreparation, Cancelled},
		Confirmed:     {Open, InPreparation, Cancelled},
		InPreparation: {Open, Prepared, Cancelled},
		Prepared:      {Open, InPreparation, OnRoute, Delivered, Cancelled},
		OnRoute:       {Delivered, Cancelled},
		Delivered:     {Open},
		Cancelled:     {},
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := transitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Returns "Unknown" for invalid status values. Implements fmt.Stringer
// and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status ends the order lifecycle.
// Delivered and Cancelled are terminal; reaching either stamps closedAt
// on the aggregate. Delivered still allows the designed reopen exception.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransitionTo reports whether the transition table allows moving from
// s to target. Pure query with no side effects, usable independently for
// UI hints or pre-validation.
//
// Note that the mutation path on the Order aggregate does not reject
// off-table transitions; it applies them and reports the violation so the
// caller can log it.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the set of statuses reachable from s in one
// step. Returns an empty slice for terminal Cancelled and for invalid
// statuses. Pure query with no side effects.
func (s Status) AllowedTransitions() []Status {
	allowed := transitions()[s]
	out := make([]Status, len(allowed))
	copy(out, allowed)
	return out
}

// StatusFromString parses a status name as used on the wire and in persistence.
// Returns an error for unrecognized names, including "Unknown".
func StatusFromString(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == name && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status name", name),
	)
}
