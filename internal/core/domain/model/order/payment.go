package order

import (
	"fmt"

	"pos/internal/pkg/errs"
)

// PaymentStatus represents the settlement state of an order.
// It is tracked independently of the lifecycle Status: a delivered order may
// still be unpaid (pay on arrival) and a cancelled prepaid order is refunded.
type PaymentStatus int

const (
	// PaymentStatusUnknown represents an invalid or undefined payment status.
	PaymentStatusUnknown PaymentStatus = iota

	// Unpaid is the initial payment state for walk-in and dine-in orders.
	Unpaid

	// Paid indicates payment has been captured. Platform webhook orders
	// arrive already paid.
	Paid

	// Refunded indicates a captured payment was returned to the guest.
	Refunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "Unknown",
		Unpaid:               "Unpaid",
		Paid:                 "Paid",
		Refunded:             "Refunded",
	}
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s < Unpaid || s > Refunded {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
	return nil
}

// String returns the human-readable name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
