package order

import (
	"fmt"

	"pos/internal/pkg/errs"
)

// Source identifies the channel an order came in through.
type Source int

const (
	// SourceUnknown represents an invalid or undefined source.
	SourceUnknown Source = iota

	// DineIn is an order taken at a table.
	DineIn

	// Takeaway is a counter order picked up by the guest.
	Takeaway

	// Platform is an order pushed by a delivery-platform webhook.
	// Platform orders arrive prepaid.
	Platform
)

func getSourceStrings() map[Source]string {
	return map[Source]string{
		SourceUnknown: "Unknown",
		DineIn:        "DineIn",
		Takeaway:      "Takeaway",
		Platform:      "Platform",
	}
}

// Validate checks if the Source value is valid.
func (s Source) Validate() error {
	if s < DineIn || s > Platform {
		return errs.NewValueIsInvalidErrorWithCause(
			"source is invalid",
			fmt.Errorf("%d is not a valid source", s),
		)
	}
	return nil
}

// String returns the human-readable name of the source.
func (s Source) String() string {
	if str, ok := getSourceStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// SourceFromString parses a source name as used on the wire.
func SourceFromString(name string) (Source, error) {
	for source, str := range getSourceStrings() {
		if str == name && source != SourceUnknown {
			return source, nil
		}
	}
	return SourceUnknown, errs.NewValueIsInvalidErrorWithCause(
		"source is invalid",
		fmt.Errorf("%q is not a valid source name", name),
	)
}
