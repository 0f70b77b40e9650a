package order

import (
	"fmt"

	"dispatchboard/internal/pkg/errs"
)

// Status represents the fulfillment state of an order as reported by the
// scheduling server. The board never advances statuses itself; it only
// receives them through snapshots and push updates.
//
// Progression:
//
//	Unscheduled ──> Picked ──> Packed ──> Shipped ──> Invoiced
//
// Shipped and Invoiced are terminal: an order that reached them is read-only
// on the board and can no longer change placement.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusUnscheduled is the initial status of an order not yet picked.
	StatusUnscheduled

	// StatusPicked indicates warehouse picking has started.
	StatusPicked

	// StatusPacked indicates the order is packed and ready to load.
	StatusPacked

	// StatusShipped indicates the order left on a truck. Terminal.
	StatusShipped

	// StatusInvoiced indicates the order has been billed. Terminal.
	StatusInvoiced
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "Unknown",
		StatusUnscheduled: "Unscheduled",
		StatusPicked:      "Picked",
		StatusPacked:      "Packed",
		StatusShipped:     "Shipped",
		StatusInvoiced:    "Invoiced",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusUnscheduled: "Unscheduled",
		StatusPicked:      "Picked",
		StatusPacked:      "Packed",
		StatusShipped:     "Shipped",
		StatusInvoiced:    "Invoiced",
	}
}

// ParseStatus converts the server's string representation into a Status.
// Returns an error for unrecognized values so loosely typed records from the
// push channel cannot smuggle in an undefined state.
func ParseStatus(value string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == value {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", value))
}

// Validate checks if the Status value is valid.
// Valid statuses are Unscheduled, Picked, Packed, Shipped, and Invoiced.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status marks the end of the order's board
// lifecycle. Orders in a terminal status are read-only: their placement can
// no longer change through board operations.
func (s Status) IsTerminal() bool {
	return s == StatusShipped || s == StatusInvoiced
}
