package order

import (
	"fmt"

	"dispatchboard/internal/pkg/errs"
)

// Class distinguishes sales orders, which are dispatched on delivery runs,
// from purchase orders, which are permanently confined to the inbound zone
// and can never join a run.
type Class int

const (
	// ClassUnknown represents an invalid or undefined class.
	ClassUnknown Class = iota

	// ClassSales is an outgoing customer order.
	ClassSales

	// ClassPurchase is an incoming supplier order.
	ClassPurchase
)

// getClassStrings returns a map of Class values to their string representations.
func getClassStrings() map[Class]string {
	return map[Class]string{
		ClassUnknown:  "Unknown",
		ClassSales:    "Sales",
		ClassPurchase: "Purchase",
	}
}

// ParseClass converts the server's string representation into a Class.
func ParseClass(value string) (Class, error) {
	switch value {
	case "Sales":
		return ClassSales, nil
	case "Purchase":
		return ClassPurchase, nil
	default:
		return ClassUnknown, errs.NewValueIsInvalidErrorWithCause("class",
			fmt.Errorf("%q is not a valid order class", value))
	}
}

// Validate checks if the Class value is valid.
func (c Class) Validate() error {
	if c != ClassSales && c != ClassPurchase {
		return errs.NewValueIsInvalidErrorWithCause("class",
			fmt.Errorf("%d is not a valid order class", c))
	}
	return nil
}

// String returns the human-readable name of the class.
func (c Class) String() string {
	if str, ok := getClassStrings()[c]; ok {
		return str
	}
	return "Unknown"
}
