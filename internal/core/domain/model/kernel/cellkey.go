package kernel

import (
	"fmt"
	"strings"

	"dispatchboard/internal/pkg/errs"
	"dispatchboard/internal/pkg/guard"
)

const (
	// ResourceUnassigned is the pseudo-resource holding orders scheduled to a
	// date but not yet assigned to a truck.
	ResourceUnassigned = "unassigned"

	// ResourceInbound is the pseudo-resource holding purchase-class orders.
	// Orders placed here can never join a delivery run.
	ResourceInbound = "inbound"

	// cellKeySeparator joins resource and date in the wire representation.
	cellKeySeparator = "|"
)

// ErrCellKeyIsNotConstructed is returned when attempting to use an improperly
// initialized CellKey. Keys must be created via NewCellKey or ParseCellKey.
var ErrCellKeyIsNotConstructed = errs.NewValueIsRequiredError(
	"cell key must be created via NewCellKey or ParseCellKey constructors")

// CellKey identifies a scheduling slot on the board: the pair of a resource
// (a truck id, "unassigned", or "inbound") and a calendar date.
//
// The wire representation is "{resource}|{date}", e.g. "TR-01|2025-01-06".
// CellKey is an immutable value object, comparable and usable as a map key;
// the zero value is invalid and fails validation.
//
// Example:
//
//	key, err := kernel.ParseCellKey("TR-01|2025-01-06")
//	if err != nil {
//	    // handle malformed key
//	}
//	fmt.Println(key.Resource(), key.Date()) // Output: TR-01 2025-01-06
type CellKey struct {
	resource string
	date     Date
	guard    guard.ConstructorGuard
}

// NewCellKey creates a cell key from a resource identifier and a date.
// The resource must be non-empty and the date must be a constructed Date.
func NewCellKey(resource string, date Date) (CellKey, error) {
	if resource == "" {
		return CellKey{}, errs.NewValueIsRequiredError("resource")
	}
	if strings.Contains(resource, cellKeySeparator) {
		return CellKey{}, errs.NewValueIsInvalidErrorWithCause("resource",
			fmt.Errorf("%q must not contain %q", resource, cellKeySeparator))
	}
	if err := date.Validate(); err != nil {
		return CellKey{}, err
	}

	return CellKey{
		resource: resource,
		date:     date,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// ParseCellKey parses the "{resource}|{date}" wire representation.
func ParseCellKey(value string) (CellKey, error) {
	resource, rawDate, found := strings.Cut(value, cellKeySeparator)
	if !found {
		return CellKey{}, errs.NewValueIsInvalidErrorWithCause("cell key",
			fmt.Errorf("%q does not match {resource}%s{date}", value, cellKeySeparator))
	}

	date, err := NewDate(rawDate)
	if err != nil {
		return CellKey{}, err
	}

	return NewCellKey(resource, date)
}

// Validate ensures the CellKey was created via a constructor.
func (k CellKey) Validate() error {
	return k.guard.Validate(ErrCellKeyIsNotConstructed)
}

// Resource returns the resource component: a truck id, ResourceUnassigned,
// or ResourceInbound.
func (k CellKey) Resource() string {
	return k.resource
}

// Date returns the date component.
func (k CellKey) Date() Date {
	return k.date
}

// String returns the "{resource}|{date}" wire representation.
func (k CellKey) String() string {
	return k.resource + cellKeySeparator + k.date.String()
}

// IsEqual compares two cell keys by resource and date.
func (k CellKey) IsEqual(other CellKey) bool {
	return k.resource == other.resource && k.date.IsEqual(other.date)
}
