package kernel

import (
	"time"

	"dispatchboard/internal/pkg/errs"
	"dispatchboard/internal/pkg/guard"
)

// dateLayout is the wire format for board dates, e.g. "2025-01-06".
const dateLayout = "2006-01-02"

// ErrDateIsNotConstructed is returned when attempting to use an improperly
// initialized Date. Dates must be created via NewDate to ensure validity.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError(
	"date must be created via NewDate constructor")

// Date represents a calendar day in the board's YYYY-MM-DD wire format.
// Date is an immutable value object; the zero value is invalid and fails
// validation. Dates are comparable and usable as map keys.
//
// Example:
//
//	d, err := kernel.NewDate("2025-01-06")
//	if err != nil {
//	    // handle invalid date
//	}
//	fmt.Println(d) // Output: 2025-01-06
type Date struct {
	value string
	guard guard.ConstructorGuard
}

// NewDate parses a date from its YYYY-MM-DD wire representation.
// Returns an error if the string is not a valid calendar date.
func NewDate(value string) (Date, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date", err)
	}

	return Date{
		// Re-format so "2025-1-6" style inputs cannot slip through with a
		// representation differing from the canonical wire form.
		value: parsed.Format(dateLayout),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Date was created via NewDate.
func (d Date) Validate() error {
	return d.guard.Validate(ErrDateIsNotConstructed)
}

// String returns the canonical YYYY-MM-DD representation.
func (d Date) String() string {
	return d.value
}

// IsEqual compares two dates by calendar day.
func (d Date) IsEqual(other Date) bool {
	return d.value == other.value
}
