package order

import (
	"errors"
	"fmt"

	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/pkg/errs"
	"dispatchboard/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the RestoreOrder constructor.
var ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder constructor")

// Order represents a sales or purchase order scheduled on the board.
//
// All orders originate on the scheduling server; the board never invents
// them, so the only constructor is RestoreOrder, which rebuilds an order
// from server-provided data. Placement (which cell or run the order sits in)
// is owned by the board aggregate; the entity carries only the denormalized
// date of its current placement for display.
//
// Order follows these invariants:
//   - Must have a non-empty identifier and order number
//   - Quantity (pallet count) must not be negative
//   - Status and class come from their closed, validated sets
//   - Orders in a terminal status are read-only on the board
//   - Purchase-class orders are confined to the inbound zone
//
// The struct uses private fields so state changes go through validated
// methods, and Clone supports the board's copy-on-write contract.
type Order struct {
	// id is the server-assigned identifier
	id string

	// number is the human-facing order number
	number string

	// customerCode identifies the customer, used for run grouping
	customerCode string

	// quantity is the pallet count
	quantity int

	// status is the fulfillment state reported by the server
	status Status

	// class distinguishes sales from purchase orders
	class Class

	// date mirrors the date component of the order's current placement
	date kernel.Date

	// guard ensures the entity was properly initialized
	guard guard.ConstructorGuard
}

// RestoreOrder reconstructs an Order from server-provided data. This is the
// only way to create an Order: every order on the board is sourced from a
// snapshot or a push update, never invented locally.
//
// Parameters:
//   - id: Server-assigned identifier (must be non-empty)
//   - number: Human-facing order number (must be non-empty)
//   - customerCode: Customer identifier used for run grouping
//   - quantity: Pallet count (must not be negative)
//   - status: Fulfillment status (must be a valid Status)
//   - class: Sales or purchase (must be a valid Class)
//   - date: Date of the order's current placement
//
// Returns the restored order, or an aggregated validation error.
func RestoreOrder(
	id string,
	number string,
	customerCode string,
	quantity int,
	status Status,
	class Class,
	date kernel.Date,
) (*Order, error) {
	o := &Order{
		customerCode: customerCode,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setQuantity(quantity),
		o.setStatus(status),
		o.setClass(class),
		o.setDate(date),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through
// RestoreOrder. Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the server-assigned identifier.
func (o *Order) ID() string {
	return o.id
}

// Number returns the human-facing order number.
func (o *Order) Number() string {
	return o.number
}

// CustomerCode returns the customer identifier.
func (o *Order) CustomerCode() string {
	return o.customerCode
}

// Quantity returns the pallet count.
func (o *Order) Quantity() int {
	return o.quantity
}

// Status returns the fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// Class returns the order class.
func (o *Order) Class() Class {
	return o.class
}

// Date returns the date of the order's current placement.
func (o *Order) Date() kernel.Date {
	return o.date
}

// ReadOnly reports whether the order's placement is frozen. This is derived
// from the status: terminal statuses (Shipped, Invoiced) freeze the order.
func (o *Order) ReadOnly() bool {
	return o.status.IsTerminal()
}

// IsPurchase reports whether the order belongs to the purchase class and is
// therefore confined to the inbound zone.
func (o *Order) IsPurchase() bool {
	return o.class == ClassPurchase
}

// ScheduleOn updates the denormalized placement date. The board calls this
// whenever a move lands the order in a cell on a different date.
func (o *Order) ScheduleOn(date kernel.Date) error {
	return o.setDate(date)
}

// Matches reports whether the server-visible fields of two orders are equal.
// The reconciliation engine uses this to keep the existing object reference
// when an incoming snapshot carries no actual change.
func (o *Order) Matches(other *Order) bool {
	return other != nil &&
		o.id == other.id &&
		o.number == other.number &&
		o.customerCode == other.customerCode &&
		o.quantity == other.quantity &&
		o.status == other.status &&
		o.class == other.class &&
		o.date.IsEqual(other.date)
}

// Clone returns an independent copy of the order. The board clones an order
// before mutating it so unrelated consumers keep stable references.
func (o *Order) Clone() *Order {
	clone := *o
	return &clone
}

// setID validates and sets the identifier.
func (o *Order) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("id")
	}
	o.id = id
	return nil
}

// setNumber validates and sets the order number.
func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

// setQuantity validates and sets the pallet count.
func (o *Order) setQuantity(quantity int) error {
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", quantity))
	}
	o.quantity = quantity
	return nil
}

// setStatus validates and sets the status.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setClass validates and sets the class.
func (o *Order) setClass(class Class) error {
	if err := class.Validate(); err != nil {
		return err
	}
	o.class = class
	return nil
}

// setDate validates and sets the placement date.
func (o *Order) setDate(date kernel.Date) error {
	if err := date.Validate(); err != nil {
		return err
	}
	o.date = date
	return nil
}
