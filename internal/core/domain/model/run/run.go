package run

import (
	"errors"
	"slices"

	"dispatchboard/internal/pkg/errs"
	"dispatchboard/internal/pkg/guard"
)

// ErrRunIsNotConstructed is returned when a DeliveryRun instance was not
// created through NewDeliveryRun or RestoreDeliveryRun.
var ErrRunIsNotConstructed = errors.New(
	"DeliveryRun must be created via NewDeliveryRun or RestoreDeliveryRun constructors")

// DeliveryRun represents an ordered group of committed orders: one truck's
// planned stop sequence for a date. The member order matters: it is the
// pick and stop sequence the driver follows.
//
// DeliveryRun follows these invariants:
//   - Must have a non-empty identifier and display name
//   - A member order id appears at most once in the sequence
//   - Membership changes go through validated methods
//
// Placement (which cell the run sits in) is owned by the board aggregate.
// Clone supports the board's copy-on-write contract: the board clones a run
// before changing its members so unrelated consumers keep stable references.
type DeliveryRun struct {
	// id is the run identifier (server-assigned or locally allocated)
	id string

	// name is the display name shown on the board
	name string

	// orderIDs is the ordered stop/pick sequence
	orderIDs []string

	// note is optional free text attached to the run
	note string

	// guard ensures the entity was properly initialized
	guard guard.ConstructorGuard
}

// NewDeliveryRun creates a new empty run. Used when a dispatcher creates a
// run on the board; the id comes from kernel.NewRunID.
func NewDeliveryRun(id string, name string) (*DeliveryRun, error) {
	return RestoreDeliveryRun(id, name, nil, "")
}

// RestoreDeliveryRun reconstructs a run from server-provided data, including
// its member sequence and note.
//
// Parameters:
//   - id: Run identifier (must be non-empty)
//   - name: Display name (must be non-empty)
//   - orderIDs: Ordered member order ids (copied; may be nil)
//   - note: Optional free-text note
//
// Returns the restored run, or an aggregated validation error.
func RestoreDeliveryRun(id string, name string, orderIDs []string, note string) (*DeliveryRun, error) {
	r := &DeliveryRun{
		orderIDs: slices.Clone(orderIDs),
		note:     note,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(r.setID(id), r.setName(name)); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the run was properly constructed.
func (r *DeliveryRun) Validate() error {
	if r == nil {
		return ErrRunIsNotConstructed
	}
	return r.guard.Validate(ErrRunIsNotConstructed)
}

// ID returns the run identifier.
func (r *DeliveryRun) ID() string {
	return r.id
}

// Name returns the display name.
func (r *DeliveryRun) Name() string {
	return r.name
}

// Note returns the free-text note.
func (r *DeliveryRun) Note() string {
	return r.note
}

// SetNote replaces the free-text note.
func (r *DeliveryRun) SetNote(note string) {
	r.note = note
}

// OrderIDs returns a copy of the ordered member sequence.
func (r *DeliveryRun) OrderIDs() []string {
	return slices.Clone(r.orderIDs)
}

// Size returns the number of member orders.
func (r *DeliveryRun) Size() int {
	return len(r.orderIDs)
}

// IsEmpty reports whether the run has no member orders.
func (r *DeliveryRun) IsEmpty() bool {
	return len(r.orderIDs) == 0
}

// ContainsOrder reports whether the order is a member of the run.
func (r *DeliveryRun) ContainsOrder(orderID string) bool {
	return slices.Contains(r.orderIDs, orderID)
}

// IndexOfOrder returns the position of the order in the sequence, or -1.
func (r *DeliveryRun) IndexOfOrder(orderID string) int {
	return slices.Index(r.orderIDs, orderID)
}

// InsertOrder inserts an order id at the given position, clamped to the
// valid range. Inserting an id that is already a member is rejected; the
// caller must remove it first.
func (r *DeliveryRun) InsertOrder(orderID string, index int) error {
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderID")
	}
	if r.ContainsOrder(orderID) {
		return errs.NewValueIsInvalidError("orderID is already a member of the run")
	}

	index = clamp(index, 0, len(r.orderIDs))
	r.orderIDs = slices.Insert(r.orderIDs, index, orderID)
	return nil
}

// AppendOrders appends order ids to the end of the sequence, skipping any
// that are already members. Used when a dissolved sibling merges in.
func (r *DeliveryRun) AppendOrders(orderIDs []string) {
	for _, id := range orderIDs {
		if !r.ContainsOrder(id) {
			r.orderIDs = append(r.orderIDs, id)
		}
	}
}

// RemoveOrder removes an order id from the sequence.
// Reports whether the order was a member.
func (r *DeliveryRun) RemoveOrder(orderID string) bool {
	index := r.IndexOfOrder(orderID)
	if index < 0 {
		return false
	}
	r.orderIDs = slices.Delete(r.orderIDs, index, index+1)
	return true
}

// Reorder moves the member at position from to position to.
// Out-of-bounds or equal indices leave the sequence unchanged and report false.
func (r *DeliveryRun) Reorder(from, to int) bool {
	if from == to || from < 0 || to < 0 || from >= len(r.orderIDs) || to >= len(r.orderIDs) {
		return false
	}

	id := r.orderIDs[from]
	r.orderIDs = slices.Delete(r.orderIDs, from, from+1)
	r.orderIDs = slices.Insert(r.orderIDs, to, id)
	return true
}

// Matches reports whether the server-visible fields of two runs are equal:
// name, note text, and the exact member sequence. The reconciliation engine
// uses this to keep the existing object reference when an incoming snapshot
// carries no actual change.
func (r *DeliveryRun) Matches(other *DeliveryRun) bool {
	return other != nil &&
		r.id == other.id &&
		r.name == other.name &&
		r.note == other.note &&
		slices.Equal(r.orderIDs, other.orderIDs)
}

// Clone returns an independent copy of the run, including its sequence.
func (r *DeliveryRun) Clone() *DeliveryRun {
	clone := *r
	clone.orderIDs = slices.Clone(r.orderIDs)
	return &clone
}

// setID validates and sets the identifier.
func (r *DeliveryRun) setID(id string) error {
	if id == "" {
		return errs.NewValueIsRequiredError("id")
	}
	r.id = id
	return nil
}

// setName validates and sets the display name.
func (r *DeliveryRun) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

// clamp bounds v to the inclusive range [lo, hi].
func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
