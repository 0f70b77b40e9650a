package note

import (
	"errors"

	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/pkg/errs"
	"dispatchboard/internal/pkg/guard"
)

// ErrNoteIsNotConstructed is returned when a Note instance was not created
// through the RestoreNote constructor.
var ErrNoteIsNotConstructed = errors.New("Note must be created via RestoreNote constructor")

// TargetKind enumerates what a note can be attached to.
type TargetKind int

const (
	// TargetNone marks an unattached note.
	TargetNone TargetKind = iota

	// TargetCell attaches the note to a scheduling slot (resource + date).
	TargetCell

	// TargetOrder attaches the note to an order.
	TargetOrder

	// TargetRun attaches the note to a delivery run.
	TargetRun
)

// Target is the attachment of a note: at most one of a cell, an order, or a
// run. The zero value is the unattached target. Target is an immutable
// value object and comparable.
type Target struct {
	kind    TargetKind
	cell    kernel.CellKey
	orderID string
	runID   string
}

// NoTarget returns the unattached target.
func NoTarget() Target {
	return Target{kind: TargetNone}
}

// CellTarget attaches to a scheduling slot.
func CellTarget(cell kernel.CellKey) (Target, error) {
	if err := cell.Validate(); err != nil {
		return Target{}, err
	}
	return Target{kind: TargetCell, cell: cell}, nil
}

// OrderTarget attaches to an order.
func OrderTarget(orderID string) (Target, error) {
	if orderID == "" {
		return Target{}, errs.NewValueIsRequiredError("orderID")
	}
	return Target{kind: TargetOrder, orderID: orderID}, nil
}

// RunTarget attaches to a delivery run.
func RunTarget(runID string) (Target, error) {
	if runID == "" {
		return Target{}, errs.NewValueIsRequiredError("runID")
	}
	return Target{kind: TargetRun, runID: runID}, nil
}

// Kind returns what the target is attached to.
func (t Target) Kind() TargetKind {
	return t.kind
}

// Cell returns the attached cell key; ok is false unless Kind is TargetCell.
func (t Target) Cell() (kernel.CellKey, bool) {
	return t.cell, t.kind == TargetCell
}

// OrderID returns the attached order id; ok is false unless Kind is TargetOrder.
func (t Target) OrderID() (string, bool) {
	return t.orderID, t.kind == TargetOrder
}

// RunID returns the attached run id; ok is false unless Kind is TargetRun.
func (t Target) RunID() (string, bool) {
	return t.runID, t.kind == TargetRun
}

// Note represents a dispatcher's sticky note on the board.
type Note struct {
	// id is the note identifier (server-assigned or locally allocated)
	id string

	// text is the note body
	text string

	// color is the display color tag
	color string

	// pinned keeps the note visible at the top of its target
	pinned bool

	// target is the attachment, at most one of cell/order/run
	target Target

	// guard ensures the entity was properly initialized
	guard guard.ConstructorGuard
}

// RestoreNote creates a Note from its fields. Used both for locally created
// notes (with an id from kernel.NewNoteID) and for server-sourced ones.
func RestoreNote(id string, text string, color string, pinned bool, target Target) (*Note, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if text == "" {
		return nil, errs.NewValueIsRequiredError("text")
	}

	return &Note{
		id:     id,
		text:   text,
		color:  color,
		pinned: pinned,
		target: target,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the note was properly constructed.
func (n *Note) Validate() error {
	if n == nil {
		return ErrNoteIsNotConstructed
	}
	return n.guard.Validate(ErrNoteIsNotConstructed)
}

// ID returns the note identifier.
func (n *Note) ID() string {
	return n.id
}

// Text returns the note body.
func (n *Note) Text() string {
	return n.text
}

// Color returns the display color tag.
func (n *Note) Color() string {
	return n.color
}

// Pinned reports whether the note is pinned.
func (n *Note) Pinned() bool {
	return n.pinned
}

// Target returns the attachment.
func (n *Note) Target() Target {
	return n.target
}

// SetText replaces the note body. Empty text is rejected.
func (n *Note) SetText(text string) error {
	if text == "" {
		return errs.NewValueIsRequiredError("text")
	}
	n.text = text
	return nil
}

// SetColor replaces the display color tag.
func (n *Note) SetColor(color string) {
	n.color = color
}

// TogglePin flips the pin flag.
func (n *Note) TogglePin() {
	n.pinned = !n.pinned
}

// Matches reports whether the server-visible fields of two notes are equal.
func (n *Note) Matches(other *Note) bool {
	return other != nil &&
		n.id == other.id &&
		n.text == other.text &&
		n.color == other.color &&
		n.pinned == other.pinned &&
		n.target == other.target
}

// Clone returns an independent copy of the note.
func (n *Note) Clone() *Note {
	clone := *n
	return &clone
}
