package commands

import (
	"errors"

	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/pkg/guard"
)

var (
	ErrMoveOrderCommandIsNotConstructed = errors.New(
		"MoveOrderCommand must be created via NewMoveOrderToRunCommand or NewMoveOrderLooseCommand constructor",
	)
	ErrOrderIDIsRequired = errors.New("orderID is required")
	ErrRunIDIsRequired   = errors.New("runID is required")
)

// MoveOrderTarget discriminates the two destinations a drag gesture can
// drop an order on.
type MoveOrderTarget int

const (
	// MoveOrderTargetRun commits the order into a run's stop sequence.
	MoveOrderTargetRun MoveOrderTarget = iota

	// MoveOrderTargetLoose places the order loose in a cell.
	MoveOrderTargetLoose
)

// MoveOrderCommand represents a request to move one order to a new
// placement: into a run at a position, or loose into a cell. One command
// covers both because the UI produces both from the same gesture.
//
// Example:
//
//	cmd, err := NewMoveOrderToRunCommand("o1", "r2", 0, false)
//	if err != nil {
//	    return fmt.Errorf("invalid move: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err // transport failure, board rolled back
//	}
//	if !result.Success() {
//	    fmt.Printf("rejected: %s", result.Reason())
//	}
type MoveOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       string
	target        MoveOrderTarget
	runID         string
	cell          kernel.CellKey
	index         int
	forcePosition bool

	guard guard.ConstructorGuard
}

// NewMoveOrderToRunCommand creates a command committing an order into a
// run. index is the requested position; negative means append. When
// forcePosition is false the insertion keeps same-customer orders adjacent.
func NewMoveOrderToRunCommand(orderID, runID string, index int, forcePosition bool) (MoveOrderCommand, error) {
	command := MoveOrderCommand{
		target:        MoveOrderTargetRun,
		index:         index,
		forcePosition: forcePosition,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setRunID(runID),
	); err != nil {
		return MoveOrderCommand{}, err
	}

	return command, nil
}

// NewMoveOrderLooseCommand creates a command placing an order loose in a
// cell.
func NewMoveOrderLooseCommand(orderID string, cell kernel.CellKey) (MoveOrderCommand, error) {
	command := MoveOrderCommand{
		target: MoveOrderTargetLoose,
		index:  -1,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setCell(cell),
	); err != nil {
		return MoveOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through a constructor.
func (c MoveOrderCommand) Validate() error {
	return c.guard.Validate(ErrMoveOrderCommandIsNotConstructed)
}

// OrderID returns the order to move.
func (c MoveOrderCommand) OrderID() string {
	return c.orderID
}

// Target returns the destination kind.
func (c MoveOrderCommand) Target() MoveOrderTarget {
	return c.target
}

// RunID returns the destination run for a run-targeted move.
func (c MoveOrderCommand) RunID() string {
	return c.runID
}

// Cell returns the destination cell for a loose move.
func (c MoveOrderCommand) Cell() kernel.CellKey {
	return c.cell
}

// Index returns the requested insertion position.
func (c MoveOrderCommand) Index() int {
	return c.index
}

// ForcePosition reports whether the index bypasses customer grouping.
func (c MoveOrderCommand) ForcePosition() bool {
	return c.forcePosition
}

func (c *MoveOrderCommand) setOrderID(orderID string) error {
	if orderID == "" {
		return ErrOrderIDIsRequired
	}

	c.orderID = orderID
	return nil
}

func (c *MoveOrderCommand) setRunID(runID string) error {
	if runID == "" {
		return ErrRunIDIsRequired
	}

	c.runID = runID
	return nil
}

func (c *MoveOrderCommand) setCell(cell kernel.CellKey) error {
	if err := cell.Validate(); err != nil {
		return err
	}

	c.cell = cell
	return nil
}
