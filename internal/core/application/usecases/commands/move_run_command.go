package commands

import (
	"errors"

	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/pkg/guard"
)

var ErrMoveRunCommandIsNotConstructed = errors.New(
	"MoveRunCommand must be created via NewMoveRunCommand constructor",
)

// MoveRunCommand represents a request to relocate a whole run, and with it
// every member order, to another cell.
type MoveRunCommand struct { //nolint:recvcheck //using for validation
	runID string
	cell  kernel.CellKey
	index int

	guard guard.ConstructorGuard
}

// NewMoveRunCommand creates a command relocating a run. index is the
// requested position among the target cell's runs; negative means append.
func NewMoveRunCommand(runID string, cell kernel.CellKey, index int) (MoveRunCommand, error) {
	command := MoveRunCommand{
		index: index,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRunID(runID),
		command.setCell(cell),
	); err != nil {
		return MoveRunCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MoveRunCommand) Validate() error {
	return c.guard.Validate(ErrMoveRunCommandIsNotConstructed)
}

// RunID returns the run to relocate.
func (c MoveRunCommand) RunID() string {
	return c.runID
}

// Cell returns the destination cell.
func (c MoveRunCommand) Cell() kernel.CellKey {
	return c.cell
}

// Index returns the requested position among the target cell's runs.
func (c MoveRunCommand) Index() int {
	return c.index
}

func (c *MoveRunCommand) setRunID(runID string) error {
	if runID == "" {
		return ErrRunIDIsRequired
	}

	c.runID = runID
	return nil
}

func (c *MoveRunCommand) setCell(cell kernel.CellKey) error {
	if err := cell.Validate(); err != nil {
		return err
	}

	c.cell = cell
	return nil
}
