package commands

import (
	"errors"

	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/pkg/guard"
)

var ErrCreateRunCommandIsNotConstructed = errors.New(
	"CreateRunCommand must be created via NewCreateRunCommand constructor",
)

// CreateRunCommand represents a request to create a run in a cell,
// optionally seeded with one order: the gesture of dropping an order onto
// empty space. An empty name selects the default run naming.
type CreateRunCommand struct { //nolint:recvcheck //using for validation
	cell        kernel.CellKey
	name        string
	seedOrderID string

	guard guard.ConstructorGuard
}

// NewCreateRunCommand creates a command for a new run. seedOrderID may be
// empty for a run created without a first member.
func NewCreateRunCommand(cell kernel.CellKey, name string, seedOrderID string) (CreateRunCommand, error) {
	command := CreateRunCommand{
		name:        name,
		seedOrderID: seedOrderID,
		guard:       guard.NewConstructorGuard(),
	}

	if err := command.setCell(cell); err != nil {
		return CreateRunCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRunCommand) Validate() error {
	return c.guard.Validate(ErrCreateRunCommandIsNotConstructed)
}

// Cell returns the cell the run is created in.
func (c CreateRunCommand) Cell() kernel.CellKey {
	return c.cell
}

// Name returns the requested run name; empty selects the default.
func (c CreateRunCommand) Name() string {
	return c.name
}

// SeedOrderID returns the order to commit into the new run, if any.
func (c CreateRunCommand) SeedOrderID() string {
	return c.seedOrderID
}

func (c *CreateRunCommand) setCell(cell kernel.CellKey) error {
	if err := cell.Validate(); err != nil {
		return err
	}

	c.cell = cell
	return nil
}
