package commands

import (
	"errors"

	"dispatchboard/internal/pkg/guard"
)

var ErrDissolveRunCommandIsNotConstructed = errors.New(
	"DissolveRunCommand must be created via NewDissolveRunCommand constructor",
)

// DissolveRunCommand represents a request to remove a run. A run with
// members is dissolved (its orders are redistributed) while an empty run
// is simply deleted. Both end in a server-side delete.
type DissolveRunCommand struct { //nolint:recvcheck //using for validation
	runID string

	guard guard.ConstructorGuard
}

// NewDissolveRunCommand creates a command removing a run.
func NewDissolveRunCommand(runID string) (DissolveRunCommand, error) {
	command := DissolveRunCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setRunID(runID); err != nil {
		return DissolveRunCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DissolveRunCommand) Validate() error {
	return c.guard.Validate(ErrDissolveRunCommandIsNotConstructed)
}

// RunID returns the run to remove.
func (c DissolveRunCommand) RunID() string {
	return c.runID
}

func (c *DissolveRunCommand) setRunID(runID string) error {
	if runID == "" {
		return ErrRunIDIsRequired
	}

	c.runID = runID
	return nil
}
