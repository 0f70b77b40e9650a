package commands

import (
	"errors"

	"dispatchboard/internal/pkg/guard"
)

var (
	ErrRefreshBoardCommandIsNotConstructed = errors.New(
		"RefreshBoardCommand must be created via NewRefreshBoardCommand constructor",
	)
	ErrRefreshModeIsInvalid = errors.New("refresh mode is invalid")
)

// RefreshMode selects how a fetched snapshot is applied to the board.
type RefreshMode int

const (
	// RefreshModeFull replaces all state and clears dirty marks. Used at
	// startup and after a failed persistence call.
	RefreshModeFull RefreshMode = iota

	// RefreshModeMerge reconciles the snapshot with local state, preserving
	// dirty entities. Used by the periodic poll.
	RefreshModeMerge
)

// RefreshBoardCommand represents a request to pull the server's snapshot
// and apply it to the board.
type RefreshBoardCommand struct { //nolint:recvcheck //using for validation
	mode RefreshMode

	guard guard.ConstructorGuard
}

// NewRefreshBoardCommand creates a refresh command for the given mode.
func NewRefreshBoardCommand(mode RefreshMode) (RefreshBoardCommand, error) {
	if mode != RefreshModeFull && mode != RefreshModeMerge {
		return RefreshBoardCommand{}, ErrRefreshModeIsInvalid
	}

	return RefreshBoardCommand{
		mode:  mode,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RefreshBoardCommand) Validate() error {
	return c.guard.Validate(ErrRefreshBoardCommandIsNotConstructed)
}

// Mode returns how the snapshot should be applied.
func (c RefreshBoardCommand) Mode() RefreshMode {
	return c.mode
}
