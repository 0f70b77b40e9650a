package commands

import (
	"context"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/ports"
)

// DissolveRunCommandHandler removes a run from the board, dissolving it
// when it has members, deleting it when empty, and persists the removal
// through the gateway.
type DissolveRunCommandHandler struct {
	board   *board.Board
	gateway ports.BoardGateway
}

// NewDissolveRunCommandHandler creates a handler for run removal.
func NewDissolveRunCommandHandler(b *board.Board, gateway ports.BoardGateway) DissolveRunCommandHandler {
	return DissolveRunCommandHandler{
		board:   b,
		gateway: gateway,
	}
}

// Handle validates the command and removes the run. Empty runs take the
// delete path so no member redistribution is reported.
func (h *DissolveRunCommandHandler) Handle(ctx context.Context, cmd DissolveRunCommand) (board.Result, error) {
	if err := cmd.Validate(); err != nil {
		return board.Result{}, err
	}

	var result board.Result
	if r, ok := h.board.Run(cmd.RunID()); ok && r.IsEmpty() {
		result = h.board.DeleteRun(cmd.RunID())
	} else {
		result = h.board.DissolveRun(cmd.RunID())
	}
	if !result.Success() {
		return result, nil
	}

	err := persistTouched(ctx, h.board, h.gateway, result.Touched(), func(ctx context.Context) error {
		return h.gateway.DeleteRun(ctx, cmd.RunID())
	})
	return result, err
}
