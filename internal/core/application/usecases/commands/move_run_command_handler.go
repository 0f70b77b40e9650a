package commands

import (
	"context"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/ports"
)

// MoveRunCommandHandler relocates a run on the board and persists the run's
// new cell through the gateway.
type MoveRunCommandHandler struct {
	board   *board.Board
	gateway ports.BoardGateway
}

// NewMoveRunCommandHandler creates a handler for run relocations.
func NewMoveRunCommandHandler(b *board.Board, gateway ports.BoardGateway) MoveRunCommandHandler {
	return MoveRunCommandHandler{
		board:   b,
		gateway: gateway,
	}
}

// Handle validates the command, applies the relocation, and on success
// persists the run. Rejections return without touching the gateway.
func (h *MoveRunCommandHandler) Handle(ctx context.Context, cmd MoveRunCommand) (board.Result, error) {
	if err := cmd.Validate(); err != nil {
		return board.Result{}, err
	}

	result := h.board.MoveRun(cmd.RunID(), cmd.Cell(), cmd.Index())
	if !result.Success() {
		return result, nil
	}

	relocated, _ := h.board.Run(cmd.RunID())
	err := persistTouched(ctx, h.board, h.gateway, result.Touched(), func(ctx context.Context) error {
		return h.gateway.SaveRun(ctx, relocated, cmd.Cell())
	})
	return result, err
}
