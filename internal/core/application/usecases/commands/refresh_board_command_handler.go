package commands

import (
	"context"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/ports"
)

// RefreshBoardCommandHandler fetches the server snapshot and applies it to
// the board in the requested mode.
type RefreshBoardCommandHandler struct {
	board   *board.Board
	gateway ports.BoardGateway
}

// NewRefreshBoardCommandHandler creates a handler for board refreshes.
func NewRefreshBoardCommandHandler(b *board.Board, gateway ports.BoardGateway) RefreshBoardCommandHandler {
	return RefreshBoardCommandHandler{
		board:   b,
		gateway: gateway,
	}
}

// Handle fetches a snapshot and applies it. Reports whether the snapshot
// was applied: a merge is skipped, not failed, while a persistence call is
// in flight.
func (h *RefreshBoardCommandHandler) Handle(ctx context.Context, cmd RefreshBoardCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	snapshot, err := h.gateway.FetchSnapshot(ctx)
	if err != nil {
		return false, err
	}

	if cmd.Mode() == RefreshModeFull {
		h.board.Hydrate(snapshot)
		return true, nil
	}
	return h.board.MergeHydrate(snapshot), nil
}
