package commands

import (
	"context"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/ports"
)

// MoveOrderCommandHandler applies an order move to the board and persists
// the resulting placement through the gateway.
//
// Example:
//
//	handler := NewMoveOrderCommandHandler(boardStore, gateway)
//	cmd, _ := NewMoveOrderLooseCommand("o1", cell)
//
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("placement not saved: %w", err)
//	}
type MoveOrderCommandHandler struct {
	board   *board.Board
	gateway ports.BoardGateway
}

// NewMoveOrderCommandHandler creates a handler for order moves.
func NewMoveOrderCommandHandler(b *board.Board, gateway ports.BoardGateway) MoveOrderCommandHandler {
	return MoveOrderCommandHandler{
		board:   b,
		gateway: gateway,
	}
}

// Handle validates the command, applies the move, and on success persists
// the new placement. A rejected move returns without touching the gateway.
// A failed gateway call rolls the board back via a full refetch.
func (h *MoveOrderCommandHandler) Handle(ctx context.Context, cmd MoveOrderCommand) (board.Result, error) {
	if err := cmd.Validate(); err != nil {
		return board.Result{}, err
	}

	switch cmd.Target() {
	case MoveOrderTargetRun:
		return h.handleRunTarget(ctx, cmd)
	case MoveOrderTargetLoose:
		return h.handleLooseTarget(ctx, cmd)
	}
	return board.Result{}, ErrMoveOrderCommandIsNotConstructed
}

func (h *MoveOrderCommandHandler) handleRunTarget(ctx context.Context, cmd MoveOrderCommand) (board.Result, error) {
	result := h.board.MoveOrder(cmd.OrderID(), cmd.RunID(), cmd.Index(), cmd.ForcePosition())
	if !result.Success() {
		return result, nil
	}

	cell, _ := h.board.RunCell(cmd.RunID())
	index := 0
	if r, ok := h.board.Run(cmd.RunID()); ok {
		index = r.IndexOfOrder(cmd.OrderID())
	}

	err := persistTouched(ctx, h.board, h.gateway, result.Touched(), func(ctx context.Context) error {
		return h.gateway.SaveOrderPlacement(ctx, cmd.OrderID(), cmd.RunID(), cell, index)
	})
	return result, err
}

func (h *MoveOrderCommandHandler) handleLooseTarget(ctx context.Context, cmd MoveOrderCommand) (board.Result, error) {
	result := h.board.MoveOrderLoose(cmd.OrderID(), cmd.Cell())
	if !result.Success() {
		return result, nil
	}

	err := persistTouched(ctx, h.board, h.gateway, result.Touched(), func(ctx context.Context) error {
		return h.gateway.SaveOrderPlacement(ctx, cmd.OrderID(), "", cmd.Cell(), -1)
	})
	return result, err
}
