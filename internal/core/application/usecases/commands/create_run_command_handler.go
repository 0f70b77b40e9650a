package commands

import (
	"context"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/domain/model/run"
	"dispatchboard/internal/core/ports"
)

// CreateRunCommandHandler creates a run on the board, optionally committing
// a seed order into it, and persists the new run through the gateway.
type CreateRunCommandHandler struct {
	board   *board.Board
	gateway ports.BoardGateway
}

// NewCreateRunCommandHandler creates a handler for run creation.
func NewCreateRunCommandHandler(b *board.Board, gateway ports.BoardGateway) CreateRunCommandHandler {
	return CreateRunCommandHandler{
		board:   b,
		gateway: gateway,
	}
}

// Handle validates the command and creates the run. With a seed order the
// creation and the commit are one atomic board transition; the gateway
// sees a single SaveRun carrying the member.
func (h *CreateRunCommandHandler) Handle(ctx context.Context, cmd CreateRunCommand) (board.Result, error) {
	if err := cmd.Validate(); err != nil {
		return board.Result{}, err
	}

	var created *run.DeliveryRun
	var result board.Result
	if cmd.SeedOrderID() != "" {
		created, result = h.board.CreateRunWithOrder(cmd.Cell(), cmd.SeedOrderID(), cmd.Name())
	} else {
		created, result = h.board.CreateRun(cmd.Cell(), cmd.Name())
	}
	if !result.Success() {
		return result, nil
	}

	err := persistTouched(ctx, h.board, h.gateway, result.Touched(), func(ctx context.Context) error {
		return h.gateway.SaveRun(ctx, created, cmd.Cell())
	})
	return result, err
}
