package commands

import (
	"context"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/ports"
)

// AddNoteCommandHandler adds a note to the board and persists it through
// the gateway.
type AddNoteCommandHandler struct {
	board   *board.Board
	gateway ports.BoardGateway
}

// NewAddNoteCommandHandler creates a handler for note creation.
func NewAddNoteCommandHandler(b *board.Board, gateway ports.BoardGateway) AddNoteCommandHandler {
	return AddNoteCommandHandler{
		board:   b,
		gateway: gateway,
	}
}

// Handle validates the command, adds the note, and persists it.
func (h *AddNoteCommandHandler) Handle(ctx context.Context, cmd AddNoteCommand) (board.Result, error) {
	if err := cmd.Validate(); err != nil {
		return board.Result{}, err
	}

	created, result := h.board.AddNote(cmd.Text(), cmd.Color(), cmd.Pinned(), cmd.Target())
	if !result.Success() {
		return result, nil
	}

	err := persistTouched(ctx, h.board, h.gateway, result.Touched(), func(ctx context.Context) error {
		return h.gateway.SaveNote(ctx, created)
	})
	return result, err
}
