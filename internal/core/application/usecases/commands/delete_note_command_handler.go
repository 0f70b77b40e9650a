package commands

import (
	"context"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/ports"
)

// DeleteNoteCommandHandler removes a note from the board and persists the
// removal through the gateway.
type DeleteNoteCommandHandler struct {
	board   *board.Board
	gateway ports.BoardGateway
}

// NewDeleteNoteCommandHandler creates a handler for note removal.
func NewDeleteNoteCommandHandler(b *board.Board, gateway ports.BoardGateway) DeleteNoteCommandHandler {
	return DeleteNoteCommandHandler{
		board:   b,
		gateway: gateway,
	}
}

// Handle validates the command, removes the note, and persists the delete.
func (h *DeleteNoteCommandHandler) Handle(ctx context.Context, cmd DeleteNoteCommand) (board.Result, error) {
	if err := cmd.Validate(); err != nil {
		return board.Result{}, err
	}

	result := h.board.DeleteNote(cmd.NoteID())
	if !result.Success() {
		return result, nil
	}

	err := persistTouched(ctx, h.board, h.gateway, result.Touched(), func(ctx context.Context) error {
		return h.gateway.DeleteNote(ctx, cmd.NoteID())
	})
	return result, err
}
