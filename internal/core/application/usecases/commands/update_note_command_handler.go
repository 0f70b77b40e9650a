package commands

import (
	"context"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/ports"
)

// UpdateNoteCommandHandler applies a note edit and persists the updated
// note through the gateway.
type UpdateNoteCommandHandler struct {
	board   *board.Board
	gateway ports.BoardGateway
}

// NewUpdateNoteCommandHandler creates a handler for note edits.
func NewUpdateNoteCommandHandler(b *board.Board, gateway ports.BoardGateway) UpdateNoteCommandHandler {
	return UpdateNoteCommandHandler{
		board:   b,
		gateway: gateway,
	}
}

// Handle validates the command, applies the edit, and persists the note.
func (h *UpdateNoteCommandHandler) Handle(ctx context.Context, cmd UpdateNoteCommand) (board.Result, error) {
	if err := cmd.Validate(); err != nil {
		return board.Result{}, err
	}

	var result board.Result
	switch cmd.Edit() {
	case NoteEditText:
		result = h.board.UpdateNoteText(cmd.NoteID(), cmd.Text())
	case NoteEditTogglePin:
		result = h.board.ToggleNotePin(cmd.NoteID())
	case NoteEditColor:
		result = h.board.UpdateNoteColor(cmd.NoteID(), cmd.Color())
	}
	if !result.Success() {
		return result, nil
	}

	updated, _ := h.board.Note(cmd.NoteID())
	err := persistTouched(ctx, h.board, h.gateway, result.Touched(), func(ctx context.Context) error {
		return h.gateway.SaveNote(ctx, updated)
	})
	return result, err
}
