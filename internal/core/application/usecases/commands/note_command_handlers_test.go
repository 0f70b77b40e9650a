package commands_test

import (
	"context"
	"testing"

	"dispatchboard/internal/core/application/usecases/commands"
	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/domain/model/note"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAddNoteCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		target, err := note.OrderTarget("o1")
		require.NoError(t, err)

		cmd, err := commands.NewAddNoteCommand("gate code 4711", "yellow", true, target)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "gate code 4711", cmd.Text())
		assert.Equal(t, "yellow", cmd.Color())
		assert.True(t, cmd.Pinned())
	})

	t.Run("should fail with empty text", func(t *testing.T) {
		_, err := commands.NewAddNoteCommand("", "", false, note.NoTarget())

		require.ErrorIs(t, err, commands.ErrTextIsRequired)
	})
}

func TestAddNoteCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should persist the created note", func(t *testing.T) {
		b := seededBoard(t)
		gateway := new(MockBoardGateway)
		gateway.On("SaveNote", ctx, mock.MatchedBy(func(n *note.Note) bool {
			return n.Text() == "call ahead"
		})).Return(nil).Once()

		h := commands.NewAddNoteCommandHandler(b, gateway)
		cmd, _ := commands.NewAddNoteCommand("call ahead", "", false, note.NoTarget())

		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.True(t, result.Success())
		require.Len(t, result.Touched().Notes, 1)
		assert.False(t, b.IsNoteDirty(result.Touched().Notes[0]))
		gateway.AssertExpectations(t)
	})

	t.Run("should not call the gateway on rejection", func(t *testing.T) {
		b := seededBoard(t)
		target, err := note.OrderTarget("o99")
		require.NoError(t, err)
		gateway := new(MockBoardGateway)

		h := commands.NewAddNoteCommandHandler(b, gateway)
		cmd, _ := commands.NewAddNoteCommand("text", "", false, target)

		result, handleErr := h.Handle(ctx, cmd)

		require.NoError(t, handleErr)
		assert.Equal(t, board.RejectionNotFound, result.Reason())
		gateway.AssertNotCalled(t, "SaveNote", mock.Anything, mock.Anything)
	})
}

func TestUpdateNoteCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	addNote := func(t *testing.T, b *board.Board) string {
		t.Helper()
		created, result := b.AddNote("draft", "", false, note.NoTarget())
		require.True(t, result.Success())
		b.ClearDirty(result.Touched())
		return created.ID()
	}

	t.Run("should persist a text edit", func(t *testing.T) {
		b := seededBoard(t)
		noteID := addNote(t, b)
		gateway := new(MockBoardGateway)
		gateway.On("SaveNote", ctx, mock.MatchedBy(func(n *note.Note) bool {
			return n.ID() == noteID && n.Text() == "final"
		})).Return(nil).Once()

		h := commands.NewUpdateNoteCommandHandler(b, gateway)
		cmd, _ := commands.NewUpdateNoteTextCommand(noteID, "final")

		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.True(t, result.Success())
		assert.False(t, b.IsNoteDirty(noteID))
		gateway.AssertExpectations(t)
	})

	t.Run("should persist a pin toggle", func(t *testing.T) {
		b := seededBoard(t)
		noteID := addNote(t, b)
		gateway := new(MockBoardGateway)
		gateway.On("SaveNote", ctx, mock.MatchedBy(func(n *note.Note) bool {
			return n.ID() == noteID && n.Pinned()
		})).Return(nil).Once()

		h := commands.NewUpdateNoteCommandHandler(b, gateway)
		cmd, _ := commands.NewToggleNotePinCommand(noteID)

		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.True(t, result.Success())
		gateway.AssertExpectations(t)
	})

	t.Run("should persist a color edit", func(t *testing.T) {
		b := seededBoard(t)
		noteID := addNote(t, b)
		gateway := new(MockBoardGateway)
		gateway.On("SaveNote", ctx, mock.MatchedBy(func(n *note.Note) bool {
			return n.ID() == noteID && n.Color() == "red"
		})).Return(nil).Once()

		h := commands.NewUpdateNoteCommandHandler(b, gateway)
		cmd, _ := commands.NewUpdateNoteColorCommand(noteID, "red")

		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.True(t, result.Success())
		gateway.AssertExpectations(t)
	})

	t.Run("should not call the gateway for an unknown note", func(t *testing.T) {
		b := seededBoard(t)
		gateway := new(MockBoardGateway)

		h := commands.NewUpdateNoteCommandHandler(b, gateway)
		cmd, _ := commands.NewUpdateNoteTextCommand("n99", "text")

		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, board.RejectionNotFound, result.Reason())
		gateway.AssertNotCalled(t, "SaveNote", mock.Anything, mock.Anything)
	})
}

func TestDeleteNoteCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should persist the delete and clear the tombstone", func(t *testing.T) {
		b := seededBoard(t)
		created, addResult := b.AddNote("obsolete", "", false, note.NoTarget())
		require.True(t, addResult.Success())
		b.ClearDirty(addResult.Touched())

		gateway := new(MockBoardGateway)
		gateway.On("DeleteNote", ctx, created.ID()).Return(nil).Once()

		h := commands.NewDeleteNoteCommandHandler(b, gateway)
		cmd, _ := commands.NewDeleteNoteCommand(created.ID())

		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.True(t, result.Success())
		_, exists := b.Note(created.ID())
		assert.False(t, exists)
		assert.False(t, b.IsNoteDirty(created.ID()))
		gateway.AssertExpectations(t)
	})
}
