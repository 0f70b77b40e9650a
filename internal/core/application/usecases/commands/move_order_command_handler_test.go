package commands_test

import (
	"context"
	"errors"
	"testing"

	"dispatchboard/internal/core/application/usecases/commands"
	"dispatchboard/internal/core/domain/model/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMoveOrderCommandHandler_Handle_RunTarget(t *testing.T) {
	ctx := context.Background()

	t.Run("should persist the placement and clear dirty marks", func(t *testing.T) {
		b := seededBoard(t)
		gateway := new(MockBoardGateway)
		gateway.On("SaveOrderPlacement", ctx, "o4", "r2",
			mustKey(t, "TR-01", "2025-01-06"), 1).Return(nil).Once()

		h := commands.NewMoveOrderCommandHandler(b, gateway)
		cmd, _ := commands.NewMoveOrderToRunCommand("o4", "r2", -1, false)

		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.True(t, result.Success())
		assert.False(t, b.IsOrderDirty("o4"))
		assert.False(t, b.IsRunDirty("r2"))
		assert.Zero(t, b.PendingCalls())
		gateway.AssertExpectations(t)
	})

	t.Run("should not call the gateway on rejection", func(t *testing.T) {
		b := seededBoard(t)
		gateway := new(MockBoardGateway)

		h := commands.NewMoveOrderCommandHandler(b, gateway)
		cmd, _ := commands.NewMoveOrderToRunCommand("o99", "r2", -1, false)

		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, result.Success())
		assert.Equal(t, board.RejectionNotFound, result.Reason())
		gateway.AssertNotCalled(t, "SaveOrderPlacement",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should roll back via refetch when the save fails", func(t *testing.T) {
		b := seededBoard(t)
		gateway := new(MockBoardGateway)
		gateway.On("SaveOrderPlacement", ctx, "o4", "r2",
			mustKey(t, "TR-01", "2025-01-06"), 1).Return(errors.New("backend down")).Once()
		gateway.On("FetchSnapshot", ctx).Return(baseSnapshot(t), nil).Once()

		h := commands.NewMoveOrderCommandHandler(b, gateway)
		cmd, _ := commands.NewMoveOrderToRunCommand("o4", "r2", -1, false)

		result, err := h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.True(t, result.Success(), "the local transition itself was accepted")

		// The refetch restored the pre-move arrangement.
		r2, _ := b.Run("r2")
		assert.Equal(t, []string{"o3"}, r2.OrderIDs())
		_, loose := b.LooseOrderCell("o4")
		assert.True(t, loose)
		assert.False(t, b.IsOrderDirty("o4"))
		gateway.AssertExpectations(t)
	})

	t.Run("should keep dirty marks when the rollback refetch fails too", func(t *testing.T) {
		b := seededBoard(t)
		gateway := new(MockBoardGateway)
		gateway.On("SaveOrderPlacement", ctx, "o4", "r2",
			mustKey(t, "TR-01", "2025-01-06"), 1).Return(errors.New("backend down")).Once()
		gateway.On("FetchSnapshot", ctx).Return(board.Snapshot{}, errors.New("still down")).Once()

		h := commands.NewMoveOrderCommandHandler(b, gateway)
		cmd, _ := commands.NewMoveOrderToRunCommand("o4", "r2", -1, false)

		_, err := h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.True(t, b.IsOrderDirty("o4"), "unconfirmed edit survives for the next poll")
	})

	t.Run("should fail for an unconstructed command", func(t *testing.T) {
		h := commands.NewMoveOrderCommandHandler(seededBoard(t), new(MockBoardGateway))

		_, err := h.Handle(ctx, commands.MoveOrderCommand{})

		require.Error(t, err)
	})
}

func TestMoveOrderCommandHandler_Handle_LooseTarget(t *testing.T) {
	ctx := context.Background()

	t.Run("should persist a loose placement with no run", func(t *testing.T) {
		b := seededBoard(t)
		cell := mustKey(t, "TR-02", "2025-01-06")
		gateway := new(MockBoardGateway)
		gateway.On("SaveOrderPlacement", ctx, "o1", "", cell, -1).Return(nil).Once()

		h := commands.NewMoveOrderCommandHandler(b, gateway)
		cmd, _ := commands.NewMoveOrderLooseCommand("o1", cell)

		result, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		require.True(t, result.Success())
		_, committed := b.OrderRun("o1")
		assert.False(t, committed)
		gateway.AssertExpectations(t)
	})
}
