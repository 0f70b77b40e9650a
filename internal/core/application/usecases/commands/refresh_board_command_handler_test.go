package commands_test

import (
	"context"
	"errors"
	"testing"

	"dispatchboard/internal/core/application/usecases/commands"
	"dispatchboard/internal/core/domain/model/board"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefreshBoardCommand(t *testing.T) {
	t.Run("should create commands for both modes", func(t *testing.T) {
		full, err := commands.NewRefreshBoardCommand(commands.RefreshModeFull)
		require.NoError(t, err)
		assert.Equal(t, commands.RefreshModeFull, full.Mode())

		merge, err := commands.NewRefreshBoardCommand(commands.RefreshModeMerge)
		require.NoError(t, err)
		assert.Equal(t, commands.RefreshModeMerge, merge.Mode())
	})

	t.Run("should fail with unknown mode", func(t *testing.T) {
		_, err := commands.NewRefreshBoardCommand(commands.RefreshMode(42))

		require.ErrorIs(t, err, commands.ErrRefreshModeIsInvalid)
	})
}

func TestRefreshBoardCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("should fully replace state in full mode", func(t *testing.T) {
		b := seededBoard(t)
		require.True(t, b.MoveOrder("o4", "r2", -1, false).Success())

		gateway := new(MockBoardGateway)
		gateway.On("FetchSnapshot", ctx).Return(baseSnapshot(t), nil).Once()

		h := commands.NewRefreshBoardCommandHandler(b, gateway)
		cmd, _ := commands.NewRefreshBoardCommand(commands.RefreshModeFull)

		applied, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, applied)
		assert.False(t, b.IsOrderDirty("o4"), "full refresh discards local edits")
		r2, _ := b.Run("r2")
		assert.Equal(t, []string{"o3"}, r2.OrderIDs())
		gateway.AssertExpectations(t)
	})

	t.Run("should merge preserving dirty edits in merge mode", func(t *testing.T) {
		b := seededBoard(t)
		require.True(t, b.MoveOrder("o4", "r2", -1, false).Success())

		gateway := new(MockBoardGateway)
		gateway.On("FetchSnapshot", ctx).Return(baseSnapshot(t), nil).Once()

		h := commands.NewRefreshBoardCommandHandler(b, gateway)
		cmd, _ := commands.NewRefreshBoardCommand(commands.RefreshModeMerge)

		applied, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, applied)
		r2, _ := b.Run("r2")
		assert.Equal(t, []string{"o3", "o4"}, r2.OrderIDs(), "dirty run kept its local sequence")
	})

	t.Run("should report a skipped merge while a call is in flight", func(t *testing.T) {
		b := seededBoard(t)
		b.BeginPendingCall()

		gateway := new(MockBoardGateway)
		gateway.On("FetchSnapshot", ctx).Return(baseSnapshot(t), nil).Once()

		h := commands.NewRefreshBoardCommandHandler(b, gateway)
		cmd, _ := commands.NewRefreshBoardCommand(commands.RefreshModeMerge)

		applied, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.False(t, applied)
	})

	t.Run("should surface fetch failures", func(t *testing.T) {
		b := seededBoard(t)
		gateway := new(MockBoardGateway)
		gateway.On("FetchSnapshot", ctx).Return(board.Snapshot{}, errors.New("backend down")).Once()

		h := commands.NewRefreshBoardCommandHandler(b, gateway)
		cmd, _ := commands.NewRefreshBoardCommand(commands.RefreshModeMerge)

		applied, err := h.Handle(ctx, cmd)

		require.Error(t, err)
		assert.False(t, applied)
	})
}
