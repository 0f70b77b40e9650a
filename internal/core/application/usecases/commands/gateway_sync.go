package commands

import (
	"context"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/ports"
)

// persistTouched issues one gateway call bracketed by the pending-call
// counter, so snapshot merges stay suspended while the call is in flight.
// On acknowledgment exactly the dirty marks the operation reported are
// cleared. On failure the board is re-hydrated from a fresh snapshot,
// the system's only rollback, and the call error is returned; if the
// refetch fails too, the dirty marks stay in place for the next poll.
func persistTouched(
	ctx context.Context,
	b *board.Board,
	gateway ports.BoardGateway,
	touched board.Touched,
	call func(context.Context) error,
) error {
	b.BeginPendingCall()
	err := call(ctx)
	b.EndPendingCall()

	if err != nil {
		if snapshot, fetchErr := gateway.FetchSnapshot(ctx); fetchErr == nil {
			b.Hydrate(snapshot)
		}
		return err
	}

	b.ClearDirty(touched)
	return nil
}
