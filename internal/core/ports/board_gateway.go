package ports

import (
	"context"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/note"
	"dispatchboard/internal/core/domain/model/run"
)

// BoardGateway defines the outbound contract to the scheduling backend.
// Handlers observe only success or failure of each call; request and
// response bodies are the REST adapter's concern. A nil error is the
// server's acknowledgment that the persisted state now matches what was
// sent.
type BoardGateway interface {
	// FetchSnapshot retrieves the server's full view of the board.
	// Used at startup, by the poll job, and as the rollback source after a
	// failed persistence call.
	FetchSnapshot(ctx context.Context) (board.Snapshot, error)

	// SaveOrderPlacement persists one order's placement: committed into the
	// run when runID is non-empty, loose in the cell otherwise. index is the
	// position within the run's stop sequence.
	SaveOrderPlacement(ctx context.Context, orderID string, runID string, cell kernel.CellKey, index int) error

	// SaveRun persists a run's identity, stop sequence, and its cell.
	SaveRun(ctx context.Context, aggregate *run.DeliveryRun, cell kernel.CellKey) error

	// DeleteRun removes a run server-side. The server reassigns or releases
	// the members the same way the local operation did.
	DeleteRun(ctx context.Context, runID string) error

	// SaveNote persists a note and its attachment.
	SaveNote(ctx context.Context, aggregate *note.Note) error

	// DeleteNote removes a note server-side.
	DeleteNote(ctx context.Context, noteID string) error
}
