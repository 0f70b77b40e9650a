package board

import (
	"slices"

	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/note"
	"dispatchboard/internal/core/domain/model/order"
	"dispatchboard/internal/core/domain/model/run"
)

// CellSnapshot is the incoming arrangement of one scheduling slot.
type CellSnapshot struct {
	RunIDs        []string
	LooseOrderIDs []string
}

// Snapshot is the server's full view of the board, consumed by Hydrate and
// MergeHydrate. The transport adapter builds it from the wire payload.
type Snapshot struct {
	Orders     []*order.Order
	Runs       []*run.DeliveryRun
	Cells      map[kernel.CellKey]CellSnapshot
	Trucks     []string
	TruckNames map[string]string
	Notes      []*note.Note
}

// Hydrate unconditionally replaces all board state with the snapshot and
// clears every dirty mark. Used at initial load and as the rollback path
// after a failed persistence call. The pending-call counter is left alone:
// a refetch triggered by one failed call must not unblock merging for
// another call still in flight.
func (b *Board) Hydrate(snapshot Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.orders = make(map[string]*order.Order, len(snapshot.Orders))
	for _, o := range snapshot.Orders {
		b.orders[o.ID()] = o
	}

	b.runs = make(map[string]*run.DeliveryRun, len(snapshot.Runs))
	for _, r := range snapshot.Runs {
		b.runs[r.ID()] = r
	}

	b.cells = make(map[kernel.CellKey]*Cell, len(snapshot.Cells))
	for key, cs := range snapshot.Cells {
		b.cells[key] = restoreCell(key, cs.RunIDs, cs.LooseOrderIDs)
	}

	b.notes = make(map[string]*note.Note, len(snapshot.Notes))
	for _, n := range snapshot.Notes {
		b.notes[n.ID()] = n
	}

	b.trucks = slices.Clone(snapshot.Trucks)
	b.truckNames = make(map[string]string, len(snapshot.TruckNames))
	for id, name := range snapshot.TruckNames {
		b.truckNames[id] = name
	}

	b.dirty.reset()
	b.normalizeMembership()
	b.rebuildIndices()
}

// MergeHydrate incrementally reconciles a polled snapshot with local state.
// Reports whether the merge ran; it is skipped entirely while any outbound
// call is in flight.
//
// Per entity kind the policy is: a dirty entity keeps its local version
// unconditionally; a clean entity whose incoming copy carries no change
// keeps its existing object reference (preserving downstream memoization);
// a changed one is replaced by the server version; one missing from the
// snapshot is deleted unless dirty. A cell containing any dirty run or
// dirty loose order is preserved wholesale: its entire arrangement, not a
// piecewise merge. Reverse indices are rebuilt consistently at the end.
func (b *Board) MergeHydrate(snapshot Snapshot) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dirty.pendingCalls > 0 {
		return false
	}

	b.orders = mergeEntities(b.orders, snapshot.Orders,
		func(o *order.Order) string { return o.ID() },
		(*order.Order).Matches,
		b.dirty.isOrderDirty)

	b.runs = mergeEntities(b.runs, snapshot.Runs,
		func(r *run.DeliveryRun) string { return r.ID() },
		(*run.DeliveryRun).Matches,
		b.dirty.isRunDirty)

	b.notes = mergeEntities(b.notes, snapshot.Notes,
		func(n *note.Note) string { return n.ID() },
		(*note.Note).Matches,
		b.dirty.isNoteDirty)

	b.cells = b.mergeCells(snapshot.Cells)

	b.trucks = slices.Clone(snapshot.Trucks)
	b.truckNames = make(map[string]string, len(snapshot.TruckNames))
	for id, name := range snapshot.TruckNames {
		b.truckNames[id] = name
	}

	b.normalizeMembership()
	b.rebuildIndices()
	return true
}

// mergeEntities applies the dirty-preserve / unchanged-reference /
// replace-on-diff / delete-if-missing policy to one entity table.
//
// A dirty id missing from the local table is a delete tombstone: the
// incoming version is dropped so a poll cannot resurrect an entity whose
// deletion is still awaiting acknowledgment.
func mergeEntities[E any](
	local map[string]*E,
	incoming []*E,
	id func(*E) string,
	matches func(*E, *E) bool,
	isDirty func(string) bool,
) map[string]*E {
	next := make(map[string]*E, len(incoming))
	seen := make(map[string]bool, len(incoming))

	for _, in := range incoming {
		entityID := id(in)
		seen[entityID] = true

		current, exists := local[entityID]
		switch {
		case isDirty(entityID):
			if exists {
				next[entityID] = current
			}
		case exists && matches(current, in):
			next[entityID] = current
		default:
			next[entityID] = in
		}
	}

	for entityID, current := range local {
		if !seen[entityID] && isDirty(entityID) {
			next[entityID] = current
		}
	}

	return next
}

// mergeCells rebuilds the cell table from incoming data, except that a cell
// containing any dirty run or dirty loose order keeps its local arrangement
// untouched, and a locally dirty cell absent from the snapshot is preserved
// wholesale. Clean cells whose incoming arrangement is unchanged keep their
// object reference.
func (b *Board) mergeCells(incoming map[kernel.CellKey]CellSnapshot) map[kernel.CellKey]*Cell {
	next := make(map[kernel.CellKey]*Cell, len(incoming))

	for key, cs := range incoming {
		local, exists := b.cells[key]
		switch {
		case exists && b.cellHasDirtyMember(local):
			next[key] = local
		case exists && local.matches(cs.RunIDs, cs.LooseOrderIDs):
			next[key] = local
		default:
			next[key] = restoreCell(key, cs.RunIDs, cs.LooseOrderIDs)
		}
	}

	for key, local := range b.cells {
		if _, ok := incoming[key]; !ok && b.cellHasDirtyMember(local) {
			next[key] = local
		}
	}

	return next
}

// cellHasDirtyMember reports whether any run or loose order in the cell
// holds an unconfirmed local edit.
func (b *Board) cellHasDirtyMember(c *Cell) bool {
	for _, runID := range c.runIDs {
		if b.dirty.isRunDirty(runID) {
			return true
		}
	}
	for _, orderID := range c.looseOrderIDs {
		if b.dirty.isOrderDirty(orderID) {
			return true
		}
	}
	return false
}
