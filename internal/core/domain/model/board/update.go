package board

import (
	"dispatchboard/internal/core/domain/model/note"
	"dispatchboard/internal/core/domain/model/order"
	"dispatchboard/internal/core/domain/model/run"
)

// Push appliers. Each applies one server-pushed entity event, reporting
// whether the event was applied. An event touching a dirty entity is
// suppressed (the local unconfirmed edit wins until the next full
// reconciliation) and all push events are suppressed while an outbound
// call is in flight, for the same reason MergeHydrate skips.

// ApplyOrderUpsert inserts or replaces one order. The order's placement
// (run membership, loose-cell membership) is left untouched: placement
// changes arrive as run or cell data, not as order events.
func (b *Board) ApplyOrderUpsert(o *order.Order) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dirty.pendingCalls > 0 || b.dirty.isOrderDirty(o.ID()) {
		return false
	}

	current, exists := b.orders[o.ID()]
	if exists && current.Matches(o) {
		return true
	}
	b.orders[o.ID()] = o
	return true
}

// ApplyOrderDelete removes one order and detaches it from any run or loose
// set it belongs to. The detach is a remote fact, not a local edit, so
// nothing is marked dirty.
func (b *Board) ApplyOrderDelete(orderID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dirty.pendingCalls > 0 || b.dirty.isOrderDirty(orderID) {
		return false
	}
	if _, ok := b.orders[orderID]; !ok {
		return true
	}

	b.detachOrder(orderID)
	delete(b.orders, orderID)
	return true
}

// ApplyRunUpsert inserts or replaces one run. Membership and indices are
// re-derived afterwards since the run's stop sequence may have changed.
func (b *Board) ApplyRunUpsert(r *run.DeliveryRun) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dirty.pendingCalls > 0 || b.dirty.isRunDirty(r.ID()) {
		return false
	}

	current, exists := b.runs[r.ID()]
	if exists && current.Matches(r) {
		return true
	}
	b.runs[r.ID()] = r
	b.normalizeMembership()
	b.rebuildIndices()
	return true
}

// ApplyRunDelete removes one run and drops it from its cell. Member orders
// become loose in that cell, mirroring the remote dissolve.
func (b *Board) ApplyRunDelete(runID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dirty.pendingCalls > 0 || b.dirty.isRunDirty(runID) {
		return false
	}
	r, ok := b.runs[runID]
	if !ok {
		return true
	}

	if key, okCell := b.runToCell[runID]; okCell {
		cell := b.cells[key].clone()
		cell.removeRun(runID)
		for _, orderID := range r.OrderIDs() {
			cell.appendLooseOrder(orderID)
		}
		b.cells[key] = cell
		b.dropCellIfEmpty(key)
	}
	delete(b.runs, runID)
	b.normalizeMembership()
	b.rebuildIndices()
	return true
}

// ApplyNoteUpsert inserts or replaces one note.
func (b *Board) ApplyNoteUpsert(n *note.Note) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dirty.pendingCalls > 0 || b.dirty.isNoteDirty(n.ID()) {
		return false
	}

	current, exists := b.notes[n.ID()]
	if exists && current.Matches(n) {
		return true
	}
	b.notes[n.ID()] = n
	if key, ok := n.Target().Cell(); ok {
		b.noteToCell[n.ID()] = key
	} else {
		delete(b.noteToCell, n.ID())
	}
	return true
}

// ApplyNoteDelete removes one note.
func (b *Board) ApplyNoteDelete(noteID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dirty.pendingCalls > 0 || b.dirty.isNoteDirty(noteID) {
		return false
	}

	delete(b.notes, noteID)
	delete(b.noteToCell, noteID)
	return true
}
