package board

import (
	"slices"
	"sort"
	"sync"

	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/note"
	"dispatchboard/internal/core/domain/model/order"
	"dispatchboard/internal/core/domain/model/run"
)

// Board is the scheduling board aggregate. It is constructed once per
// dispatcher session and passed by reference to all callers; there is no
// package-level singleton.
//
// The board serializes access internally: every operation is one atomic
// state transition. Entities handed out by query methods are never mutated
// in place afterwards (mutations clone before changing), so callers may
// hold on to them and compare by reference to detect change.
type Board struct {
	mu sync.RWMutex

	// entity tables
	orders map[string]*order.Order
	runs   map[string]*run.DeliveryRun
	cells  map[kernel.CellKey]*Cell
	notes  map[string]*note.Note

	// reverse indices, kept consistent by every mutating operation
	orderToRun       map[string]string
	runToCell        map[string]kernel.CellKey
	looseOrderToCell map[string]kernel.CellKey
	noteToCell       map[string]kernel.CellKey

	// resources from the last snapshot
	trucks     []string
	truckNames map[string]string

	// per-date capacity locks
	lockedDates map[kernel.Date]bool

	// unconfirmed local edits and in-flight outbound calls
	dirty dirtyTracker
}

// New creates an empty board. State arrives through Hydrate.
func New() *Board {
	return &Board{
		orders:           make(map[string]*order.Order),
		runs:             make(map[string]*run.DeliveryRun),
		cells:            make(map[kernel.CellKey]*Cell),
		notes:            make(map[string]*note.Note),
		orderToRun:       make(map[string]string),
		runToCell:        make(map[string]kernel.CellKey),
		looseOrderToCell: make(map[string]kernel.CellKey),
		noteToCell:       make(map[string]kernel.CellKey),
		truckNames:       make(map[string]string),
		lockedDates:      make(map[kernel.Date]bool),
		dirty:            newDirtyTracker(),
	}
}

// Order returns the order entity for the id.
func (b *Board) Order(id string) (*order.Order, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	o, ok := b.orders[id]
	return o, ok
}

// Run returns the run entity for the id.
func (b *Board) Run(id string) (*run.DeliveryRun, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	r, ok := b.runs[id]
	return r, ok
}

// Cell returns the cell for the slot. Cells exist only while they hold
// content or appeared in the last snapshot.
func (b *Board) Cell(key kernel.CellKey) (*Cell, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.cells[key]
	return c, ok
}

// Note returns the note entity for the id.
func (b *Board) Note(id string) (*note.Note, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n, ok := b.notes[id]
	return n, ok
}

// OrderRun returns the id of the run the order is committed to.
func (b *Board) OrderRun(orderID string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	id, ok := b.orderToRun[orderID]
	return id, ok
}

// RunCell returns the slot the run is scheduled in.
func (b *Board) RunCell(runID string) (kernel.CellKey, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	key, ok := b.runToCell[runID]
	return key, ok
}

// LooseOrderCell returns the slot the order sits loose in.
func (b *Board) LooseOrderCell(orderID string) (kernel.CellKey, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	key, ok := b.looseOrderToCell[orderID]
	return key, ok
}

// NoteCell returns the slot a cell-attached note points at.
func (b *Board) NoteCell(noteID string) (kernel.CellKey, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	key, ok := b.noteToCell[noteID]
	return key, ok
}

// CellKeys returns the keys of all current cells, sorted by wire form for
// deterministic iteration.
func (b *Board) CellKeys() []kernel.CellKey {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]kernel.CellKey, 0, len(b.cells))
	for key := range b.cells {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// NoteIDs returns the ids of all current notes, sorted.
func (b *Board) NoteIDs() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]string, 0, len(b.notes))
	for id := range b.notes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Trucks returns the resource ids from the last snapshot, in server order.
func (b *Board) Trucks() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.trucks)
}

// TruckName returns the display name for a truck id.
func (b *Board) TruckName(id string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	name, ok := b.truckNames[id]
	return name, ok
}

// IsDateLocked reports whether the date is capacity-locked.
func (b *Board) IsDateLocked(date kernel.Date) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lockedDates[date]
}

// LockedDates returns all capacity-locked dates, sorted.
func (b *Board) LockedDates() []kernel.Date {
	b.mu.RLock()
	defer b.mu.RUnlock()
	dates := make([]kernel.Date, 0, len(b.lockedDates))
	for date, locked := range b.lockedDates {
		if locked {
			dates = append(dates, date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].String() < dates[j].String() })
	return dates
}

// ToggleDateLock flips the capacity lock for a date and returns the new
// state. While locked, nothing may move into the date from another date;
// intra-date rearrangement and moves leaving the date stay legal.
func (b *Board) ToggleDateLock(date kernel.Date) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.lockedDates[date] {
		delete(b.lockedDates, date)
		return false
	}
	b.lockedDates[date] = true
	return true
}

// ensureCell returns the cell for the slot, creating an empty one if the
// slot has never held content. Callers mutate only the returned clone.
func (b *Board) ensureCell(key kernel.CellKey) *Cell {
	if c, ok := b.cells[key]; ok {
		return c
	}
	c := newCell(key)
	b.cells[key] = c
	return c
}

// dropCellIfEmpty removes a cell entry that no longer holds content, so the
// cell table does not accumulate empty slots as the dispatcher drags orders
// around the calendar.
func (b *Board) dropCellIfEmpty(key kernel.CellKey) {
	if c, ok := b.cells[key]; ok && c.IsEmpty() {
		delete(b.cells, key)
	}
}

// detachOrder removes the order from its current placement (run membership
// or loose-cell membership), cloning whatever it touches, and returns the
// run ids whose member lists changed. The caller owns dirty marking.
func (b *Board) detachOrder(orderID string) Touched {
	var touched Touched

	if runID, ok := b.orderToRun[orderID]; ok {
		clone := b.runs[runID].Clone()
		clone.RemoveOrder(orderID)
		b.runs[runID] = clone
		delete(b.orderToRun, orderID)
		touched.Runs = append(touched.Runs, runID)
		return touched
	}

	if key, ok := b.looseOrderToCell[orderID]; ok {
		clone := b.cells[key].clone()
		clone.removeLooseOrder(orderID)
		b.cells[key] = clone
		delete(b.looseOrderToCell, orderID)
		b.dropCellIfEmpty(key)
	}

	return touched
}

// rescheduleOrder updates the order's denormalized date to the target slot's
// date, cloning the entity when the date actually changes.
func (b *Board) rescheduleOrder(orderID string, date kernel.Date) {
	o := b.orders[orderID]
	if o == nil || o.Date().IsEqual(date) {
		return
	}
	clone := o.Clone()
	_ = clone.ScheduleOn(date)
	b.orders[orderID] = clone
}

// rebuildIndices derives all four reverse indices from the entity tables.
// Used by the reconciliation engine after merging tables.
func (b *Board) rebuildIndices() {
	b.orderToRun = make(map[string]string, len(b.orderToRun))
	b.runToCell = make(map[string]kernel.CellKey, len(b.runToCell))
	b.looseOrderToCell = make(map[string]kernel.CellKey, len(b.looseOrderToCell))
	b.noteToCell = make(map[string]kernel.CellKey, len(b.noteToCell))

	for key, c := range b.cells {
		for _, runID := range c.runIDs {
			b.runToCell[runID] = key
		}
		for _, orderID := range c.looseOrderIDs {
			b.looseOrderToCell[orderID] = key
		}
	}

	for id, r := range b.runs {
		for _, orderID := range r.OrderIDs() {
			b.orderToRun[orderID] = id
		}
	}

	for id, n := range b.notes {
		if key, ok := n.Target().Cell(); ok {
			b.noteToCell[id] = key
		}
	}
}

// normalizeMembership restores the placement invariants after tables were
// merged from mixed local and server data: every referenced entity exists,
// an order belongs to at most one run, and an order committed to a run does
// not also sit loose. Dirty runs win conflicting claims so an unconfirmed
// local edit is never the side that gets trimmed.
func (b *Board) normalizeMembership() {
	// Deterministic run order: dirty runs first, then by id.
	runIDs := make([]string, 0, len(b.runs))
	for id := range b.runs {
		runIDs = append(runIDs, id)
	}
	sort.Slice(runIDs, func(i, j int) bool {
		di, dj := b.dirty.isRunDirty(runIDs[i]), b.dirty.isRunDirty(runIDs[j])
		if di != dj {
			return di
		}
		return runIDs[i] < runIDs[j]
	})

	claimed := make(map[string]string, len(b.orders))
	for _, runID := range runIDs {
		r := b.runs[runID]
		var clone *run.DeliveryRun
		for _, orderID := range r.OrderIDs() {
			_, exists := b.orders[orderID]
			_, alreadyClaimed := claimed[orderID]
			if exists && !alreadyClaimed {
				claimed[orderID] = runID
				continue
			}
			if clone == nil {
				clone = r.Clone()
			}
			clone.RemoveOrder(orderID)
		}
		if clone != nil {
			b.runs[runID] = clone
		}
	}

	// Loose membership: drop ids that are claimed by a run, missing from the
	// order table, or already loose in an earlier cell. A dirty loose order's
	// placement is owned by the cell its local index points at, so a stale
	// snapshot cell listing the same id is the side that gets trimmed.
	looseOwner := make(map[string]kernel.CellKey)
	for orderID := range b.dirty.orders {
		key, ok := b.looseOrderToCell[orderID]
		if !ok {
			continue
		}
		if c, okCell := b.cells[key]; okCell && c.containsLooseOrder(orderID) {
			looseOwner[orderID] = key
		}
	}

	keys := make([]kernel.CellKey, 0, len(b.cells))
	for key := range b.cells {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	seenLoose := make(map[string]bool)
	for _, key := range keys {
		c := b.cells[key]
		var clone *Cell
		for _, orderID := range c.LooseOrderIDs() {
			_, exists := b.orders[orderID]
			_, inRun := claimed[orderID]
			owner, owned := looseOwner[orderID]
			if exists && !inRun && !seenLoose[orderID] && (!owned || owner.IsEqual(key)) {
				seenLoose[orderID] = true
				continue
			}
			if clone == nil {
				clone = c.clone()
			}
			clone.removeLooseOrder(orderID)
		}
		// Drop references to runs that no longer exist.
		for _, runID := range c.RunIDs() {
			if _, ok := b.runs[runID]; ok {
				continue
			}
			if clone == nil {
				clone = c.clone()
			}
			clone.removeRun(runID)
		}
		if clone != nil {
			b.cells[key] = clone
		}
	}
}
