package board

import (
	"slices"

	"dispatchboard/internal/core/domain/model/kernel"
)

// Cell is a scheduling slot on the board, identified by (resource, date).
// It holds the ordered run ids scheduled into the slot and the ordered
// "loose" order ids placed in the slot but not yet grouped into a run.
//
// Cells are created and mutated only by the Board, which clones a cell
// before changing it so unrelated consumers keep stable references.
type Cell struct {
	key           kernel.CellKey
	runIDs        []string
	looseOrderIDs []string
}

// newCell creates an empty cell for the given slot.
func newCell(key kernel.CellKey) *Cell {
	return &Cell{key: key}
}

// restoreCell rebuilds a cell from snapshot data, copying both sequences.
func restoreCell(key kernel.CellKey, runIDs, looseOrderIDs []string) *Cell {
	return &Cell{
		key:           key,
		runIDs:        slices.Clone(runIDs),
		looseOrderIDs: slices.Clone(looseOrderIDs),
	}
}

// Key returns the slot identity.
func (c *Cell) Key() kernel.CellKey {
	return c.key
}

// RunIDs returns a copy of the ordered run ids in the slot.
func (c *Cell) RunIDs() []string {
	return slices.Clone(c.runIDs)
}

// LooseOrderIDs returns a copy of the ordered loose order ids in the slot.
func (c *Cell) LooseOrderIDs() []string {
	return slices.Clone(c.looseOrderIDs)
}

// IsEmpty reports whether the cell holds no runs and no loose orders.
func (c *Cell) IsEmpty() bool {
	return len(c.runIDs) == 0 && len(c.looseOrderIDs) == 0
}

// containsRun reports whether the run is scheduled in this cell.
func (c *Cell) containsRun(runID string) bool {
	return slices.Contains(c.runIDs, runID)
}

// containsLooseOrder reports whether the order sits loose in this cell.
func (c *Cell) containsLooseOrder(orderID string) bool {
	return slices.Contains(c.looseOrderIDs, orderID)
}

// insertRun inserts a run id at the given position, clamped to valid bounds.
// Duplicates are ignored.
func (c *Cell) insertRun(runID string, index int) {
	if c.containsRun(runID) {
		return
	}
	if index < 0 || index > len(c.runIDs) {
		index = len(c.runIDs)
	}
	c.runIDs = slices.Insert(c.runIDs, index, runID)
}

// removeRun removes a run id, reporting whether it was present.
func (c *Cell) removeRun(runID string) bool {
	index := slices.Index(c.runIDs, runID)
	if index < 0 {
		return false
	}
	c.runIDs = slices.Delete(c.runIDs, index, index+1)
	return true
}

// appendLooseOrder appends an order id to the loose set. Idempotent: an id
// already present is not duplicated.
func (c *Cell) appendLooseOrder(orderID string) {
	if !c.containsLooseOrder(orderID) {
		c.looseOrderIDs = append(c.looseOrderIDs, orderID)
	}
}

// removeLooseOrder removes an order id from the loose set, reporting whether
// it was present.
func (c *Cell) removeLooseOrder(orderID string) bool {
	index := slices.Index(c.looseOrderIDs, orderID)
	if index < 0 {
		return false
	}
	c.looseOrderIDs = slices.Delete(c.looseOrderIDs, index, index+1)
	return true
}

// reorderRuns moves the run at position from to position to.
// Out-of-bounds or equal indices leave the sequence unchanged and report false.
func (c *Cell) reorderRuns(from, to int) bool {
	if from == to || from < 0 || to < 0 || from >= len(c.runIDs) || to >= len(c.runIDs) {
		return false
	}
	id := c.runIDs[from]
	c.runIDs = slices.Delete(c.runIDs, from, from+1)
	c.runIDs = slices.Insert(c.runIDs, to, id)
	return true
}

// matches reports whether the cell holds exactly the given sequences.
// The reconciliation engine uses this to keep the existing object reference
// when an incoming snapshot carries no actual change.
func (c *Cell) matches(runIDs, looseOrderIDs []string) bool {
	return slices.Equal(c.runIDs, runIDs) && slices.Equal(c.looseOrderIDs, looseOrderIDs)
}

// clone returns an independent copy of the cell.
func (c *Cell) clone() *Cell {
	return restoreCell(c.key, c.runIDs, c.looseOrderIDs)
}
