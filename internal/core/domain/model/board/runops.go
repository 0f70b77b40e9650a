package board

import (
	"fmt"

	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/run"
)

// CreateRun allocates a new empty run in a cell. When name is empty the run
// gets the default name "Run {n+1}" where n is the cell's current run count.
// Returns the created run on success.
func (b *Board) CreateRun(key kernel.CellKey, name string) (*run.DeliveryRun, Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.createRun(key, name)
}

// CreateRunWithOrder creates a run in a cell and commits an order into it as
// a single transition, used when a drag gesture drops an order onto empty
// space that should spawn a new run. No intermediate state is observable:
// when the order fails validation, no run is created.
func (b *Board) CreateRunWithOrder(key kernel.CellKey, orderID string, name string) (*run.DeliveryRun, Result) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, rejection := b.validateOrderPlacement(orderID, key); rejection != RejectionNone {
		return nil, rejected(rejection)
	}

	created, result := b.createRun(key, name)
	if !result.Success() {
		return nil, result
	}

	moved := b.moveOrder(orderID, created.ID(), -1, true)
	if !moved.Success() {
		// Cannot happen after the pre-validation above, but a half-applied
		// transition must never leak: undo the run creation and report.
		cell := b.cells[key].clone()
		cell.removeRun(created.ID())
		b.cells[key] = cell
		delete(b.runs, created.ID())
		delete(b.runToCell, created.ID())
		b.dirty.clear(result.Touched())
		return nil, rejected(moved.Reason())
	}

	touched := result.Touched()
	touched.merge(moved.Touched())
	return b.runs[created.ID()], accepted(touched)
}

// DissolveRun removes a run and redistributes its member orders: into the
// sibling run immediately before it in the cell's sequence (or the next
// sibling when dissolving the first run), or into the cell's loose set when
// it is the cell's only run. Members in a terminal status block the
// dissolve, since their placement may not change.
func (b *Board) DissolveRun(runID string) Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dissolveRun(runID)
}

// DeleteRun hard-deletes a run only if it currently has zero orders;
// otherwise it fails without mutating state.
func (b *Board) DeleteRun(runID string) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.runs[runID]
	if !ok {
		return rejected(RejectionNotFound)
	}
	if !r.IsEmpty() {
		return rejected(RejectionInvalidTarget)
	}

	if key, okCell := b.runToCell[runID]; okCell {
		cell := b.cells[key].clone()
		cell.removeRun(runID)
		b.cells[key] = cell
		delete(b.runToCell, runID)
		b.dropCellIfEmpty(key)
	}
	delete(b.runs, runID)

	// The id stays dirty as a tombstone so a poll cannot resurrect the run
	// before the delete is acknowledged.
	touched := Touched{Runs: []string{runID}}
	b.dirty.mark(touched)
	return accepted(touched)
}

// ReorderInRun moves the member at position from to position to within a
// run's stop sequence. Out-of-bounds or equal indices are a no-op success.
func (b *Board) ReorderInRun(runID string, from, to int) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	r, ok := b.runs[runID]
	if !ok {
		return rejected(RejectionNotFound)
	}

	clone := r.Clone()
	if !clone.Reorder(from, to) {
		return accepted(Touched{})
	}
	b.runs[runID] = clone

	touched := Touched{Runs: []string{runID}}
	b.dirty.mark(touched)
	return accepted(touched)
}

// ReorderRunsInCell moves the run at position from to position to within a
// cell's run sequence. Out-of-bounds or equal indices are a no-op success.
func (b *Board) ReorderRunsInCell(key kernel.CellKey, from, to int) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.cells[key]
	if !ok {
		return rejected(RejectionNotFound)
	}

	clone := c.clone()
	if !clone.reorderRuns(from, to) {
		return accepted(Touched{})
	}
	b.cells[key] = clone

	// Marking the moved run dirty keeps the whole cell arrangement safe from
	// the next merge until the reorder is acknowledged.
	touched := Touched{Runs: []string{clone.runIDs[to]}}
	b.dirty.mark(touched)
	return accepted(touched)
}

func (b *Board) createRun(key kernel.CellKey, name string) (*run.DeliveryRun, Result) {
	if !b.isValidTarget(key) {
		return nil, rejected(RejectionInvalidTarget)
	}

	cell := b.ensureCell(key)
	if name == "" {
		name = fmt.Sprintf("Run %d", len(cell.runIDs)+1)
	}

	created, err := run.NewDeliveryRun(kernel.NewRunID(), name)
	if err != nil {
		return nil, rejected(RejectionInvalidTarget)
	}

	clone := cell.clone()
	clone.insertRun(created.ID(), -1)
	b.cells[key] = clone
	b.runs[created.ID()] = created
	b.runToCell[created.ID()] = key

	touched := Touched{Runs: []string{created.ID()}}
	b.dirty.mark(touched)
	return created, accepted(touched)
}

func (b *Board) dissolveRun(runID string) Result {
	r, ok := b.runs[runID]
	if !ok {
		return rejected(RejectionNotFound)
	}
	key, ok := b.runToCell[runID]
	if !ok {
		return rejected(RejectionNotFound)
	}

	// Members whose placement is frozen may not be redistributed.
	for _, orderID := range r.OrderIDs() {
		if o, okOrder := b.orders[orderID]; okOrder && o.ReadOnly() {
			return rejected(RejectionReadOnly)
		}
	}

	cell := b.cells[key].clone()
	position := 0
	for i, id := range cell.runIDs {
		if id == runID {
			position = i
			break
		}
	}

	var touched Touched
	members := r.OrderIDs()

	if len(cell.runIDs) > 1 {
		siblingIndex := position - 1
		if siblingIndex < 0 {
			siblingIndex = position + 1
		}
		siblingID := cell.runIDs[siblingIndex]
		sibling := b.runs[siblingID].Clone()
		sibling.AppendOrders(members)
		b.runs[siblingID] = sibling
		for _, orderID := range members {
			b.orderToRun[orderID] = siblingID
		}
		touched.Runs = append(touched.Runs, siblingID)
	} else {
		for _, orderID := range members {
			cell.appendLooseOrder(orderID)
			b.looseOrderToCell[orderID] = key
			delete(b.orderToRun, orderID)
		}
	}

	cell.removeRun(runID)
	b.cells[key] = cell
	delete(b.runs, runID)
	delete(b.runToCell, runID)
	b.dropCellIfEmpty(key)

	touched.Orders = append(touched.Orders, members...)
	// Tombstone: the dissolved run must not be resurrected by a poll before
	// the delete is acknowledged.
	touched.Runs = append(touched.Runs, runID)
	b.dirty.mark(touched)
	return accepted(touched)
}
