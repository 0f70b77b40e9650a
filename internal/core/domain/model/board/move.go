package board

import (
	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/run"
)

// MoveOrder commits an order into a run, removing it from any previous run
// or loose-cell membership first.
//
// index is the requested insertion position; a negative index means "append
// at the end". When forcePosition is false and the target run already holds
// at least one order of the same customer, the order is inserted adjacent to
// the nearest same-customer order instead of at the literal drop index, so
// a customer's orders stay contiguous in the stop sequence. forcePosition
// bypasses the grouping and honors the index exactly, clamped to bounds.
//
// The order's date is updated to the target cell's date.
func (b *Board) MoveOrder(orderID string, targetRunID string, index int, forcePosition bool) Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.moveOrder(orderID, targetRunID, index, forcePosition)
}

// CommitOrderToRun is the semantic alias of MoveOrder for the
// loose-to-committed transition, always using grouped insertion.
func (b *Board) CommitOrderToRun(orderID string, runID string, index int) Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.moveOrder(orderID, runID, index, false)
}

// MoveOrderLoose places an order into a cell's loose set instead of a run,
// removing any prior run or loose membership first. Re-placing an order into
// the cell it is already loose in is a no-op success.
func (b *Board) MoveOrderLoose(orderID string, target kernel.CellKey) Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.moveOrderLoose(orderID, target)
}

// MoveRun relocates an entire run, and implicitly all its member orders, to
// a new cell. index is the requested position among the target cell's runs;
// negative means append. Every member order's date is updated to match.
func (b *Board) MoveRun(runID string, target kernel.CellKey, index int) Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.moveRun(runID, target, index)
}

func (b *Board) moveOrder(orderID string, targetRunID string, index int, forcePosition bool) Result {
	// Order-side checks come before the run lookup, so an unknown order is
	// reported NOT_FOUND even when the run is unknown too.
	o, rejection := b.validateOrderMobility(orderID)
	if rejection != RejectionNone {
		return rejected(rejection)
	}

	targetKey, ok := b.runToCell[targetRunID]
	if !ok {
		return rejected(RejectionInvalidTarget)
	}
	if lockRejection := b.checkDateLock(o.Date(), targetKey.Date()); lockRejection != RejectionNone {
		return rejected(lockRejection)
	}

	touched := b.detachOrder(orderID)

	// Re-read after detach: removing the order from this same run clones it.
	target := b.runs[targetRunID].Clone()
	customer := o.CustomerCode()

	insertAt := index
	if insertAt < 0 || insertAt > target.Size() {
		insertAt = target.Size()
	}
	if !forcePosition {
		if grouped := groupedInsertIndex(b, target, customer, insertAt); grouped >= 0 {
			insertAt = grouped
		}
	}

	if err := target.InsertOrder(orderID, insertAt); err != nil {
		return rejected(RejectionInvalidTarget)
	}
	b.runs[targetRunID] = target
	b.orderToRun[orderID] = targetRunID

	b.rescheduleOrder(orderID, targetKey.Date())

	touched.Orders = append(touched.Orders, orderID)
	touched.Runs = append(touched.Runs, targetRunID)
	b.dirty.mark(touched)
	return accepted(touched)
}

func (b *Board) moveOrderLoose(orderID string, target kernel.CellKey) Result {
	if _, rejection := b.validateOrderPlacement(orderID, target); rejection != RejectionNone {
		return rejected(rejection)
	}

	// Idempotent re-place: already loose in the target cell.
	if current, ok := b.looseOrderToCell[orderID]; ok && current.IsEqual(target) {
		return accepted(Touched{})
	}

	touched := b.detachOrder(orderID)

	cell := b.ensureCell(target).clone()
	cell.appendLooseOrder(orderID)
	b.cells[target] = cell
	b.looseOrderToCell[orderID] = target

	b.rescheduleOrder(orderID, target.Date())

	touched.Orders = append(touched.Orders, orderID)
	b.dirty.mark(touched)
	return accepted(touched)
}

func (b *Board) moveRun(runID string, target kernel.CellKey, index int) Result {
	r, rejection := b.validateRunMove(runID, target)
	if rejection != RejectionNone {
		return rejected(rejection)
	}

	sourceKey := b.runToCell[runID]
	source := b.cells[sourceKey].clone()
	source.removeRun(runID)
	b.cells[sourceKey] = source

	// Source and target may be the same slot; re-read so the insert sees the
	// clone with the run already removed.
	targetCell := b.ensureCell(target).clone()
	targetCell.insertRun(runID, index)
	b.cells[target] = targetCell
	b.runToCell[runID] = target
	b.dropCellIfEmpty(sourceKey)

	var touched Touched
	for _, orderID := range r.OrderIDs() {
		b.rescheduleOrder(orderID, target.Date())
		touched.Orders = append(touched.Orders, orderID)
	}
	touched.Runs = append(touched.Runs, runID)
	b.dirty.mark(touched)
	return accepted(touched)
}

// groupedInsertIndex finds where to insert an order so it lands adjacent to
// the same-customer order nearest the requested index. Returns -1 when the
// run holds no order of that customer, leaving the requested index in force.
func groupedInsertIndex(b *Board, target *run.DeliveryRun, customer string, requested int) int {
	if customer == "" {
		return -1
	}

	nearest := -1
	nearestDistance := 0
	for position, memberID := range target.OrderIDs() {
		member, ok := b.orders[memberID]
		if !ok || member.CustomerCode() != customer {
			continue
		}
		distance := requested - position
		if distance < 0 {
			distance = -distance
		}
		if nearest < 0 || distance < nearestDistance {
			nearest = position
			nearestDistance = distance
		}
	}

	if nearest < 0 {
		return -1
	}
	if requested > nearest {
		return nearest + 1
	}
	return nearest
}
