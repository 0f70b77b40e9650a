package board

import (
	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/order"
	"dispatchboard/internal/core/domain/model/run"
)

// validateOrderMobility runs the order-side checks, in the fixed order the
// UI expects the reasons in: existence, class, read-only status. It does not
// mutate anything.
func (b *Board) validateOrderMobility(orderID string) (*order.Order, Rejection) {
	o, ok := b.orders[orderID]
	if !ok {
		return nil, RejectionNotFound
	}
	if o.IsPurchase() {
		return nil, RejectionInboundZone
	}
	if o.ReadOnly() {
		return nil, RejectionReadOnly
	}
	return o, RejectionNone
}

// validateOrderPlacement runs the full placement checks for moving one order
// into the target slot: the order-side checks, then target validity, then
// the capacity lock.
func (b *Board) validateOrderPlacement(orderID string, target kernel.CellKey) (*order.Order, Rejection) {
	o, rejection := b.validateOrderMobility(orderID)
	if rejection != RejectionNone {
		return nil, rejection
	}
	if !b.isValidTarget(target) {
		return nil, RejectionInvalidTarget
	}
	if rejection := b.checkDateLock(o.Date(), target.Date()); rejection != RejectionNone {
		return nil, rejection
	}
	return o, RejectionNone
}

// validateRunMove runs the placement checks for relocating a whole run.
// Every member order must independently pass the class and read-only checks;
// a single disqualifying order blocks the entire run move.
func (b *Board) validateRunMove(runID string, target kernel.CellKey) (*run.DeliveryRun, Rejection) {
	r, ok := b.runs[runID]
	if !ok {
		return nil, RejectionNotFound
	}

	for _, orderID := range r.OrderIDs() {
		o, okOrder := b.orders[orderID]
		if !okOrder {
			return nil, RejectionNotFound
		}
		if o.IsPurchase() {
			return nil, RejectionInboundZone
		}
		if o.ReadOnly() {
			return nil, RejectionReadOnly
		}
	}

	if !b.isValidTarget(target) {
		return nil, RejectionInvalidTarget
	}

	currentKey, ok := b.runToCell[runID]
	if !ok {
		return nil, RejectionInvalidTarget
	}
	if rejection := b.checkDateLock(currentKey.Date(), target.Date()); rejection != RejectionNone {
		return nil, rejection
	}

	return r, RejectionNone
}

// isValidTarget reports whether the key resolves to a real slot: a known
// truck or one of the pseudo-resources, with a constructed date.
func (b *Board) isValidTarget(target kernel.CellKey) bool {
	if target.Validate() != nil {
		return false
	}
	resource := target.Resource()
	if resource == kernel.ResourceUnassigned || resource == kernel.ResourceInbound {
		return true
	}
	_, known := b.truckNames[resource]
	return known
}

// checkDateLock enforces the capacity lock: while a date is locked, nothing
// moves into a cell on that date from a cell on a different date. Moves that
// stay within the locked date, or leave it, remain legal.
func (b *Board) checkDateLock(current, target kernel.Date) Rejection {
	if b.lockedDates[target] && !current.IsEqual(target) {
		return RejectionCapacityLocked
	}
	return RejectionNone
}
