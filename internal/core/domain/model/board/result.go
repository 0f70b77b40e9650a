package board

// Rejection is the closed set of reasons a mutation operation can refuse to
// apply. The zero value means the operation was not rejected.
type Rejection int

const (
	// RejectionNone marks a successful operation.
	RejectionNone Rejection = iota

	// RejectionNotFound: the referenced order, run, note, or cell does not exist.
	RejectionNotFound

	// RejectionInboundZone: purchase-class orders are confined to the inbound
	// zone and cannot be moved or committed to a run.
	RejectionInboundZone

	// RejectionReadOnly: the order reached a terminal status and its
	// placement is frozen.
	RejectionReadOnly

	// RejectionInvalidTarget: the target does not resolve to a valid
	// (resource, date) pair, run, or deletable entity.
	RejectionInvalidTarget

	// RejectionCapacityLocked: the target date is locked and the entity is
	// currently on a different date.
	RejectionCapacityLocked
)

// String returns the wire representation surfaced to the UI layer.
func (r Rejection) String() string {
	switch r {
	case RejectionNone:
		return "NONE"
	case RejectionNotFound:
		return "NOT_FOUND"
	case RejectionInboundZone:
		return "INBOUND_ZONE"
	case RejectionReadOnly:
		return "READ_ONLY"
	case RejectionInvalidTarget:
		return "INVALID_TARGET"
	case RejectionCapacityLocked:
		return "CAPACITY_LOCKED"
	default:
		return "UNKNOWN"
	}
}

// Touched lists the entity ids a successful mutation marked dirty. The
// caller clears exactly these marks once the server acknowledges the
// corresponding persistence call.
type Touched struct {
	Orders []string
	Runs   []string
	Notes  []string
}

// merge folds another touched set into this one.
func (t *Touched) merge(other Touched) {
	t.Orders = append(t.Orders, other.Orders...)
	t.Runs = append(t.Runs, other.Runs...)
	t.Notes = append(t.Notes, other.Notes...)
}

// Result is the outcome of a mutation operation: either success, carrying
// the set of dirty marks the operation made, or a rejection from the closed
// reason set. Validation failures are values, not errors; the caller
// surfaces the reason to the dispatcher ("this date is locked", "cannot
// move a shipped order").
type Result struct {
	rejection Rejection
	touched   Touched
}

// accepted builds a successful result carrying the dirty marks made.
func accepted(touched Touched) Result {
	return Result{touched: touched}
}

// rejected builds a failed result with the given reason.
func rejected(rejection Rejection) Result {
	return Result{rejection: rejection}
}

// Success reports whether the operation applied.
func (r Result) Success() bool {
	return r.rejection == RejectionNone
}

// Reason returns the rejection reason, or RejectionNone on success.
func (r Result) Reason() Rejection {
	return r.rejection
}

// Touched returns the entity ids the operation marked dirty.
func (r Result) Touched() Touched {
	return r.touched
}
