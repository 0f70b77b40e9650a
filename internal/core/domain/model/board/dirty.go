package board

// dirtyTracker records which entities hold local edits not yet confirmed by
// the server, plus a counter of in-flight outbound calls. While the counter
// is above zero the reconciliation engine skips merging entirely (the
// conservative "don't reconcile while the user might still be mid-gesture"
// rule) and push updates are dropped.
type dirtyTracker struct {
	orders       map[string]struct{}
	runs         map[string]struct{}
	notes        map[string]struct{}
	pendingCalls int
}

func newDirtyTracker() dirtyTracker {
	return dirtyTracker{
		orders: make(map[string]struct{}),
		runs:   make(map[string]struct{}),
		notes:  make(map[string]struct{}),
	}
}

func (d *dirtyTracker) mark(t Touched) {
	for _, id := range t.Orders {
		d.orders[id] = struct{}{}
	}
	for _, id := range t.Runs {
		d.runs[id] = struct{}{}
	}
	for _, id := range t.Notes {
		d.notes[id] = struct{}{}
	}
}

func (d *dirtyTracker) clear(t Touched) {
	for _, id := range t.Orders {
		delete(d.orders, id)
	}
	for _, id := range t.Runs {
		delete(d.runs, id)
	}
	for _, id := range t.Notes {
		delete(d.notes, id)
	}
}

func (d *dirtyTracker) reset() {
	d.orders = make(map[string]struct{})
	d.runs = make(map[string]struct{})
	d.notes = make(map[string]struct{})
}

func (d *dirtyTracker) isOrderDirty(id string) bool {
	_, ok := d.orders[id]
	return ok
}

func (d *dirtyTracker) isRunDirty(id string) bool {
	_, ok := d.runs[id]
	return ok
}

func (d *dirtyTracker) isNoteDirty(id string) bool {
	_, ok := d.notes[id]
	return ok
}

// IsOrderDirty reports whether the order holds an unconfirmed local edit.
func (b *Board) IsOrderDirty(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty.isOrderDirty(id)
}

// IsRunDirty reports whether the run holds an unconfirmed local edit.
func (b *Board) IsRunDirty(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty.isRunDirty(id)
}

// IsNoteDirty reports whether the note holds an unconfirmed local edit.
func (b *Board) IsNoteDirty(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty.isNoteDirty(id)
}

// MarkDirty records unconfirmed local edits for the given entities.
// Mutation operations mark their own edits; this is for callers that
// persist entity field changes made outside a board operation.
func (b *Board) MarkDirty(t Touched) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty.mark(t)
}

// ClearDirty removes dirty marks after the server acknowledged the
// persistence call that covered them.
func (b *Board) ClearDirty(t Touched) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty.clear(t)
}

// BeginPendingCall records an outbound persistence call entering flight.
func (b *Board) BeginPendingCall() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dirty.pendingCalls++
}

// EndPendingCall records an outbound persistence call leaving flight.
func (b *Board) EndPendingCall() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dirty.pendingCalls > 0 {
		b.dirty.pendingCalls--
	}
}

// PendingCalls returns the number of outbound calls currently in flight.
func (b *Board) PendingCalls() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty.pendingCalls
}
