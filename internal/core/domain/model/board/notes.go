package board

import (
	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/note"
)

// AddNote creates a sticky note attached to at most one of a cell, an order,
// or a run. Returns the created note on success.
func (b *Board) AddNote(text string, color string, pinned bool, target note.Target) (*note.Note, Result) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if rejection := b.validateNoteTarget(target); rejection != RejectionNone {
		return nil, rejected(rejection)
	}

	created, err := note.RestoreNote(kernel.NewNoteID(), text, color, pinned, target)
	if err != nil {
		return nil, rejected(RejectionInvalidTarget)
	}

	b.notes[created.ID()] = created
	if key, ok := target.Cell(); ok {
		b.noteToCell[created.ID()] = key
	}

	touched := Touched{Notes: []string{created.ID()}}
	b.dirty.mark(touched)
	return created, accepted(touched)
}

// UpdateNoteText replaces a note's text.
func (b *Board) UpdateNoteText(noteID string, text string) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.notes[noteID]
	if !ok {
		return rejected(RejectionNotFound)
	}

	clone := n.Clone()
	if err := clone.SetText(text); err != nil {
		return rejected(RejectionInvalidTarget)
	}
	b.notes[noteID] = clone

	touched := Touched{Notes: []string{noteID}}
	b.dirty.mark(touched)
	return accepted(touched)
}

// UpdateNoteColor replaces a note's color tag.
func (b *Board) UpdateNoteColor(noteID string, color string) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.notes[noteID]
	if !ok {
		return rejected(RejectionNotFound)
	}

	clone := n.Clone()
	clone.SetColor(color)
	b.notes[noteID] = clone

	touched := Touched{Notes: []string{noteID}}
	b.dirty.mark(touched)
	return accepted(touched)
}

// ToggleNotePin flips a note's pin flag.
func (b *Board) ToggleNotePin(noteID string) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	n, ok := b.notes[noteID]
	if !ok {
		return rejected(RejectionNotFound)
	}

	clone := n.Clone()
	clone.TogglePin()
	b.notes[noteID] = clone

	touched := Touched{Notes: []string{noteID}}
	b.dirty.mark(touched)
	return accepted(touched)
}

// DeleteNote removes a note from the board.
func (b *Board) DeleteNote(noteID string) Result {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.notes[noteID]; !ok {
		return rejected(RejectionNotFound)
	}

	delete(b.notes, noteID)
	delete(b.noteToCell, noteID)

	// Tombstone until the delete is acknowledged.
	touched := Touched{Notes: []string{noteID}}
	b.dirty.mark(touched)
	return accepted(touched)
}

// validateNoteTarget checks that the attachment points at something that
// exists on the board. Unattached notes are always valid.
func (b *Board) validateNoteTarget(target note.Target) Rejection {
	switch target.Kind() {
	case note.TargetCell:
		key, _ := target.Cell()
		if !b.isValidTarget(key) {
			return RejectionInvalidTarget
		}
	case note.TargetOrder:
		orderID, _ := target.OrderID()
		if _, ok := b.orders[orderID]; !ok {
			return RejectionNotFound
		}
	case note.TargetRun:
		runID, _ := target.RunID()
		if _, ok := b.runs[runID]; !ok {
			return RejectionNotFound
		}
	case note.TargetNone:
	}
	return RejectionNone
}
