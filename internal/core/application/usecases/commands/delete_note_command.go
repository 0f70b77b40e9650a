package commands

import (
	"errors"

	"dispatchboard/internal/pkg/guard"
)

var ErrDeleteNoteCommandIsNotConstructed = errors.New(
	"DeleteNoteCommand must be created via NewDeleteNoteCommand constructor",
)

// DeleteNoteCommand represents a request to remove a note.
type DeleteNoteCommand struct { //nolint:recvcheck //using for validation
	noteID string

	guard guard.ConstructorGuard
}

// NewDeleteNoteCommand creates a command removing a note.
func NewDeleteNoteCommand(noteID string) (DeleteNoteCommand, error) {
	command := DeleteNoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setNoteID(noteID); err != nil {
		return DeleteNoteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteNoteCommand) Validate() error {
	return c.guard.Validate(ErrDeleteNoteCommandIsNotConstructed)
}

// NoteID returns the note to remove.
func (c DeleteNoteCommand) NoteID() string {
	return c.noteID
}

func (c *DeleteNoteCommand) setNoteID(noteID string) error {
	if noteID == "" {
		return ErrNoteIDIsRequired
	}

	c.noteID = noteID
	return nil
}
