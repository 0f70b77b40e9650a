package commands

import (
	"errors"

	"dispatchboard/internal/pkg/guard"
)

var (
	ErrUpdateNoteCommandIsNotConstructed = errors.New(
		"UpdateNoteCommand must be created via one of the NewUpdateNote*Command constructors",
	)
	ErrNoteIDIsRequired = errors.New("noteID is required")
)

// NoteEdit discriminates the supported note edits.
type NoteEdit int

const (
	// NoteEditText replaces the note body.
	NoteEditText NoteEdit = iota

	// NoteEditTogglePin flips the pin flag.
	NoteEditTogglePin

	// NoteEditColor replaces the color tag.
	NoteEditColor
)

// UpdateNoteCommand represents a request to edit one note.
type UpdateNoteCommand struct { //nolint:recvcheck //using for validation
	noteID string
	edit   NoteEdit
	text   string
	color  string

	guard guard.ConstructorGuard
}

// NewUpdateNoteTextCommand creates a command replacing a note's text.
func NewUpdateNoteTextCommand(noteID, text string) (UpdateNoteCommand, error) {
	command := UpdateNoteCommand{
		edit:  NoteEditText,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setNoteID(noteID),
		command.setText(text),
	); err != nil {
		return UpdateNoteCommand{}, err
	}

	return command, nil
}

// NewToggleNotePinCommand creates a command flipping a note's pin flag.
func NewToggleNotePinCommand(noteID string) (UpdateNoteCommand, error) {
	command := UpdateNoteCommand{
		edit:  NoteEditTogglePin,
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setNoteID(noteID); err != nil {
		return UpdateNoteCommand{}, err
	}

	return command, nil
}

// NewUpdateNoteColorCommand creates a command replacing a note's color tag.
// An empty color clears the tag.
func NewUpdateNoteColorCommand(noteID, color string) (UpdateNoteCommand, error) {
	command := UpdateNoteCommand{
		edit:  NoteEditColor,
		color: color,
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setNoteID(noteID); err != nil {
		return UpdateNoteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through a constructor.
func (c UpdateNoteCommand) Validate() error {
	return c.guard.Validate(ErrUpdateNoteCommandIsNotConstructed)
}

// NoteID returns the note to edit.
func (c UpdateNoteCommand) NoteID() string {
	return c.noteID
}

// Edit returns which edit to apply.
func (c UpdateNoteCommand) Edit() NoteEdit {
	return c.edit
}

// Text returns the replacement body for a text edit.
func (c UpdateNoteCommand) Text() string {
	return c.text
}

// Color returns the replacement tag for a color edit.
func (c UpdateNoteCommand) Color() string {
	return c.color
}

func (c *UpdateNoteCommand) setNoteID(noteID string) error {
	if noteID == "" {
		return ErrNoteIDIsRequired
	}

	c.noteID = noteID
	return nil
}

func (c *UpdateNoteCommand) setText(text string) error {
	if text == "" {
		return ErrTextIsRequired
	}

	c.text = text
	return nil
}
