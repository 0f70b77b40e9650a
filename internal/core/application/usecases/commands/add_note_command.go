package commands

import (
	"errors"

	"dispatchboard/internal/core/domain/model/note"
	"dispatchboard/internal/pkg/guard"
)

var (
	ErrAddNoteCommandIsNotConstructed = errors.New(
		"AddNoteCommand must be created via NewAddNoteCommand constructor",
	)
	ErrTextIsRequired = errors.New("text is required")
)

// AddNoteCommand represents a request to stick a note on the board,
// optionally attached to a cell, an order, or a run.
type AddNoteCommand struct { //nolint:recvcheck //using for validation
	text   string
	color  string
	pinned bool
	target note.Target

	guard guard.ConstructorGuard
}

// NewAddNoteCommand creates a command adding a note.
func NewAddNoteCommand(text, color string, pinned bool, target note.Target) (AddNoteCommand, error) {
	command := AddNoteCommand{
		color:  color,
		pinned: pinned,
		target: target,
		guard:  guard.NewConstructorGuard(),
	}

	if err := command.setText(text); err != nil {
		return AddNoteCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddNoteCommand) Validate() error {
	return c.guard.Validate(ErrAddNoteCommandIsNotConstructed)
}

// Text returns the note body.
func (c AddNoteCommand) Text() string {
	return c.text
}

// Color returns the display color tag.
func (c AddNoteCommand) Color() string {
	return c.color
}

// Pinned reports whether the note starts pinned.
func (c AddNoteCommand) Pinned() bool {
	return c.pinned
}

// Target returns the attachment.
func (c AddNoteCommand) Target() note.Target {
	return c.target
}

func (c *AddNoteCommand) setText(text string) error {
	if text == "" {
		return ErrTextIsRequired
	}

	c.text = text
	return nil
}
