package kernel

import "github.com/google/uuid"

// NewRunID allocates an identifier for a run created on this client.
// Run ids from server snapshots are opaque strings; locally created runs use
// a random UUID so they cannot collide with server-assigned identifiers
// before the creating call is acknowledged.
func NewRunID() string {
	return uuid.NewString()
}

// NewNoteID allocates an identifier for a note created on this client.
func NewNoteID() string {
	return uuid.NewString()
}
