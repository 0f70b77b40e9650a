// Package queries contains read operations for retrieving board state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return plain read models assembled from the in-memory store.
package queries

import (
	"errors"

	"dispatchboard/internal/pkg/guard"
)

var ErrGetBoardQueryIsNotConstructed = errors.New(
	"GetBoardQuery must be created via NewGetBoardQuery constructor",
)

// GetBoardQuery retrieves the full board read model: every cell with its
// runs, their members, the loose orders, plus resources, locked dates, and
// notes.
//
// Example:
//
//	query := NewGetBoardQuery()
//	handler := NewGetBoardQueryHandler(boardStore)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read board: %w", err)
//	}
//
//	for _, cell := range view.Cells {
//	    fmt.Printf("%s: %d runs, %d loose\n", cell.Key, len(cell.Runs), len(cell.LooseOrders))
//	}
type GetBoardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetBoardQuery creates a query retrieving the full board view.
func NewGetBoardQuery() GetBoardQuery {
	return GetBoardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetBoardQueryIsNotConstructed)
}

// BoardView is the full board read model.
type BoardView struct {
	Trucks      []TruckView
	Cells       []CellView
	Notes       []NoteView
	LockedDates []string
}

// TruckView is one schedulable resource.
type TruckView struct {
	ID   string
	Name string
}

// CellView is one slot with its ordered runs and loose orders.
type CellView struct {
	Key         string
	Runs        []RunView
	LooseOrders []OrderView
}

// RunView is one run with its members in stop order.
type RunView struct {
	ID     string
	Name   string
	Note   string
	Orders []OrderView
}

// OrderView is one order as displayed on a card.
type OrderView struct {
	ID           string
	Number       string
	CustomerCode string
	Quantity     int
	Status       string
	Class        string
	Date         string
	ReadOnly     bool
}

// NoteView is one sticky note with its attachment, if any.
type NoteView struct {
	ID      string
	Text    string
	Color   string
	Pinned  bool
	CellKey string
	OrderID string
	RunID   string
}
