package queries

import (
	"context"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/domain/model/order"
)

// GetBoardQueryHandler assembles the board read model from the in-memory
// store. Cells come out sorted by key and notes by id, so the response is
// deterministic for identical state.
type GetBoardQueryHandler struct {
	board *board.Board
}

// NewGetBoardQueryHandler creates a handler for board reads.
func NewGetBoardQueryHandler(b *board.Board) GetBoardQueryHandler {
	return GetBoardQueryHandler{board: b}
}

// Handle executes the query and returns the full board view.
func (h GetBoardQueryHandler) Handle(_ context.Context, query GetBoardQuery) (BoardView, error) {
	if err := query.Validate(); err != nil {
		return BoardView{}, err
	}

	view := BoardView{
		Trucks:      h.truckViews(),
		Cells:       h.cellViews(),
		Notes:       h.noteViews(),
		LockedDates: h.lockedDateStrings(),
	}
	return view, nil
}

func (h GetBoardQueryHandler) truckViews() []TruckView {
	trucks := h.board.Trucks()
	views := make([]TruckView, 0, len(trucks))
	for _, id := range trucks {
		name, _ := h.board.TruckName(id)
		views = append(views, TruckView{ID: id, Name: name})
	}
	return views
}

func (h GetBoardQueryHandler) cellViews() []CellView {
	keys := h.board.CellKeys()
	views := make([]CellView, 0, len(keys))
	for _, key := range keys {
		cell, ok := h.board.Cell(key)
		if !ok {
			continue
		}

		cv := CellView{Key: key.String()}
		for _, runID := range cell.RunIDs() {
			r, okRun := h.board.Run(runID)
			if !okRun {
				continue
			}
			rv := RunView{ID: r.ID(), Name: r.Name(), Note: r.Note()}
			for _, orderID := range r.OrderIDs() {
				if o, okOrder := h.board.Order(orderID); okOrder {
					rv.Orders = append(rv.Orders, orderView(o))
				}
			}
			cv.Runs = append(cv.Runs, rv)
		}
		for _, orderID := range cell.LooseOrderIDs() {
			if o, okOrder := h.board.Order(orderID); okOrder {
				cv.LooseOrders = append(cv.LooseOrders, orderView(o))
			}
		}
		views = append(views, cv)
	}
	return views
}

func (h GetBoardQueryHandler) noteViews() []NoteView {
	ids := h.board.NoteIDs()
	views := make([]NoteView, 0, len(ids))
	for _, id := range ids {
		n, ok := h.board.Note(id)
		if !ok {
			continue
		}

		nv := NoteView{
			ID:     n.ID(),
			Text:   n.Text(),
			Color:  n.Color(),
			Pinned: n.Pinned(),
		}
		if key, okCell := n.Target().Cell(); okCell {
			nv.CellKey = key.String()
		}
		if orderID, okOrder := n.Target().OrderID(); okOrder {
			nv.OrderID = orderID
		}
		if runID, okRun := n.Target().RunID(); okRun {
			nv.RunID = runID
		}
		views = append(views, nv)
	}
	return views
}

func (h GetBoardQueryHandler) lockedDateStrings() []string {
	dates := h.board.LockedDates()
	values := make([]string, 0, len(dates))
	for _, date := range dates {
		values = append(values, date.String())
	}
	return values
}

func orderView(o *order.Order) OrderView {
	return OrderView{
		ID:           o.ID(),
		Number:       o.Number(),
		CustomerCode: o.CustomerCode(),
		Quantity:     o.Quantity(),
		Status:       o.Status().String(),
		Class:        o.Class().String(),
		Date:         o.Date().String(),
		ReadOnly:     o.ReadOnly(),
	}
}
