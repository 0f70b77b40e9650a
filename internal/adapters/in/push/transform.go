// Package push consumes incremental board updates from the backend's
// websocket channel. Records arrive loosely typed; the transform in this
// package is the only place that touches their raw shape, everything past
// it is domain types.
package push

import (
	"encoding/json"
	"fmt"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/note"
	"dispatchboard/internal/core/domain/model/order"
	"dispatchboard/internal/core/domain/model/run"
)

const (
	actionUpsert = "upserted"
	actionDelete = "deleted"

	entityOrder = "order"
	entityRun   = "run"
	entityNote  = "note"
)

// Envelope is the wire frame of one push record.
type Envelope struct {
	Action string          `json:"action"`
	Entity string          `json:"entity"`
	Data   json.RawMessage `json:"data"`
}

type orderRecord struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	CustomerCode string `json:"customerCode"`
	Quantity     int    `json:"quantity"`
	Status       string `json:"status"`
	Class        string `json:"class"`
	Date         string `json:"date"`
}

type runRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	OrderIDs []string `json:"orderIds"`
	Note     string   `json:"note"`
}

type noteRecord struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Color   string `json:"color"`
	Pinned  bool   `json:"pinned"`
	CellKey string `json:"cellKey"`
	OrderID string `json:"orderId"`
	RunID   string `json:"runId"`
}

type deleteRecord struct {
	ID string `json:"id"`
}

// ApplyRecord decodes one raw push frame and applies it to the board.
// Reports whether the board accepted the event; suppressed events (dirty
// entity, call in flight) report false with no error. Malformed frames
// return an error and change nothing.
func ApplyRecord(b *board.Board, raw []byte) (bool, error) {
	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return false, fmt.Errorf("decoding push envelope: %w", err)
	}
	return applyEnvelope(b, envelope)
}

func applyEnvelope(b *board.Board, envelope Envelope) (bool, error) {
	switch envelope.Action {
	case actionUpsert:
		return applyUpsert(b, envelope)
	case actionDelete:
		return applyDelete(b, envelope)
	}
	return false, fmt.Errorf("unknown push action %q", envelope.Action)
}

func applyUpsert(b *board.Board, envelope Envelope) (bool, error) {
	switch envelope.Entity {
	case entityOrder:
		restored, err := decodeOrder(envelope.Data)
		if err != nil {
			return false, err
		}
		return b.ApplyOrderUpsert(restored), nil

	case entityRun:
		var record runRecord
		if err := json.Unmarshal(envelope.Data, &record); err != nil {
			return false, fmt.Errorf("decoding run record: %w", err)
		}
		restored, err := run.RestoreDeliveryRun(record.ID, record.Name, record.OrderIDs, record.Note)
		if err != nil {
			return false, err
		}
		return b.ApplyRunUpsert(restored), nil

	case entityNote:
		restored, err := decodeNote(envelope.Data)
		if err != nil {
			return false, err
		}
		return b.ApplyNoteUpsert(restored), nil
	}
	return false, fmt.Errorf("unknown push entity %q", envelope.Entity)
}

func applyDelete(b *board.Board, envelope Envelope) (bool, error) {
	var record deleteRecord
	if err := json.Unmarshal(envelope.Data, &record); err != nil {
		return false, fmt.Errorf("decoding delete record: %w", err)
	}
	if record.ID == "" {
		return false, fmt.Errorf("delete record without id")
	}

	switch envelope.Entity {
	case entityOrder:
		return b.ApplyOrderDelete(record.ID), nil
	case entityRun:
		return b.ApplyRunDelete(record.ID), nil
	case entityNote:
		return b.ApplyNoteDelete(record.ID), nil
	}
	return false, fmt.Errorf("unknown push entity %q", envelope.Entity)
}

func decodeOrder(data json.RawMessage) (*order.Order, error) {
	var record orderRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding order record: %w", err)
	}

	status, err := order.ParseStatus(record.Status)
	if err != nil {
		return nil, err
	}
	class, err := order.ParseClass(record.Class)
	if err != nil {
		return nil, err
	}
	date, err := kernel.NewDate(record.Date)
	if err != nil {
		return nil, err
	}
	return order.RestoreOrder(record.ID, record.Number, record.CustomerCode, record.Quantity, status, class, date)
}

func decodeNote(data json.RawMessage) (*note.Note, error) {
	var record noteRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding note record: %w", err)
	}

	target := note.NoTarget()
	switch {
	case record.CellKey != "":
		key, err := kernel.ParseCellKey(record.CellKey)
		if err != nil {
			return nil, err
		}
		if target, err = note.CellTarget(key); err != nil {
			return nil, err
		}
	case record.OrderID != "":
		var err error
		if target, err = note.OrderTarget(record.OrderID); err != nil {
			return nil, err
		}
	case record.RunID != "":
		var err error
		if target, err = note.RunTarget(record.RunID); err != nil {
			return nil, err
		}
	}
	return note.RestoreNote(record.ID, record.Text, record.Color, record.Pinned, target)
}
