// Package rest implements the outbound gateway to the scheduling backend
// over its JSON API. It is the only place that knows the wire shapes; the
// rest of the application sees domain types behind ports.BoardGateway.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/note"
	"dispatchboard/internal/core/domain/model/order"
	"dispatchboard/internal/core/domain/model/run"
	"dispatchboard/internal/core/ports"
)

const requestTimeout = 10 * time.Second

// Gateway talks to the scheduling backend. Persistence calls are
// fire-and-forget from the caller's point of view: only success or failure
// is reported, response bodies are discarded.
type Gateway struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewGateway creates a gateway for the backend at baseURL.
func NewGateway(baseURL string, logger *slog.Logger) *Gateway {
	return &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: requestTimeout},
		logger:  logger.With("component", "rest_gateway"),
	}
}

var _ ports.BoardGateway = (*Gateway)(nil)

// snapshotDTO mirrors the backend's snapshot payload.
type snapshotDTO struct {
	Orders []orderDTO         `json:"orders"`
	Runs   []runDTO           `json:"runs"`
	Cells  map[string]cellDTO `json:"cells"`
	Trucks []truckDTO         `json:"trucks"`
	Notes  []noteDTO          `json:"notes"`
}

type orderDTO struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	CustomerCode string `json:"customerCode"`
	Quantity     int    `json:"quantity"`
	Status       string `json:"status"`
	Class        string `json:"class"`
	Date         string `json:"date"`
}

type runDTO struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	OrderIDs []string `json:"orderIds"`
	Note     string   `json:"note"`
}

type cellDTO struct {
	RunIDs        []string `json:"runIds"`
	LooseOrderIDs []string `json:"looseOrderIds"`
}

type truckDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type noteDTO struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Color   string `json:"color"`
	Pinned  bool   `json:"pinned"`
	CellKey string `json:"cellKey,omitempty"`
	OrderID string `json:"orderId,omitempty"`
	RunID   string `json:"runId,omitempty"`
}

// FetchSnapshot retrieves and decodes the full board snapshot. Entities
// that fail domain validation are skipped with a warning rather than
// failing the whole snapshot; one malformed backend row must not blank the
// dispatcher's screen.
func (g *Gateway) FetchSnapshot(ctx context.Context) (board.Snapshot, error) {
	var dto snapshotDTO
	if err := g.getJSON(ctx, "/api/v1/board", &dto); err != nil {
		return board.Snapshot{}, err
	}
	return g.toSnapshot(ctx, dto), nil
}

func (g *Gateway) toSnapshot(ctx context.Context, dto snapshotDTO) board.Snapshot {
	snapshot := board.Snapshot{
		Cells:      make(map[kernel.CellKey]board.CellSnapshot, len(dto.Cells)),
		TruckNames: make(map[string]string, len(dto.Trucks)),
	}

	for _, o := range dto.Orders {
		restored, err := restoreOrder(o)
		if err != nil {
			g.logger.WarnContext(ctx, "Skipping malformed order", "id", o.ID, "error", err)
			continue
		}
		snapshot.Orders = append(snapshot.Orders, restored)
	}

	for _, r := range dto.Runs {
		restored, err := run.RestoreDeliveryRun(r.ID, r.Name, r.OrderIDs, r.Note)
		if err != nil {
			g.logger.WarnContext(ctx, "Skipping malformed run", "id", r.ID, "error", err)
			continue
		}
		snapshot.Runs = append(snapshot.Runs, restored)
	}

	for rawKey, c := range dto.Cells {
		key, err := kernel.ParseCellKey(rawKey)
		if err != nil {
			g.logger.WarnContext(ctx, "Skipping malformed cell key", "key", rawKey, "error", err)
			continue
		}
		snapshot.Cells[key] = board.CellSnapshot{
			RunIDs:        c.RunIDs,
			LooseOrderIDs: c.LooseOrderIDs,
		}
	}

	for _, truck := range dto.Trucks {
		snapshot.Trucks = append(snapshot.Trucks, truck.ID)
		snapshot.TruckNames[truck.ID] = truck.Name
	}

	for _, n := range dto.Notes {
		restored, err := restoreNote(n)
		if err != nil {
			g.logger.WarnContext(ctx, "Skipping malformed note", "id", n.ID, "error", err)
			continue
		}
		snapshot.Notes = append(snapshot.Notes, restored)
	}

	return snapshot
}

func restoreOrder(dto orderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	class, err := order.ParseClass(dto.Class)
	if err != nil {
		return nil, err
	}
	date, err := kernel.NewDate(dto.Date)
	if err != nil {
		return nil, err
	}
	return order.RestoreOrder(dto.ID, dto.Number, dto.CustomerCode, dto.Quantity, status, class, date)
}

func restoreNote(dto noteDTO) (*note.Note, error) {
	target := note.NoTarget()
	switch {
	case dto.CellKey != "":
		key, err := kernel.ParseCellKey(dto.CellKey)
		if err != nil {
			return nil, err
		}
		if target, err = note.CellTarget(key); err != nil {
			return nil, err
		}
	case dto.OrderID != "":
		var err error
		if target, err = note.OrderTarget(dto.OrderID); err != nil {
			return nil, err
		}
	case dto.RunID != "":
		var err error
		if target, err = note.RunTarget(dto.RunID); err != nil {
			return nil, err
		}
	}
	return note.RestoreNote(dto.ID, dto.Text, dto.Color, dto.Pinned, target)
}

// placementDTO is the body of an order-placement save.
type placementDTO struct {
	OrderID string `json:"orderId"`
	RunID   string `json:"runId,omitempty"`
	CellKey string `json:"cellKey"`
	Index   int    `json:"index"`
}

// SaveOrderPlacement persists one order's placement.
func (g *Gateway) SaveOrderPlacement(ctx context.Context, orderID, runID string, cell kernel.CellKey, index int) error {
	body := placementDTO{
		OrderID: orderID,
		RunID:   runID,
		CellKey: cell.String(),
		Index:   index,
	}
	return g.send(ctx, http.MethodPut, "/api/v1/orders/"+orderID+"/placement", body)
}

// SaveRun persists a run and its cell.
func (g *Gateway) SaveRun(ctx context.Context, aggregate *run.DeliveryRun, cell kernel.CellKey) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	body := struct {
		runDTO
		CellKey string `json:"cellKey"`
	}{
		runDTO: runDTO{
			ID:       aggregate.ID(),
			Name:     aggregate.Name(),
			OrderIDs: aggregate.OrderIDs(),
			Note:     aggregate.Note(),
		},
		CellKey: cell.String(),
	}
	return g.send(ctx, http.MethodPut, "/api/v1/runs/"+aggregate.ID(), body)
}

// DeleteRun removes a run server-side.
func (g *Gateway) DeleteRun(ctx context.Context, runID string) error {
	return g.send(ctx, http.MethodDelete, "/api/v1/runs/"+runID, nil)
}

// SaveNote persists a note and its attachment.
func (g *Gateway) SaveNote(ctx context.Context, aggregate *note.Note) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	body := noteDTO{
		ID:     aggregate.ID(),
		Text:   aggregate.Text(),
		Color:  aggregate.Color(),
		Pinned: aggregate.Pinned(),
	}
	if key, ok := aggregate.Target().Cell(); ok {
		body.CellKey = key.String()
	}
	if orderID, ok := aggregate.Target().OrderID(); ok {
		body.OrderID = orderID
	}
	if runID, ok := aggregate.Target().RunID(); ok {
		body.RunID = runID
	}
	return g.send(ctx, http.MethodPut, "/api/v1/notes/"+aggregate.ID(), body)
}

// DeleteNote removes a note server-side.
func (g *Gateway) DeleteNote(ctx context.Context, noteID string) error {
	return g.send(ctx, http.MethodDelete, "/api/v1/notes/"+noteID, nil)
}

func (g *Gateway) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (g *Gateway) send(ctx context.Context, method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.ErrorContext(ctx, "Backend call failed", "method", method, "path", path, "error", err)
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		err = fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
		g.logger.ErrorContext(ctx, "Backend rejected call", "method", method, "path", path, "status", resp.StatusCode)
		return err
	}
	return nil
}
