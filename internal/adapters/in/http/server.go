// Package http exposes the dispatcher UI API over echo. Handlers bind
// hand-written request shapes, build commands, and translate board
// rejections into HTTP statuses; all board semantics live below.
package http

import (
	"net/http"

	"dispatchboard/internal/core/application/usecases/commands"
	"dispatchboard/internal/core/application/usecases/queries"
	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/domain/model/kernel"
	"dispatchboard/internal/core/domain/model/note"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	board *board.Board

	// Command handlers
	moveOrderHandler    commands.MoveOrderCommandHandler
	moveRunHandler      commands.MoveRunCommandHandler
	createRunHandler    commands.CreateRunCommandHandler
	dissolveRunHandler  commands.DissolveRunCommandHandler
	refreshBoardHandler commands.RefreshBoardCommandHandler
	addNoteHandler      commands.AddNoteCommandHandler
	updateNoteHandler   commands.UpdateNoteCommandHandler
	deleteNoteHandler   commands.DeleteNoteCommandHandler

	// Query handlers
	getBoardHandler queries.GetBoardQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	b *board.Board,
	moveOrderHandler commands.MoveOrderCommandHandler,
	moveRunHandler commands.MoveRunCommandHandler,
	createRunHandler commands.CreateRunCommandHandler,
	dissolveRunHandler commands.DissolveRunCommandHandler,
	refreshBoardHandler commands.RefreshBoardCommandHandler,
	addNoteHandler commands.AddNoteCommandHandler,
	updateNoteHandler commands.UpdateNoteCommandHandler,
	deleteNoteHandler commands.DeleteNoteCommandHandler,
	getBoardHandler queries.GetBoardQueryHandler,
) *Server {
	return &Server{
		board:               b,
		moveOrderHandler:    moveOrderHandler,
		moveRunHandler:      moveRunHandler,
		createRunHandler:    createRunHandler,
		dissolveRunHandler:  dissolveRunHandler,
		refreshBoardHandler: refreshBoardHandler,
		addNoteHandler:      addNoteHandler,
		updateNoteHandler:   updateNoteHandler,
		deleteNoteHandler:   deleteNoteHandler,
		getBoardHandler:     getBoardHandler,
	}
}

// RegisterRoutes mounts all API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.GET("/board", s.GetBoard)
	api.POST("/board/refresh", s.RefreshBoard)
	api.POST("/orders/:orderID/move", s.MoveOrder)
	api.POST("/runs", s.CreateRun)
	api.POST("/runs/:runID/move", s.MoveRun)
	api.DELETE("/runs/:runID", s.DissolveRun)
	api.POST("/notes", s.AddNote)
	api.PATCH("/notes/:noteID", s.UpdateNote)
	api.DELETE("/notes/:noteID", s.DeleteNote)
	api.POST("/dates/:date/lock-toggle", s.ToggleDateLock)
}

// Error is the uniform error body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MutationResponse reports the outcome of one board mutation.
type MutationResponse struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason"`
}

// rejectionStatus maps a board rejection to its HTTP status.
func rejectionStatus(rejection board.Rejection) int {
	if rejection == board.RejectionNotFound {
		return http.StatusNotFound
	}
	return http.StatusConflict
}

func respondResult(ctx echo.Context, result board.Result, err error) error {
	if err != nil {
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: "Failed to persist change: " + err.Error(),
		})
	}
	if !result.Success() {
		return ctx.JSON(rejectionStatus(result.Reason()), MutationResponse{
			Accepted: false,
			Reason:   result.Reason().String(),
		})
	}
	return ctx.JSON(http.StatusOK, MutationResponse{
		Accepted: true,
		Reason:   result.Reason().String(),
	})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// GetBoard handles GET /api/v1/board - returns the full board view.
func (s *Server) GetBoard(ctx echo.Context) error {
	view, err := s.getBoardHandler.Handle(ctx.Request().Context(), queries.NewGetBoardQuery())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to read board",
		})
	}
	return ctx.JSON(http.StatusOK, view)
}

// RefreshBoardRequest selects how the next snapshot is applied.
type RefreshBoardRequest struct {
	Mode string `json:"mode"`
}

// RefreshBoard handles POST /api/v1/board/refresh - pulls a snapshot.
func (s *Server) RefreshBoard(ctx echo.Context) error {
	var req RefreshBoardRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	mode := commands.RefreshModeMerge
	if req.Mode == "full" {
		mode = commands.RefreshModeFull
	}

	cmd, err := commands.NewRefreshBoardCommand(mode)
	if err != nil {
		return badRequest(ctx, "Invalid refresh mode: "+err.Error())
	}

	applied, err := s.refreshBoardHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: "Failed to fetch snapshot",
		})
	}
	return ctx.JSON(http.StatusOK, map[string]bool{"applied": applied})
}

// MoveOrderRequest carries one order drop: onto a run or loose into a cell.
type MoveOrderRequest struct {
	RunID         string `json:"runId"`
	CellKey       string `json:"cellKey"`
	Index         int    `json:"index"`
	ForcePosition bool   `json:"forcePosition"`
}

// MoveOrder handles POST /api/v1/orders/:orderID/move.
func (s *Server) MoveOrder(ctx echo.Context) error {
	var req MoveOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var cmd commands.MoveOrderCommand
	var err error
	switch {
	case req.RunID != "":
		cmd, err = commands.NewMoveOrderToRunCommand(ctx.Param("orderID"), req.RunID, req.Index, req.ForcePosition)
	case req.CellKey != "":
		var key kernel.CellKey
		if key, err = kernel.ParseCellKey(req.CellKey); err != nil {
			return badRequest(ctx, "Invalid cell key: "+err.Error())
		}
		cmd, err = commands.NewMoveOrderLooseCommand(ctx.Param("orderID"), key)
	default:
		return badRequest(ctx, "Either runId or cellKey is required")
	}
	if err != nil {
		return badRequest(ctx, "Invalid move data: "+err.Error())
	}

	result, err := s.moveOrderHandler.Handle(ctx.Request().Context(), cmd)
	return respondResult(ctx, result, err)
}

// CreateRunRequest creates a run, optionally seeded with one order.
type CreateRunRequest struct {
	CellKey     string `json:"cellKey"`
	Name        string `json:"name"`
	SeedOrderID string `json:"seedOrderId"`
}

// CreateRun handles POST /api/v1/runs.
func (s *Server) CreateRun(ctx echo.Context) error {
	var req CreateRunRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	key, err := kernel.ParseCellKey(req.CellKey)
	if err != nil {
		return badRequest(ctx, "Invalid cell key: "+err.Error())
	}

	cmd, err := commands.NewCreateRunCommand(key, req.Name, req.SeedOrderID)
	if err != nil {
		return badRequest(ctx, "Invalid run data: "+err.Error())
	}

	result, err := s.createRunHandler.Handle(ctx.Request().Context(), cmd)
	return respondResult(ctx, result, err)
}

// MoveRunRequest relocates a run to another cell.
type MoveRunRequest struct {
	CellKey string `json:"cellKey"`
	Index   int    `json:"index"`
}

// MoveRun handles POST /api/v1/runs/:runID/move.
func (s *Server) MoveRun(ctx echo.Context) error {
	var req MoveRunRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	key, err := kernel.ParseCellKey(req.CellKey)
	if err != nil {
		return badRequest(ctx, "Invalid cell key: "+err.Error())
	}

	cmd, err := commands.NewMoveRunCommand(ctx.Param("runID"), key, req.Index)
	if err != nil {
		return badRequest(ctx, "Invalid move data: "+err.Error())
	}

	result, err := s.moveRunHandler.Handle(ctx.Request().Context(), cmd)
	return respondResult(ctx, result, err)
}

// DissolveRun handles DELETE /api/v1/runs/:runID.
func (s *Server) DissolveRun(ctx echo.Context) error {
	cmd, err := commands.NewDissolveRunCommand(ctx.Param("runID"))
	if err != nil {
		return badRequest(ctx, "Invalid run id: "+err.Error())
	}

	result, err := s.dissolveRunHandler.Handle(ctx.Request().Context(), cmd)
	return respondResult(ctx, result, err)
}

// NoteRequest creates or edits a note.
type NoteRequest struct {
	Text      string `json:"text"`
	Color     string `json:"color"`
	Pinned    bool   `json:"pinned"`
	CellKey   string `json:"cellKey"`
	OrderID   string `json:"orderId"`
	RunID     string `json:"runId"`
	TogglePin bool   `json:"togglePin"`
}

// AddNote handles POST /api/v1/notes.
func (s *Server) AddNote(ctx echo.Context) error {
	var req NoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := noteTarget(req)
	if err != nil {
		return badRequest(ctx, "Invalid note target: "+err.Error())
	}

	cmd, err := commands.NewAddNoteCommand(req.Text, req.Color, req.Pinned, target)
	if err != nil {
		return badRequest(ctx, "Invalid note data: "+err.Error())
	}

	result, err := s.addNoteHandler.Handle(ctx.Request().Context(), cmd)
	return respondResult(ctx, result, err)
}

// UpdateNote handles PATCH /api/v1/notes/:noteID.
func (s *Server) UpdateNote(ctx echo.Context) error {
	var req NoteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var cmd commands.UpdateNoteCommand
	var err error
	switch {
	case req.TogglePin:
		cmd, err = commands.NewToggleNotePinCommand(ctx.Param("noteID"))
	case req.Text != "":
		cmd, err = commands.NewUpdateNoteTextCommand(ctx.Param("noteID"), req.Text)
	default:
		cmd, err = commands.NewUpdateNoteColorCommand(ctx.Param("noteID"), req.Color)
	}
	if err != nil {
		return badRequest(ctx, "Invalid note data: "+err.Error())
	}

	result, err := s.updateNoteHandler.Handle(ctx.Request().Context(), cmd)
	return respondResult(ctx, result, err)
}

// DeleteNote handles DELETE /api/v1/notes/:noteID.
func (s *Server) DeleteNote(ctx echo.Context) error {
	cmd, err := commands.NewDeleteNoteCommand(ctx.Param("noteID"))
	if err != nil {
		return badRequest(ctx, "Invalid note id: "+err.Error())
	}

	result, err := s.deleteNoteHandler.Handle(ctx.Request().Context(), cmd)
	return respondResult(ctx, result, err)
}

// ToggleDateLock handles POST /api/v1/dates/:date/lock-toggle.
func (s *Server) ToggleDateLock(ctx echo.Context) error {
	date, err := kernel.NewDate(ctx.Param("date"))
	if err != nil {
		return badRequest(ctx, "Invalid date: "+err.Error())
	}

	locked := s.board.ToggleDateLock(date)
	return ctx.JSON(http.StatusOK, map[string]bool{"locked": locked})
}

func noteTarget(req NoteRequest) (note.Target, error) {
	switch {
	case req.CellKey != "":
		key, err := kernel.ParseCellKey(req.CellKey)
		if err != nil {
			return note.Target{}, err
		}
		return note.CellTarget(key)
	case req.OrderID != "":
		return note.OrderTarget(req.OrderID)
	case req.RunID != "":
		return note.RunTarget(req.RunID)
	}
	return note.NoTarget(), nil
}
