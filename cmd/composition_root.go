package cmd

import (
	"log/slog"

	"dispatchboard/internal/adapters/in/push"
	"dispatchboard/internal/adapters/out/rest"
	"dispatchboard/internal/core/application/usecases/commands"
	"dispatchboard/internal/core/application/usecases/queries"
	"dispatchboard/internal/core/domain/model/board"
	"dispatchboard/internal/core/ports"
)

type CompositionRoot struct {
	config  Config
	board   *board.Board
	gateway ports.BoardGateway
	logger  *slog.Logger
}

func NewCompositionRoot(config Config, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:  config,
		board:   board.New(),
		gateway: rest.NewGateway(config.SchedulingAPIBaseURL, logger),
		logger:  logger,
	}
}

func (c *CompositionRoot) Board() *board.Board {
	return c.board
}

func (c *CompositionRoot) CreateMoveOrderCommandHandler() commands.MoveOrderCommandHandler {
	return commands.NewMoveOrderCommandHandler(c.board, c.gateway)
}

func (c *CompositionRoot) CreateMoveRunCommandHandler() commands.MoveRunCommandHandler {
	return commands.NewMoveRunCommandHandler(c.board, c.gateway)
}

func (c *CompositionRoot) CreateCreateRunCommandHandler() commands.CreateRunCommandHandler {
	return commands.NewCreateRunCommandHandler(c.board, c.gateway)
}

func (c *CompositionRoot) CreateDissolveRunCommandHandler() commands.DissolveRunCommandHandler {
	return commands.NewDissolveRunCommandHandler(c.board, c.gateway)
}

func (c *CompositionRoot) CreateRefreshBoardCommandHandler() commands.RefreshBoardCommandHandler {
	return commands.NewRefreshBoardCommandHandler(c.board, c.gateway)
}

func (c *CompositionRoot) CreateAddNoteCommandHandler() commands.AddNoteCommandHandler {
	return commands.NewAddNoteCommandHandler(c.board, c.gateway)
}

func (c *CompositionRoot) CreateUpdateNoteCommandHandler() commands.UpdateNoteCommandHandler {
	return commands.NewUpdateNoteCommandHandler(c.board, c.gateway)
}

func (c *CompositionRoot) CreateDeleteNoteCommandHandler() commands.DeleteNoteCommandHandler {
	return commands.NewDeleteNoteCommandHandler(c.board, c.gateway)
}

func (c *CompositionRoot) CreateGetBoardQueryHandler() queries.GetBoardQueryHandler {
	return queries.NewGetBoardQueryHandler(c.board)
}

func (c *CompositionRoot) CreatePushConsumer() *push.Consumer {
	return push.NewConsumer(c.config.PushWSURL, c.board, c.logger)
}
