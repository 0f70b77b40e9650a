package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"dispatchboard/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BoardRefreshJob polls the scheduling backend on a fixed interval and
// merges each snapshot into the board. Merges are skipped while a save
// call is in flight; the next tick picks the snapshot up.
type BoardRefreshJob struct {
	handler  commands.RefreshBoardCommandHandler
	interval int
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewBoardRefreshJob creates a refresh job polling every intervalSeconds.
func NewBoardRefreshJob(handler commands.RefreshBoardCommandHandler, intervalSeconds int, logger *slog.Logger) *BoardRefreshJob {
	return &BoardRefreshJob{
		handler:  handler,
		interval: intervalSeconds,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "board_refresh_job"),
	}
}

// Start begins the polling schedule.
func (j *BoardRefreshJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %ds", j.interval), func() {
		ctx := context.Background()
		cmd, cmdErr := commands.NewRefreshBoardCommand(commands.RefreshModeMerge)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Board refresh command invalid", "error", cmdErr)
			return
		}

		applied, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Board refresh failed", "error", handleErr)
			return
		}
		if !applied {
			j.logger.DebugContext(ctx, "Board refresh skipped, save call in flight")
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Board refresh job started", "interval_seconds", j.interval)
	return nil
}

// Stop stops the polling schedule.
func (j *BoardRefreshJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Board refresh job stopped")
}
