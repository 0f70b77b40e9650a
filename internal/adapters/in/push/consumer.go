package push

import (
	"context"
	"log/slog"
	"time"

	"dispatchboard/internal/core/domain/model/board"

	"github.com/gorilla/websocket"
)

const reconnectDelay = 5 * time.Second

// Consumer maintains a websocket subscription to the backend's push
// channel and applies incoming records to the board. Suppressed records
// are dropped silently; the next poll reconciles whatever they carried.
type Consumer struct {
	url    string
	board  *board.Board
	logger *slog.Logger
}

// NewConsumer creates a push consumer for the channel at url.
func NewConsumer(url string, b *board.Board, logger *slog.Logger) *Consumer {
	return &Consumer{
		url:    url,
		board:  b,
		logger: logger.With("component", "push_consumer"),
	}
}

// Run connects and consumes records until the context is canceled,
// reconnecting with a fixed delay after connection failures. Intended to
// run in its own goroutine.
func (c *Consumer) Run(ctx context.Context) {
	for {
		if err := c.consume(ctx); err != nil {
			c.logger.ErrorContext(ctx, "Push connection lost", "error", err)
		}

		select {
		case <-ctx.Done():
			c.logger.InfoContext(ctx, "Push consumer stopped")
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *Consumer) consume(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	c.logger.InfoContext(ctx, "Push channel connected", "url", c.url)

	// Unblock ReadMessage when the context is canceled.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, readErr := conn.ReadMessage()
		if readErr != nil {
			if ctx.Err() != nil {
				return nil
			}
			return readErr
		}

		applied, applyErr := ApplyRecord(c.board, raw)
		switch {
		case applyErr != nil:
			c.logger.WarnContext(ctx, "Dropping malformed push record", "error", applyErr)
		case !applied:
			c.logger.DebugContext(ctx, "Push record suppressed by local edits")
		}
	}
}
