package handlers

import (
	"context"
	"time"

	"minesweeper/internal/domain"
	"minesweeper/internal/service"
	"minesweeper/internal/ws"
)

// HistoryReader is the read side of game history. nil disables /history.
type HistoryReader interface {
	Recent(ctx context.Context, limit int) ([]*domain.GameRecord, error)
	BySession(ctx context.Context, sessionID string) ([]*domain.GameRecord, error)
	Stats(ctx context.Context) (*domain.Stats, error)
}

// HandlerConfig holds configuration for handler
type HandlerConfig struct {
	DefaultWidth  int
	DefaultHeight int
	DefaultMines  int
	TokenTTL      time.Duration
}

type Handler struct {
	Sessions *service.SessionService
	History  HistoryReader
	Hub      *ws.Hub // open sockets of each session, closed on delete
	cfg      HandlerConfig
}

func NewHandler(sessions *service.SessionService, history HistoryReader, hub *ws.Hub, cfg HandlerConfig) *Handler {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = sessions.TTL()
	}
	return &Handler{
		Sessions: sessions,
		History:  history,
		Hub:      hub,
		cfg:      cfg,
	}
}
