package handlers

import (
	"context"
	"net/http"

	"minesweeper/internal/game"
	"minesweeper/internal/http/middleware"
	"minesweeper/internal/service"
	"minesweeper/internal/ws"

	"github.com/gin-gonic/gin"
)

// CreateGameRequest - either a preset name or explicit dimensions.
// Missing fields fall back to the configured defaults; fields that are
// present are validated as given.
type CreateGameRequest struct {
	Preset string `json:"preset"`
	Width  *int   `json:"width"`
	Height *int   `json:"height"`
	Mines  *int   `json:"mines"`
}

type CreateGameResponse struct {
	SessionID string          `json:"session_id"`
	Token     string          `json:"token"`
	State     ws.StatePayload `json:"state"`
}

// ClickRequest - a cell coordinate
type ClickRequest struct {
	Col *int `json:"col" binding:"required"`
	Row *int `json:"row" binding:"required"`
}

// CreateGame starts a new session
func (h *Handler) CreateGame(c *gin.Context) {
	var req CreateGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}
	}

	width, height, mines := h.cfg.DefaultWidth, h.cfg.DefaultHeight, h.cfg.DefaultMines
	if req.Preset != "" {
		p, ok := game.PresetByName(req.Preset)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown preset: " + req.Preset})
			return
		}
		width, height, mines = p.Width, p.Height, p.Mines
	}
	if req.Width != nil {
		width = *req.Width
	}
	if req.Height != nil {
		height = *req.Height
	}
	if req.Mines != nil {
		mines = *req.Mines
	}

	ctx := c.Request.Context()
	sess, snap, err := h.Sessions.Create(ctx, width, height, mines)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := service.GenerateSessionToken(sess.ID, h.cfg.TokenTTL)
	if err != nil {
		_ = h.Sessions.Delete(sess.ID)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateGameResponse{
		SessionID: sess.ID,
		Token:     token,
		State:     ws.NewStatePayload(sess.ID, snap),
	})
}

// Presets lists built-in board sizes
func (h *Handler) Presets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": game.Presets()})
}

// GameState returns the board of the authenticated session
func (h *Handler) GameState(c *gin.Context) {
	id := c.GetString(middleware.SessionIDKey)
	snap, err := h.Sessions.View(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws.NewStatePayload(id, snap))
}

// Reveal is the left click
func (h *Handler) Reveal(c *gin.Context) {
	h.click(c, h.Sessions.LeftClick)
}

// Flag is the right click
func (h *Handler) Flag(c *gin.Context) {
	h.click(c, h.Sessions.RightClick)
}

func (h *Handler) click(c *gin.Context, fn func(ctx context.Context, id string, col, row int) (game.Snapshot, error)) {
	var req ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	id := c.GetString(middleware.SessionIDKey)
	snap, err := fn(c.Request.Context(), id, *req.Col, *req.Row)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws.NewStatePayload(id, snap))
}

// Restart resets the board to a fresh one of the same shape
func (h *Handler) Restart(c *gin.Context) {
	id := c.GetString(middleware.SessionIDKey)
	snap, err := h.Sessions.Restart(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ws.NewStatePayload(id, snap))
}

// DeleteGame ends the session
func (h *Handler) DeleteGame(c *gin.Context) {
	id := c.GetString(middleware.SessionIDKey)
	if err := h.Sessions.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	if h.Hub != nil {
		h.Hub.CloseSession(id)
	}
	c.Status(http.StatusNoContent)
}
