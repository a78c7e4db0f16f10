package handlers

import (
	"errors"
	"net/http"

	"minesweeper/internal/game"
	"minesweeper/internal/logger"
	"minesweeper/internal/service"

	"github.com/gin-gonic/gin"
)

// writeError maps domain errors to HTTP statuses
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrInvalidConfiguration), errors.Is(err, game.ErrOutOfBounds):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	default:
		logger.WithContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
