package middleware

import (
	"net/http"
	"strings"

	"minesweeper/internal/logger"
	"minesweeper/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionIDKey is the gin context key holding the authenticated session id
const SessionIDKey = "session_id"

// SessionAuth validates the session token from the Authorization header
// (Bearer) or the token query parameter.
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token required"})
			return
		}

		sessionID, err := service.ParseSessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(SessionIDKey, sessionID)
		c.Request = c.Request.WithContext(logger.NewContext(c.Request.Context(), logger.With("session_id", sessionID)))
		c.Next()
	}
}
