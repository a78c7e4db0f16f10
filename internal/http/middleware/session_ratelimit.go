package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ClickRateLimit limits board mutations per session (not per IP).
// Requires SessionAuth to run before it.
func ClickRateLimit(maxClicks int, window time.Duration) gin.HandlerFunc {
	local := newWindowLimiter(maxClicks, window)
	return func(c *gin.Context) {
		sessionID := c.GetString(SessionIDKey)
		if sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		if redisClient == nil {
			if !local.allow("click:"+sessionID, time.Now()) {
				RLBlocked.WithLabelValues("click:" + c.FullPath()).Inc()
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"error":       "click rate limit exceeded",
					"retry_after": int(window.Seconds()),
				})
				return
			}
			RLRequests.WithLabelValues("click:" + c.FullPath()).Inc()
			c.Next()
			return
		}

		key := "click_rl:" + sessionID + ":" + strconv.FormatInt(int64(window.Seconds()), 10)
		allowRedis(c, key, maxClicks, window, "click:"+c.FullPath())
	}
}
